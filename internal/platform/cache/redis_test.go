package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "console:", time.Hour), mr
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	_, ok, err := c.Get(ctx, "invoice:1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "invoice:1", []byte("%PDF-1.3"), 0))
	require.True(t, mr.Exists("console:invoice:1"))
	require.Equal(t, time.Hour, mr.TTL("console:invoice:1"))

	got, ok, err := c.Get(ctx, "invoice:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "%PDF-1.3", string(got))
}

func TestRedis_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedis_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	mr.Close()

	_, _, err := c.Get(ctx, "k")
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}
