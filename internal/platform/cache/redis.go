// Package cache stores rendered artifacts in redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/console/pkg/config"
)

// Cache is a byte store with expiry. Get reports a miss with ok=false.
// Entries are never evicted explicitly; callers version their keys and let the ttl reclaim stale ones.
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// RedisClient is the subset of redis commands the cache uses.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

type Redis struct {
	client     RedisClient
	prefix     string
	defaultTTL time.Duration
}

func NewRedis(client RedisClient, prefix string, defaultTTL time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, defaultTTL: defaultTTL}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, true, nil
}

// Set stores val; a non-positive ttl uses the default.
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	if err := r.client.Set(ctx, r.prefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Noop never hits. It stands in when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func New(lc fx.Lifecycle, l *zap.SugaredLogger, cfg *cfgpkg.Config) Cache {
	if cfg.Redis.Addr == "" {
		l.Infow("redis not configured, invoice cache disabled")
		return Noop{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// A cold cache is acceptable, so an unreachable redis only warns.
			if err := client.Ping(ctx).Err(); err != nil {
				l.Warnw("redis ping failed", "addr", cfg.Redis.Addr, "err", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewRedis(client, cfg.Redis.Prefix, cfg.Redis.TTL)
}

var Module = fx.Options(
	fx.Provide(New),
)
