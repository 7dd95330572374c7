package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/console/pkg/config"
)

type fakeSnapshotter struct {
	calls []time.Time
	err   error
}

func (f *fakeSnapshotter) SaveDailySnapshot(_ context.Context, at time.Time) (int, error) {
	f.calls = append(f.calls, at)
	return len(f.calls), f.err
}

func testConfig(schedule string) *config.Config {
	return &config.Config{
		Billing: config.BillingConfig{Timezone: "Asia/Kolkata"},
		Jobs:    config.JobsConfig{Enabled: true, SnapshotSchedule: schedule},
	}
}

func TestSchedulerRegistersSnapshot(t *testing.T) {
	snap := &fakeSnapshotter{}
	s, err := newScheduler(testConfig("5 0 * * *"), zap.NewNop().Sugar(), snap, nil)
	require.NoError(t, err)

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	from := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	next := entries[0].Schedule.Next(from)
	require.Equal(t, "2024-01-16 00:05", next.In(time.FixedZone("IST", 19800)).Format("2006-01-02 15:04"))

	fixed := time.Date(2024, 1, 16, 0, 5, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	s.RunSnapshot()
	snap.err = errors.New("db down")
	s.RunSnapshot()
	require.Equal(t, []time.Time{fixed, fixed}, snap.calls)

	s.Start()
	require.NoError(t, s.Stop(context.Background()))
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := newScheduler(testConfig("every day"), zap.NewNop().Sugar(), &fakeSnapshotter{}, nil)
	require.ErrorContains(t, err, "invalid snapshot schedule")
}
