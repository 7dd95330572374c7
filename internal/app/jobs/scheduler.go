// Package jobs runs the console's periodic background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/console/internal/app/service/statistics"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/metrics"
	"github.com/fatflowers/console/pkg/tool"
)

const snapshotTimeout = 10 * time.Minute

var Module = fx.Options(
	fx.Provide(NewScheduler),
	fx.Invoke(registerScheduler),
)

type Snapshotter interface {
	SaveDailySnapshot(ctx context.Context, at time.Time) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	log     *zap.SugaredLogger
	snap    Snapshotter
	metrics *metrics.Business
	now     func() time.Time
}

func NewScheduler(cfg *config.Config, log *zap.SugaredLogger, stats *statistics.Service, m *metrics.Business) (*Scheduler, error) {
	return newScheduler(cfg, log, stats, m)
}

func newScheduler(cfg *config.Config, log *zap.SugaredLogger, snap Snapshotter, m *metrics.Business) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(cfg.Location())),
		log:     log.With("component", "jobs"),
		snap:    snap,
		metrics: m,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(cfg.Jobs.SnapshotSchedule, s.RunSnapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", cfg.Jobs.SnapshotSchedule, err)
	}
	return s, nil
}

// RunSnapshot records today's subscription snapshot.
func (s *Scheduler) RunSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	ctx = logctx.WithTraceID(ctx, tool.GenerateUUIDV7())
	l := logctx.FromCtx(ctx, s.log)

	start := time.Now()
	n, err := s.snap.SaveDailySnapshot(ctx, s.now())
	s.metrics.ObserveProcess("daily_snapshot", start, err)
	if err != nil {
		l.Errorw("daily snapshot failed", "saved", n, "err", err)
		return
	}
	l.Infow("daily snapshot completed", "saved", n, "took", time.Since(start).String())
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running job or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func registerScheduler(lc fx.Lifecycle, cfg *config.Config, s *Scheduler) {
	if !cfg.Jobs.Enabled {
		s.log.Infow("background jobs disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			s.log.Infow("background jobs started", "snapshot_schedule", cfg.Jobs.SnapshotSchedule)
			return nil
		},
		OnStop: s.Stop,
	})
}
