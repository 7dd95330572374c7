package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

type pinger interface {
	PingContext(ctx context.Context) error
}

// Health answers readiness probes by pinging the connection pool.
type Health struct {
	db pinger
}

func NewHealth(gdb *gorm.DB) (*Health, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return &Health{db: sqlDB}, nil
}

func (h *Health) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}
