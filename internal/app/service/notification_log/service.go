package notification_log

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var Module = fx.Options(
	fx.Provide(New),
)

var notificationScan = types.ScanSpec{
	Fields:      []string{"kind", "ref_id", "recipient", "status", "created_at"},
	DefaultSort: "created_at",
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Received records an email about to be sent. The returned row is passed to
// Finish once delivery has been attempted.
func (s *Service) Received(ctx context.Context, kind types.NotificationKind, refID, recipient string, data map[string]any) (*models.NotificationLog, error) {
	entry := &models.NotificationLog{
		ID:        tool.GenerateUUIDV7(),
		Kind:      kind,
		RefID:     refID,
		Recipient: recipient,
		TraceID:   logctx.TraceID(ctx),
		Data:      datatypes.JSONMap(data),
		Status:    types.NotificationStatusReceived,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to save notification log: %w", err)
	}
	return entry, nil
}

// Finish marks entry sent, or failed with sendErr. Nil entries are ignored and
// storage failures are only logged, so a delivered email is never reported as failed.
func (s *Service) Finish(ctx context.Context, entry *models.NotificationLog, sendErr error) {
	if entry == nil {
		return
	}
	updates := map[string]any{"status": types.NotificationStatusSent, "error": ""}
	if sendErr != nil {
		updates = map[string]any{"status": types.NotificationStatusFailed, "error": sendErr.Error()}
	}
	if err := s.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to update notification log %s: %v", entry.ID, err)
	}
}

func (s *Service) List(ctx context.Context, req *types.ScanRequest) (*types.ScanResponse[*models.NotificationLog], error) {
	return types.Scan[*models.NotificationLog](s.db.WithContext(ctx).Model(&models.NotificationLog{}), req, notificationScan)
}
