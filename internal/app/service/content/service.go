// Package content serves tenant storefront material: FAQs, site content and
// contact enquiries.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/types"
)

var ErrFaqNotFound = errors.New("faq not found")

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(func(lc fx.Lifecycle, s *Service) {
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			s.Wait()
			return nil
		}})
	}),
)

type TenantReader interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	GetLiveByDomain(ctx context.Context, domain string) (*models.Customer, error)
}

type NotificationRecorder interface {
	Received(ctx context.Context, kind types.NotificationKind, refID, recipient string, data map[string]any) (*models.NotificationLog, error)
	Finish(ctx context.Context, entry *models.NotificationLog, sendErr error)
}

type Service struct {
	cfg           *config.Config
	db            *gorm.DB
	log           *zap.SugaredLogger
	tenants       TenantReader
	mailer        mail.Sender
	notifications NotificationRecorder

	pending sync.WaitGroup
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, tenants *tenant.Service, mailer mail.Sender, notifications *notification_log.Service) *Service {
	return &Service{cfg: cfg, db: db, log: log, tenants: tenants, mailer: mailer, notifications: notifications}
}

// Wait blocks until queued enquiry notifications are done.
func (s *Service) Wait() {
	s.pending.Wait()
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func wrapNotFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// resolveImages returns a copy of images with absolute paths.
func (s *Service) resolveImages(images []models.Image) []models.Image {
	out := make([]models.Image, 0, len(images))
	for _, img := range images {
		img.Path = s.cfg.ResolveAssetURL(img.Path)
		out = append(out, img)
	}
	return out
}

func tenantErr(err error) error {
	if errors.Is(err, tenant.ErrCustomerNotFound) {
		return err
	}
	return fmt.Errorf("failed to resolve tenant: %w", err)
}
