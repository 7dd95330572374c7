package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/console/internal/app/api/server"
	"github.com/fatflowers/console/internal/app/jobs"
	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/internal/app/service/content"
	"github.com/fatflowers/console/internal/app/service/invoice"
	notificationlog "github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/statistics"
	"github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/platform/cache"
	"github.com/fatflowers/console/internal/platform/db"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/internal/platform/storage"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logger"
	"github.com/fatflowers/console/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	metrics.Module,
	db.Module,
	cache.Module,
	storage.Module,
	mail.Module,
	server.Module,
	catalog.Module,
	tenant.Module,
	subscription.Module,
	notificationlog.Module,
	invoice.Module,
	content.Module,
	statistics.Module,
	jobs.Module,
)
