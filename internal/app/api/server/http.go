package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/console/docs"
	"github.com/fatflowers/console/internal/app/api/handlers"
	mw "github.com/fatflowers/console/internal/app/api/middleware"
	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/internal/app/service/content"
	"github.com/fatflowers/console/internal/app/service/invoice"
	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/statistics"
	subsvc "github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/platform/db"
	cfgpkg "github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeParams struct {
	fx.In

	Log           *zap.SugaredLogger
	Cfg           *cfgpkg.Config
	Health        *db.Health
	Subscriptions *subsvc.Service
	Invoices      *invoice.Service
	Plans         *catalog.Service
	Tenants       *tenant.Service
	Content       *content.Service
	Stats         *statistics.Service
	Notifications *notification_log.Service
}

// newPrometheus returns nil when no metrics listener is configured.
func newPrometheus(log *zap.SugaredLogger, cfg *cfgpkg.Config) *metrics.Prometheus {
	if cfg.MetricsAddr == "" {
		return nil
	}
	return metrics.NewPrometheus(metrics.NewPrometheusOptions{
		Subsystem: metrics.Subsystem,
		Logger:    log,
	})
}

func registerRoutes(r *gin.Engine, p routeParams, prom *metrics.Prometheus) {
	if prom != nil {
		r.Use(prom.HandlerFunc())
	}
	logged := []gin.HandlerFunc{mw.RequestLoggerMiddleware(p.Log), mw.AccessLogMiddleware()}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(logged...)
	handlers.RegisterHealthRoutes(pub, p.Health)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(logged...)

	// Console APIs
	admin := apiV1.Group("/admin")
	handlers.RegisterSubscriptionRoutes(admin.Group("/subscription"), p.Subscriptions, p.Invoices)
	handlers.RegisterPlanRoutes(admin.Group("/plan"), p.Plans)
	handlers.RegisterTenantRoutes(admin.Group("/tenant"), p.Tenants)
	handlers.RegisterFaqRoutes(admin.Group("/faq"), p.Content)
	handlers.RegisterContentRoutes(admin.Group("/content"), p.Content)
	handlers.RegisterEnquiryRoutes(admin.Group("/enquiry"), p.Content)
	handlers.RegisterStatisticRoutes(admin, p.Stats, p.Notifications)

	// Signed invoice links sent by email
	handlers.RegisterPublicInvoiceRoutes(apiV1.Group("/public"), p.Invoices)

	// Storefront APIs, resolved by domain
	site := apiV1.Group("/site")
	site.Use(mw.SiteDomainMiddleware())
	handlers.RegisterSiteRoutes(site, p.Content)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// runMetricsServer serves /metrics on its own listener so it is never
// exposed through the public API port.
func runMetricsServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, prom *metrics.Prometheus) {
	if prom == nil {
		return
	}
	mux := http.NewServeMux()
	mux.Handle(prom.MetricsPath, prom.Handler())
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Infow("metrics started", "addr", cfg.MetricsAddr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("metrics server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine, newPrometheus),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
	fx.Invoke(runMetricsServer),
)
