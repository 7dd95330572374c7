package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/pkg/logctx"
)

const (
	SiteDomainHeader = "X-Site-Domain"
	siteDomainKey    = "site_domain"
)

// SiteDomainMiddleware resolves which storefront a public request is for: the
// X-Site-Domain header set by the storefront proxy, then ?domain=, then Host.
// It must run after RequestLoggerMiddleware to tag the request logger.
func SiteDomainMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		domain := c.GetHeader(SiteDomainHeader)
		if domain == "" {
			domain = c.Query("domain")
		}
		if domain == "" {
			domain = c.Request.Host
		}
		domain = tenant.NormalizeDomain(domain)
		c.Set(siteDomainKey, domain)

		if l, ok := c.Get(logctx.LoggerKey); ok {
			if lg, ok := l.(*zap.SugaredLogger); ok && lg != nil {
				lg = lg.With("site_domain", domain)
				c.Set(logctx.LoggerKey, lg)
				c.Request = c.Request.WithContext(logctx.WithLogger(c.Request.Context(), lg))
			}
		}
		c.Next()
	}
}

// SiteDomain returns the domain stored by SiteDomainMiddleware.
func SiteDomain(c *gin.Context) string {
	return c.GetString(siteDomainKey)
}
