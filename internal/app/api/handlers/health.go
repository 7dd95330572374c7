package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/pkg/response"
)

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// @Summary      Health check
// @Description  Returns service status
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ok"}))
}

// @Summary      Readiness check
// @Description  Pings the database; replies 503 while it is unreachable
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  handlers.RespOK
// @Router       /readyz [get]
func Readyz(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := checker.Ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ready"}))
	}
}

func RegisterHealthRoutes(r gin.IRouter, checker ReadinessChecker) {
	r.GET("/healthz", Healthz)
	r.GET("/readyz", Readyz(checker))
}
