package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/tool"
)

const RequestIDHeader = "X-Request-ID"

// TraceMiddleware adds a trace ID to the request context.
// It reads X-Request-ID if provided by the client; otherwise generates a UUIDv7.
// The trace ID is stored in both gin.Context and the request's context.Context.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(RequestIDHeader)
		if traceID == "" || len(traceID) > 128 {
			traceID = tool.GenerateUUIDV7()
		}

		c.Set(logctx.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logctx.WithTraceID(c.Request.Context(), traceID))
		c.Next()
	}
}
