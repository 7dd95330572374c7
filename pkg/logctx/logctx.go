package logctx

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ctxKey string

// Keys shared by the gin middlewares and context lookups. The same strings
// are used for gin.Context keys.
const (
	LoggerKey   = "logger"
	TraceIDKey  = "traceID"
	TenantIDKey = "tenant_id"
)

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey(LoggerKey), l)
}

// WithTraceID returns a copy of ctx carrying the request trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey(TraceIDKey), traceID)
}

// WithTenantID returns a copy of ctx carrying the tenant a request acts on.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, ctxKey(TenantIDKey), tenantID)
}

// TraceID extracts the trace id attached by the trace middleware.
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(ctxKey(TraceIDKey)).(string)
	return s
}

// FromGin returns a request-scoped logger from gin.Context if present,
// otherwise returns the provided base logger.
func FromGin(c *gin.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return base
	}
	if l, ok := c.Get(LoggerKey); ok {
		if lg, ok := l.(*zap.SugaredLogger); ok && lg != nil {
			return lg
		}
	}
	return FromCtx(c.Request.Context(), base)
}

// FromCtx returns a logger from context if set, otherwise enriches base with
// trace_id/tenant_id found in the context.
func FromCtx(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if ctx == nil {
		return base
	}
	if lg, ok := ctx.Value(ctxKey(LoggerKey)).(*zap.SugaredLogger); ok && lg != nil {
		return lg
	}
	var fields []interface{}
	if tid := TraceID(ctx); tid != "" {
		fields = append(fields, "trace_id", tid)
	}
	if tenant, ok := ctx.Value(ctxKey(TenantIDKey)).(string); ok && tenant != "" {
		fields = append(fields, "tenant_id", tenant)
	}
	if len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}
