package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey keeps the package's context values from colliding with
// string keys used elsewhere.
type contextKey string

const (
	// LoggerKey carries the request-scoped *zap.Logger.
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request id assigned by the HTTP layer.
	RequestIDKey contextKey = "request_id"
	// TenantIDKey carries the tenant the request is operating on.
	TenantIDKey contextKey = "tenant_id"
)

// WithContext attaches a logger to the context.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger carried by ctx. When none is attached,
// a no-op logger is returned so callers can log unconditionally.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// tag stores a correlation value on the context and returns a logger
// enriched with the matching field, itself re-attached to the context.
func tag(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String(string(key), value))
	ctx = context.WithValue(ctx, key, value)
	return WithContext(ctx, enriched), enriched
}

// WithRequestID records the request id on the context and enriches the logger.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return tag(ctx, logger, RequestIDKey, requestID)
}

// WithTenantID records the tenant id on the context and enriches the logger.
func WithTenantID(ctx context.Context, logger *zap.Logger, tenantID string) (context.Context, *zap.Logger) {
	return tag(ctx, logger, TenantIDKey, tenantID)
}

// GetRequestID returns the request id carried by ctx, or "".
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

// GetTenantID returns the tenant id carried by ctx, or "".
func GetTenantID(ctx context.Context) string {
	return stringValue(ctx, TenantIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}
