package logger

import (
	"context"

	"go.uber.org/zap"
)

type requestLoggerKey struct{}

// ContextWithLogger attaches a request-scoped logger to the context so
// deeper layers, the discovery service in particular, log with the
// request's fields attached.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey{}, logger)
}

// FromContext returns the request-scoped logger, or a no-op logger when
// the context carries none, as in tests and background jobs.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(requestLoggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
