package context

import (
	"context"

	"go.uber.org/zap"
)

type contextkey string

const (
	loggerKey contextkey = "logger"
)

// WithLogger binds a request scoped logger to ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger retrieves the request scoped logger.
// Returns a no-op logger if none was set.
func Logger(ctx context.Context) *zap.Logger {
	val := ctx.Value(loggerKey)
	logger, ok := val.(*zap.Logger)
	if !ok || logger == nil {
		return zap.NewNop()
	}
	return logger
}
