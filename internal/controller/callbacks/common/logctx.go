package common

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// WithLogger кладёт логгер обновления (с request_id) в контекст
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom достаёт логгер обновления; если его нет, возвращает fallback
func LoggerFrom(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
