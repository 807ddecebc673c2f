package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With returns ctx carrying the context logger extended with fields.
// Request middleware uses it to stamp request_id, user_id and department.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From returns the logger stored in ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return LoggerWrapper()
}
