package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// FromContext returns the logger carried by ctx, falling back to the
// package default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithFields returns a context whose logger adds keyvals to every entry,
// e.g. WithFields(ctx, FieldPath, path) while a single source is parsed.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	if len(keyvals) == 0 {
		return WithLogger(ctx, FromContext(ctx))
	}
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
