// Package ctxlog carries a *slog.Logger through context.Context so that
// every phase of a run logs through the logger the App configured.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type so the context key cannot collide with keys
// from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context with the logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger. A missing logger is a wiring bug, not a
// runtime condition, so it panics rather than degrading silently.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}
