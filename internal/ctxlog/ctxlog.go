// Package ctxlog carries a request-scoped *slog.Logger through a
// context.Context. The quicklook HTTP middleware stores a logger annotated
// with request fields; handlers pull it back out without threading a logger
// argument through every call.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported so no other package can collide with the stored value.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by ctx, falling back to the
// process-wide default when none was stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
