package ctx

import (
	"context"
	"log/slog"
)

type loggerContextKey struct{}

// ContextWithLogger returns a new context carrying the provided slog.Logger.
//
// The App injects its logger into every request this way; config.Load reads
// it back to report which asset configuration files were used.
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// LoggerFromContext returns a slog.Logger from the context, or slog.Default if
// none is found.
//
// Example:
//
//	l := ctx.LoggerFromContext(c.Context())
//	l.Debug("asset url", "href", assets.File("app.js"))
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if v := ctx.Value(loggerContextKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
