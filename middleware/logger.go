package middleware

import (
	"net/http"
	"time"

	"github.com/goflash/assetly"
	"github.com/goflash/assetly/ctx"
)

// Logger returns middleware that logs each request using slog, including
// method, path, route, status, duration, remote address and user agent.
// The logger is taken from the request context and enriched with the request
// ID when RequestID runs first.
func Logger() assetly.Middleware {
	return func(next assetly.Handler) assetly.Handler {
		return func(c assetly.Ctx) error {
			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			status := c.StatusCode()
			if status == 0 {
				status = http.StatusOK
			}

			ua, remote := "", ""
			if r := c.Request(); r != nil {
				ua = r.UserAgent()
				remote = r.RemoteAddr
			}

			attrs := []any{
				"method", c.Method(),
				"path", c.Path(),
				"route", c.Route(),
				"status", status,
				"duration_ms", float64(dur.Microseconds()) / 1000.0,
				"remote", remote,
				"user_agent", ua,
			}
			if rid, ok := RequestIDFromContext(c.Context()); ok {
				attrs = append(attrs, "request_id", rid)
			}

			ctx.LoggerFromContext(c.Context()).Info("request", attrs...)
			return err
		}
	}
}
