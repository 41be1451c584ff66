package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/goflash/assetly"
	"github.com/goflash/assetly/ctx"
)

// RecoverConfig configures the panic recovery middleware.
type RecoverConfig struct {
	// EnableStack logs the goroutine stack with the recovered value.
	EnableStack bool
	// OnPanic is called with the recovered value before the response is written.
	OnPanic func(assetly.Ctx, any)
	// ErrorResponse writes a custom response. The default is a plain 500.
	ErrorResponse func(assetly.Ctx, any) error
}

// Recover returns middleware that turns panics in handlers (including
// template helpers called during Render) into a 500 response.
//
// Panic details are logged, never sent to the client.
//
//	a.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())
func Recover(cfgs ...RecoverConfig) assetly.Middleware {
	var cfg RecoverConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	return func(next assetly.Handler) assetly.Handler {
		return func(c assetly.Ctx) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				attrs := []any{"panic", r, "method", c.Method(), "path", c.Path()}
				if cfg.EnableStack {
					attrs = append(attrs, "stack", string(debug.Stack()))
				}
				ctx.LoggerFromContext(c.Context()).Error("panic recovered", attrs...)

				if cfg.OnPanic != nil {
					cfg.OnPanic(c, r)
				}
				if cfg.ErrorResponse != nil {
					err = cfg.ErrorResponse(c, r)
					return
				}
				if c.WroteHeader() {
					return
				}
				c.Header("X-Content-Type-Options", "nosniff")
				err = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}()
			return next(c)
		}
	}
}
