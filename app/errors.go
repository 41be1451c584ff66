package app

import (
	"net/http"

	"github.com/goflash/assetly/ctx"
)

// defaultErrorHandler logs the error and writes a 500 Internal Server Error if
// the response has not already started.
func defaultErrorHandler(c ctx.Ctx, err error) {
	ctx.LoggerFromContext(c.Context()).Error("handler failed", "method", c.Method(), "path", c.Path(), "err", err)
	if c.WroteHeader() {
		return
	}
	_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// methodNotAllowedHandler returns a handler for 405 Method Not Allowed responses.
func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(http.StatusText(http.StatusMethodNotAllowed)))
	})
}
