package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/goflash/assetly"
)

// RequestIDConfig configures the RequestID middleware.
// Header sets the request and response header name (default: X-Request-ID).
type RequestIDConfig struct {
	Header string
}

type ridKey struct{}

// RequestID returns middleware that reuses the incoming request ID header or
// generates one, echoes it on the response and stores it on the request
// context.
func RequestID(cfgs ...RequestIDConfig) assetly.Middleware {
	cfg := RequestIDConfig{Header: "X-Request-ID"}
	if len(cfgs) > 0 && cfgs[0].Header != "" {
		cfg.Header = cfgs[0].Header
	}
	return func(next assetly.Handler) assetly.Handler {
		return func(c assetly.Ctx) error {
			id := c.Request().Header.Get(cfg.Header)
			if id == "" {
				id = newID()
			}
			c.Header(cfg.Header, id)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Context(), ridKey{}, id)))
			return next(c)
		}
	}
}

// RequestIDFromContext returns the request ID from the context, if available.
func RequestIDFromContext(c context.Context) (string, bool) {
	s, ok := c.Value(ridKey{}).(string)
	return s, ok
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
