package middleware

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/goflash/assetly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverWritesGeneric500(t *testing.T) {
	h := &captureHandler{}
	a := assetly.NewApp()
	a.SetLogger(slog.New(h))
	a.Use(Recover(RecoverConfig{EnableStack: true}))
	a.GET("/panic", func(c assetly.Ctx) error { panic("boom") })

	rec := request(a, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotContains(t, rec.Body.String(), "boom")

	attrs := h.attrs("panic recovered")
	require.NotNil(t, attrs)
	assert.Equal(t, "boom", attrs["panic"])
	assert.Contains(t, attrs, "stack")
}

func TestRecoverCallbacks(t *testing.T) {
	var seen any
	a := assetly.NewApp()
	a.Use(Recover(RecoverConfig{
		OnPanic: func(c assetly.Ctx, r any) { seen = r },
		ErrorResponse: func(c assetly.Ctx, r any) error {
			return c.String(http.StatusServiceUnavailable, "later")
		},
	}))
	a.GET("/panic", func(c assetly.Ctx) error { panic("boom") })

	rec := request(a, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "later", rec.Body.String())
	assert.Equal(t, "boom", seen)
}

func TestRecoverPassesThrough(t *testing.T) {
	a := assetly.NewApp()
	a.Use(Recover())
	a.GET("/", func(c assetly.Ctx) error { return c.String(http.StatusOK, "ok") })
	assert.Equal(t, "ok", request(a, http.MethodGet, "/").Body.String())
}
