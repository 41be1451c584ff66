package app

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultErrorHandlerNoDoubleWrite(t *testing.T) {
	a := New()
	a.GET("/w", func(c Ctx) error {
		_ = c.String(http.StatusTeapot, "x")
		return io.ErrUnexpectedEOF
	})
	rec := serve(a, http.MethodGet, "/w")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "x", rec.Body.String())
}

func TestDefaultErrorHandlerWrites500(t *testing.T) {
	a := New()
	a.GET("/e", func(c Ctx) error { return io.ErrUnexpectedEOF })
	rec := serve(a, http.MethodGet, "/e")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMethodNotAllowedHandler(t *testing.T) {
	rec := serve(New(), http.MethodGet, "/")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	a := New()
	a.GET("/ping", func(c Ctx) error { return c.String(http.StatusOK, "pong") })
	rec = serve(a, http.MethodPost, "/ping")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
