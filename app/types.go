package app

import (
	"log/slog"
	"net/http"
)

// App defines the public surface of the router/app, suitable for mocking.
// Implemented by *DefaultApp.
//
// An App is also a publishing target for asset builders: Set/Get hold
// application properties and SetLocal/Locals hold the values every rendered
// template sees. App therefore satisfies builder.Host.
type App interface {
	// Middleware management
	Use(mw ...Middleware)

	// Route registration
	GET(path string, h Handler, mws ...Middleware)
	Handle(method, path string, h Handler, mws ...Middleware)

	// HTTP integration and static mounting
	ServeHTTP(w http.ResponseWriter, r *http.Request)
	Static(prefix, dir string)
	StaticDirs(prefix string, dirs ...string)

	// Application properties and rendering locals
	Set(name string, v any)
	Get(name string, def ...any) any
	SetLocal(name string, v any)
	Locals() map[string]any

	// Logging
	SetLogger(l *slog.Logger)
	Logger() *slog.Logger

	// Error/NotFound/MethodNotAllowed handlers
	SetErrorHandler(h ErrorHandler)
	SetNotFoundHandler(h http.Handler)
	SetMethodNotAllowedHandler(h http.Handler)
}
