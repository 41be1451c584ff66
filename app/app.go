// Package app is a small web application: httprouter based routing,
// static directory mounting, and the application properties and rendering
// locals that asset builders are published on.
package app

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/goflash/assetly/ctx"
	"github.com/julienschmidt/httprouter"
)

// Handler is the function signature for route handlers (and the output of
// composed middleware). Returning a non-nil error delegates to the App's
// ErrorHandler.
type Handler func(ctx.Ctx) error

// Middleware transforms a Handler, enabling composition of cross-cutting
// concerns. Middleware registered via Use is applied in the order added;
// route-specific middleware runs after global middleware.
type Middleware func(Handler) Handler

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(ctx.Ctx, error)

// Ctx is re-exported for package-local convenience in tests and internal APIs.
type Ctx = ctx.Ctx

// DefaultApp is the main application/router. It implements http.Handler,
// manages routing, middleware, error handling, logger configuration, and the
// properties/locals published on it during setup.
//
// Properties and locals are written during single-threaded setup and only
// read while serving; they are not guarded by locks.
type DefaultApp struct {
	router     *httprouter.Router // underlying router
	middleware []Middleware       // global middleware
	pool       sync.Pool          // context pooling for allocation reduction
	OnError    ErrorHandler       // error handler
	NotFound   http.Handler       // handler for 404 Not Found
	MethodNA   http.Handler       // handler for 405 Method Not Allowed
	logger     *slog.Logger       // application logger
	props      map[string]any     // application properties
	locals     map[string]any     // rendering locals shared by all requests
}

// New creates a new DefaultApp with sensible defaults and returns it as the App
// interface.
//
// Defaults include:
//   - JSON slog logger at info level to stdout
//   - 404 and 405 handlers wired to the internal router hooks
//   - Context pooling for performance
//
// Example:
//
//	a := app.New()
//	assets := builder.New(builder.PathQuery("/static", "v=3"))
//	assets.Express(a)
//	a.Static("/static", "./public")
//	_ = http.ListenAndServe(":8080", a)
func New() App {
	app := &DefaultApp{
		router: httprouter.New(),
		props:  make(map[string]any),
		locals: make(map[string]any),
	}
	app.pool.New = func() any { return &ctx.DefaultContext{} }

	app.router.HandleMethodNotAllowed = true
	app.SetErrorHandler(defaultErrorHandler)
	app.SetNotFoundHandler(http.NotFoundHandler())
	app.SetMethodNotAllowedHandler(methodNotAllowedHandler())
	app.SetLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	app.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.NotFoundHandler().ServeHTTP(w, r)
	})
	app.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.MethodNotAllowedHandler().ServeHTTP(w, r)
	})

	return app
}

// SetLogger sets the application logger used by handlers and utilities.
func (a *DefaultApp) SetLogger(l *slog.Logger) { a.logger = l }

// Logger returns the configured application logger, or slog.Default if none is set.
func (a *DefaultApp) Logger() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// Use registers global middleware, applied to all routes in the order added.
func (a *DefaultApp) Use(mw ...Middleware) {
	if len(mw) == 0 {
		return
	}
	a.middleware = append(a.middleware, mw...)
}

// ServeHTTP implements http.Handler by delegating to the internal router.
func (a *DefaultApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Configuration setters.
func (a *DefaultApp) SetErrorHandler(h ErrorHandler)    { a.OnError = h }
func (a *DefaultApp) SetNotFoundHandler(h http.Handler) { a.NotFound = h }
func (a *DefaultApp) SetMethodNotAllowedHandler(h http.Handler) {
	a.MethodNA = h
}

// Getters mirror the setters.
func (a *DefaultApp) ErrorHandler() ErrorHandler            { return a.OnError }
func (a *DefaultApp) NotFoundHandler() http.Handler         { return a.NotFound }
func (a *DefaultApp) MethodNotAllowedHandler() http.Handler { return a.MethodNA }
