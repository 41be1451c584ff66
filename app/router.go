package app

import (
	"net/http"

	"github.com/goflash/assetly/ctx"
	"github.com/julienschmidt/httprouter"
)

// GET registers a handler for HTTP GET requests on the given path.
// Optionally accepts route-specific middleware.
//
// Example:
//
//	a.GET("/", func(c app.Ctx) error {
//		return c.Render(http.StatusOK, home, nil)
//	})
func (a *DefaultApp) GET(path string, h Handler, mws ...Middleware) {
	a.handle(http.MethodGet, path, h, mws...)
}

// Handle registers a handler for any HTTP method on the given path.
func (a *DefaultApp) Handle(method, path string, h Handler, mws ...Middleware) {
	a.handle(method, path, h, mws...)
}

// handle composes the middleware chain (route-specific then global), adapts the
// handler to the httprouter signature and manages the pooled context.
//
// Context lifecycle:
//   - Acquire a *ctx.DefaultContext from the pool
//   - Reset it with the request, params and route pattern; install the app locals
//   - Call the composed handler; on error invoke the ErrorHandler
//   - Finish() and return the context to the pool
func (a *DefaultApp) handle(method, path string, h Handler, mws ...Middleware) {
	final := h
	for i := len(mws) - 1; i >= 0; i-- {
		final = mws[i](final)
	}
	for i := len(a.middleware) - 1; i >= 0; i-- {
		final = a.middleware[i](final)
	}

	pattern := path
	a.router.Handle(method, path, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		r = r.WithContext(ctx.ContextWithLogger(r.Context(), a.Logger()))
		concrete := a.pool.Get().(*ctx.DefaultContext)
		concrete.Reset(w, r, ps, pattern)
		concrete.SetLocals(a.locals)
		if err := final(concrete); err != nil {
			a.ErrorHandler()(concrete, err)
		}
		concrete.Finish()
		a.pool.Put(concrete)
	})
}
