package ctx

import (
	"context"
	"io"
	"net/http"
	"strconv"

	router "github.com/julienschmidt/httprouter"
)

// Ctx is the request/response context interface exposed to handlers and middleware.
// It is implemented by *DefaultContext.
//
// Besides request accessors and response helpers, a Ctx carries the
// application's rendering locals: values published once on the App (for
// example the asset builder) and visible to every template rendered with
// Render.
//
// Typical usage inside a handler:
//
//	a.GET("/", func(c ctx.Ctx) error {
//	    return c.Render(http.StatusOK, pageTpl, map[string]any{"Title": "Home"})
//	})
//
// with a template such as:
//
//	<link rel="stylesheet" href="{{ (.assets.Sub "css").File "main.css" }}">
//
// Concurrency: Ctx is not safe for concurrent writes to the underlying
// http.ResponseWriter.
type Ctx interface {
	// Request returns the underlying *http.Request associated with this context.
	Request() *http.Request
	// SetRequest replaces the underlying *http.Request on the context.
	SetRequest(*http.Request)
	// ResponseWriter returns the underlying http.ResponseWriter.
	ResponseWriter() http.ResponseWriter
	// SetResponseWriter replaces the underlying http.ResponseWriter.
	SetResponseWriter(http.ResponseWriter)

	// Context returns the request-scoped context.Context.
	Context() context.Context
	// Method returns the HTTP method (e.g., "GET").
	Method() string
	// Path returns the raw request URL path.
	Path() string
	// Route returns the route pattern (e.g., "/users/:id") when available.
	Route() string
	// Param returns a path parameter by name ("" if not present).
	Param(name string) string
	// Query returns a query string parameter by key ("" if not present).
	Query(key string) string

	// Header sets a response header key/value.
	Header(key, value string)
	// Status stages the HTTP status code to be written; returns the Ctx to allow chaining.
	Status(code int) Ctx
	// StatusCode returns the status that will be written (or 200 after header write, or 0 if unset).
	StatusCode() int
	// String writes a text/plain body with the provided status code.
	String(status int, body string) error
	// Send writes raw bytes with a specific status and content type.
	Send(status int, contentType string, b []byte) (int, error)
	// Render executes an html/template with the locals overlaid by data.
	Render(status int, tpl Template, data map[string]any) error
	// WroteHeader reports whether the header has already been written to the client.
	WroteHeader() bool

	// Local returns a rendering local by name (nil if not present).
	Local(name string) any
	// Locals returns a copy of the rendering locals.
	Locals() map[string]any

	// Get retrieves a value from the request context by key, with optional default.
	Get(key any, def ...any) any
	// Set stores a value into a derived request context and replaces the underlying request.
	Set(key, value any) Ctx
}

// DefaultContext is the concrete implementation of Ctx.
// It wraps the http.ResponseWriter and *http.Request, exposes convenience helpers,
// and tracks route, status, and response state for each request.
type DefaultContext struct {
	w           http.ResponseWriter // underlying response writer
	r           *http.Request       // underlying request
	params      router.Params       // route parameters
	status      int                 // status code to write
	wroteHeader bool                // whether header was written
	wroteBytes  int                 // number of bytes written
	route       string              // route pattern (e.g., /users/:id)
	locals      map[string]any      // app rendering locals, shared and read-only
}

// Reset prepares the context for a new request. Used internally by the framework.
// It swaps in the writer, request, params and route pattern, and clears any
// response state and locals.
func (c *DefaultContext) Reset(w http.ResponseWriter, r *http.Request, ps router.Params, route string) {
	c.w = w
	c.r = r
	c.params = ps
	c.status = 0
	c.wroteHeader = false
	c.wroteBytes = 0
	c.route = route
	c.locals = nil
}

// SetLocals installs the application's rendering locals. The map is shared
// across requests and must not be modified while requests are served.
func (c *DefaultContext) SetLocals(locals map[string]any) { c.locals = locals }

// Finish is a hook for context cleanup after request handling.
func (c *DefaultContext) Finish() {
	c.locals = nil
}

// Request returns the underlying *http.Request.
func (c *DefaultContext) Request() *http.Request { return c.r }

// SetRequest replaces the underlying *http.Request.
func (c *DefaultContext) SetRequest(r *http.Request) { c.r = r }

// ResponseWriter returns the underlying http.ResponseWriter.
func (c *DefaultContext) ResponseWriter() http.ResponseWriter { return c.w }

// SetResponseWriter replaces the underlying http.ResponseWriter.
func (c *DefaultContext) SetResponseWriter(w http.ResponseWriter) { c.w = w }

// WroteHeader reports whether the response header has been written.
func (c *DefaultContext) WroteHeader() bool { return c.wroteHeader }

// Context returns the request context.Context.
func (c *DefaultContext) Context() context.Context { return c.r.Context() }

// Set stores a value in the request context using the provided key and value.
// It replaces the request with a clone that carries the new context and returns
// the context for chaining.
func (c *DefaultContext) Set(key, value any) Ctx {
	ctx := context.WithValue(c.Context(), key, value)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

// Get returns a value from the request context by key.
// If the key is not present (or the stored value is nil), it returns the provided
// default when given (Get(key, def)), otherwise it returns nil.
func (c *DefaultContext) Get(key any, def ...any) any {
	v := c.Context().Value(key)
	if v != nil {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Local returns the rendering local stored under name.
//
// Example:
//
//	assets := c.Local("assets").(*builder.Builder)
//	c.Header("Link", "<"+assets.File("app.css")+">; rel=preload; as=style")
func (c *DefaultContext) Local(name string) any { return c.locals[name] }

// Locals returns a copy of the rendering locals.
func (c *DefaultContext) Locals() map[string]any {
	out := make(map[string]any, len(c.locals))
	for k, v := range c.locals {
		out[k] = v
	}
	return out
}

// Method returns the HTTP method for the request (e.g., "GET").
func (c *DefaultContext) Method() string { return c.r.Method }

// Path returns the request URL path (raw path without scheme/host).
func (c *DefaultContext) Path() string { return c.r.URL.Path }

// Route returns the route pattern for the current request, if known.
func (c *DefaultContext) Route() string { return c.route }

// Param returns a path parameter by name. Returns "" if not found.
func (c *DefaultContext) Param(name string) string { return c.params.ByName(name) }

// Query returns a query string parameter by key. Returns "" if not found.
func (c *DefaultContext) Query(key string) string { return c.r.URL.Query().Get(key) }

// Status stages the response status code (without writing the header yet).
// Returns the context for chaining.
func (c *DefaultContext) Status(code int) Ctx {
	c.status = code
	return c
}

// StatusCode returns the status code that will be written.
// If not set yet and header hasn't been written, returns 0. If the header has
// already been written without an explicit status, returns 200.
func (c *DefaultContext) StatusCode() int {
	if c.status != 0 {
		return c.status
	}
	if c.wroteHeader {
		return http.StatusOK
	}
	return 0
}

// Header sets a header on the response.
// Has no effect after the header is written.
func (c *DefaultContext) Header(key, value string) { c.w.Header().Set(key, value) }

// String writes a plain text response with the given status and body.
// Sets Content-Type to "text/plain; charset=utf-8" and Content-Length accordingly.
func (c *DefaultContext) String(status int, body string) error {
	if !c.wroteHeader {
		c.status = status
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Header("Content-Length", strconv.Itoa(len(body)))
		c.w.WriteHeader(status)
		c.wroteHeader = true
	}
	n, err := io.WriteString(c.w, body)
	c.wroteBytes += n
	return err
}

// Send writes raw bytes with the given status and content type.
// If contentType is empty, no Content-Type header is set.
func (c *DefaultContext) Send(status int, contentType string, b []byte) (int, error) {
	if !c.wroteHeader {
		c.status = status
		if contentType != "" {
			c.Header("Content-Type", contentType)
		}
		c.Header("Content-Length", strconv.Itoa(len(b)))
		c.w.WriteHeader(status)
		c.wroteHeader = true
	}
	n, err := c.w.Write(b)
	c.wroteBytes += n
	return n, err
}
