// Package assetly builds URIs for static assets from one canonical
// description of where they live.
//
// The builder package holds the logic; this package re-exports the pieces an
// application needs, and the app, ctx and config packages provide a small
// web application to publish builders on.
package assetly

import (
	"strconv"

	"github.com/goflash/assetly/app"
	"github.com/goflash/assetly/builder"
	"github.com/goflash/assetly/ctx"
	"github.com/goflash/assetly/query"
)

// Builder produces asset URIs. Re-exported from builder.Builder.
type Builder = builder.Builder

// Spec describes a builder's base path and declared query. Re-exported from builder.Spec.
type Spec = builder.Spec

// Option declares sub-builders at construction time. Re-exported from builder.Option.
type Option = builder.Option

// ExpressOptions customizes publishing a builder. Re-exported from builder.ExpressOptions.
type ExpressOptions = builder.ExpressOptions

// Host is anything a builder can be published on. Re-exported from builder.Host.
type Host = builder.Host

// Query is an ordered query mapping. Re-exported from query.Query.
type Query = query.Query

// App is the web application. Re-exported from app.App.
type App = app.App

// Ctx is the request context, re-exported for convenience.
type Ctx = ctx.Ctx

// Handler handles a request. Re-exported from app.Handler.
type Handler = app.Handler

// Middleware wraps a Handler. Re-exported from app.Middleware.
type Middleware = app.Middleware

// Spec constructors, re-exported from package builder.
var (
	Empty       = builder.Empty
	Path        = builder.Path
	PathQuery   = builder.PathQuery
	QueryOnly   = builder.QueryOnly
	Version     = builder.Version
	SpecFrom    = builder.SpecFrom
	With        = builder.With
	WithBuilder = builder.WithBuilder
)

// Query values, re-exported from package query.
var (
	Null = query.Null
	Omit = query.Omit
)

// New creates a root builder. Re-exported from builder.New.
func New(spec Spec, opts ...Option) *Builder { return builder.New(spec, opts...) }

// Create creates a root builder from loosely typed arguments:
//
//	Create(nil)                             // no base, no query
//	Create("//cdn.example.com")             // base
//	Create("//cdn.example.com", 3)          // base + "/3"; any integer or float type
//	Create("//cdn.example.com", q)          // base and query (string or map)
//	Create([]any{"/static", "v=1"})         // base and query pair
//	Create([]any{"/static", "v=1"}, "w=2")  // pair with q merged over its query
//	Create("v=1")                           // query only
//
// A first argument that is not a string is read with SpecFrom; the second
// argument is then applied to that spec.
func Create(base any, q ...any) *Builder {
	spec := builder.SpecFrom(base)
	if len(q) == 0 || q[0] == nil {
		return builder.New(spec)
	}
	if s, ok := base.(string); ok {
		spec = builder.Path(s)
	}
	if v, ok := versionSegment(q[0]); ok {
		return builder.New(spec.WithVersion(v))
	}
	return builder.New(spec.WithQuery(q[0]))
}

// versionSegment formats numeric versions; other values are queries.
func versionSegment(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// NewApp creates a new App with sensible defaults. Re-exported from app.New.
func NewApp() App { return app.New() }

// Setup publishes b on h under the default "assets" property.
func Setup(h Host, b *Builder) { builder.Setup(h, b) }
