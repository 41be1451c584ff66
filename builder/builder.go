// Package builder creates hierarchical URI builders for static assets.
//
// A Builder holds a full base path and a full query computed once from its
// own local base and declared query and from its parent's values. Invoking it
// appends a filename and per-call query overrides:
//
//	assets := builder.New(builder.PathQuery("//cdn.example.com", "v=3")).
//		Provides("css", builder.Path("stylesheets")).
//		Provides("js", builder.Empty())
//
//	assets.File("logo.png")              // "//cdn.example.com/logo.png?v=3"
//	assets.Sub("css").File("main.css")   // "//cdn.example.com/stylesheets/main.css?v=3"
//	assets.Sub("js").File("app.js", "debug=1")
//	// "//cdn.example.com/js/app.js?v=3&debug=1"
//
// Full paths and queries are snapshots: changing a parent after a child was
// attached does not change the child, except when the child is mounted again.
// Builders are meant to be configured once at startup and then read
// concurrently; attaching sub-builders is not synchronized.
package builder

import (
	"sort"

	"github.com/goflash/assetly/query"
)

// Builder produces asset URIs of the form
// <path>[/<filename>][?<query>].
type Builder struct {
	name string       // set when attached under a parent
	base string       // local segment, single trailing slash stripped
	own  *query.Query // declared query

	path  string       // parent path + base
	query *query.Query // parent query merged under own

	subs map[string]*Builder
}

// Option configures sub-builders at construction time.
type Option func(*Builder)

// With declares a sub-builder created from spec, as Provides does.
func With(name string, spec Spec) Option {
	return func(b *Builder) { b.Provides(name, spec) }
}

// WithBuilder mounts an existing builder, as Mount does.
func WithBuilder(name string, sub *Builder) Option {
	return func(b *Builder) { b.Mount(name, sub) }
}

// New creates a root builder from spec. Options are applied in order.
//
// Example:
//
//	assets := builder.New(builder.Path("/static"),
//		builder.With("img", builder.Path("images")),
//	)
//	assets.Dir()                      // "/static"
//	assets.Sub("img").File("a.png")   // "/static/images/a.png"
func New(spec Spec, opts ...Option) *Builder {
	b := &Builder{}
	b.init(spec)
	b.attach("", nil)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) init(spec Spec) {
	base := spec.base
	if !spec.hasBase() {
		base = b.name
	}
	b.base = trimBase(base)
	b.own = spec.query
}

// attach recomputes the full path and query against a parent's values.
func (b *Builder) attach(parentPath string, parentQuery *query.Query) {
	b.path = composePath(parentPath, b.base)
	b.query = query.Merge(parentQuery, b.own)
}

// Provides creates a sub-builder from spec under b and registers it as name.
// When spec carries no base (Empty or QueryOnly) the sub-builder's local base
// is name. An existing sub-builder with the same name is replaced.
//
// Provides returns b so calls can be chained.
//
// Example:
//
//	a := builder.New(builder.Path("//base.uri"))
//	a.Provides("fonts", builder.Empty()).
//		Provides("img", builder.Path("images/")).
//		Provides("cdn", builder.PathQuery("", "v=1"))
//
//	a.Sub("fonts").Dir() // "//base.uri/fonts"
//	a.Sub("img").Dir()   // "//base.uri/images"
//	a.Sub("cdn").Dir()   // "//base.uri?v=1"
func (b *Builder) Provides(name string, spec Spec) *Builder {
	sub := &Builder{name: name}
	sub.init(spec)
	sub.attach(b.path, b.query)
	b.set(name, sub)
	return b
}

// Mount re-parents an existing builder under b as name. Its full path and
// query are recomputed from its own local base and declared query against
// b's current values. A builder mounted in several places reflects only the
// latest mount. Its own sub-builders keep the values computed when they were
// attached.
//
// A nil sub behaves like Provides(name, Empty()). Mount returns b.
func (b *Builder) Mount(name string, sub *Builder) *Builder {
	if sub == nil {
		return b.Provides(name, Empty())
	}
	sub.name = name
	sub.attach(b.path, b.query)
	b.set(name, sub)
	return b
}

func (b *Builder) set(name string, sub *Builder) {
	if b.subs == nil {
		b.subs = make(map[string]*Builder)
	}
	b.subs[name] = sub
}

// Sub returns the sub-builder registered as name, or nil.
func (b *Builder) Sub(name string) *Builder { return b.subs[name] }

// Names returns the registered sub-builder names, sorted.
func (b *Builder) Names() []string {
	names := make([]string, 0, len(b.subs))
	for n := range b.subs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name is the name b was last registered under; "" for roots.
func (b *Builder) Name() string { return b.name }

// Base is the local path segment b contributes.
func (b *Builder) Base() string { return b.base }

// Path is the full base path; "" when neither b nor its ancestors have one.
func (b *Builder) Path() string { return b.path }

// Query returns a copy of the full query, or nil when none was declared
// along the chain.
func (b *Builder) Query() *query.Query { return b.query.Clone() }

// Build returns the URI for filename with the query overrides q. A nil
// filename appends nothing. q accepts any input understood by query.From;
// its keys override the builder's query for this call only. Keys set to
// query.Omit are left out, keys set to query.Null encode as "key=".
func (b *Builder) Build(filename *string, q any) string {
	return b.build(filename, query.From(q))
}

// File returns the URI of filename. Optional query inputs are merged in
// order over the builder's query.
//
// Example:
//
//	a := builder.New(builder.PathQuery("//base.uri", "v=1"))
//	a.File("a.css")                             // "//base.uri/a.css?v=1"
//	a.File("/a.css", map[string]any{"v": 2})    // "//base.uri/a.css?v=2"
//	a.File("", map[string]any{"v": query.Omit}) // "//base.uri/"
func (b *Builder) File(filename string, q ...any) string {
	return b.build(&filename, overrides(q))
}

// Dir returns the URI of the builder's path itself, with optional query
// inputs merged in order.
func (b *Builder) Dir(q ...any) string {
	return b.build(nil, overrides(q))
}

// String is Dir() and lets templates print a builder directly.
func (b *Builder) String() string { return b.Dir() }

func (b *Builder) build(filename *string, q *query.Query) string {
	uri := appendFilename(b.path, filename)
	if qs := query.Merge(b.query, q).Encode(); qs != "" {
		uri += "?" + qs
	}
	return uri
}

func overrides(in []any) *query.Query {
	var q *query.Query
	for _, v := range in {
		q = query.Merge(q, query.From(v))
	}
	return q
}
