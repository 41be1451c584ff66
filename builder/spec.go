package builder

import (
	"strconv"
	"strings"

	"github.com/goflash/assetly/query"
)

type specKind uint8

const (
	specEmpty specKind = iota
	specPath
	specPathQuery
	specQuery
)

// Spec describes how a builder is created: its local base path and its
// declared query. Build one with Empty, Path, PathQuery, QueryOnly, Version
// or SpecFrom. The zero Spec is Empty.
//
// Whether a base was given matters for sub-builders: a sub-builder created
// from Empty or QueryOnly takes its name as local base, while Path("") and
// PathQuery("", q) contribute no path segment at all.
type Spec struct {
	kind  specKind
	base  string
	query *query.Query
}

// Empty is a spec without base and without query.
func Empty() Spec { return Spec{} }

// Path is a spec with a base path only.
func Path(base string) Spec { return Spec{kind: specPath, base: base} }

// PathQuery is a spec with a base path and a declared query. q accepts any
// input understood by query.From.
func PathQuery(base string, q any) Spec {
	return Spec{kind: specPathQuery, base: base, query: query.From(q)}
}

// QueryOnly is a spec with a declared query and no base path.
func QueryOnly(q any) Spec {
	return Spec{kind: specQuery, query: query.From(q)}
}

// Version is Path(base + "/" + version), the usual way to cache-bust a whole
// asset tree.
//
// Example:
//
//	builder.New(builder.Version("//cdn.example.com", 3)).File("app.js")
//	// "//cdn.example.com/3/app.js"
func Version(base string, version int) Spec {
	return Path(base + "/" + strconv.Itoa(version))
}

// SpecFrom turns a loosely typed value into a Spec:
//
//	nil                       -> Empty()
//	Spec                      -> itself
//	string containing '='     -> QueryOnly(s)
//	string                    -> Path(s)
//	[]any{base, q}, []string  -> PathQuery(base, q); a nil base means ""
//	[2]string                 -> PathQuery(v[0], v[1])
//	anything query.From reads -> QueryOnly(v)
//
// Unrecognised values give Empty().
func SpecFrom(v any) Spec {
	switch t := v.(type) {
	case nil:
		return Empty()
	case Spec:
		return t
	case string:
		if strings.Contains(t, "=") {
			return QueryOnly(t)
		}
		return Path(t)
	case [2]string:
		return PathQuery(t[0], t[1])
	case []string:
		switch len(t) {
		case 0:
			return Empty()
		case 1:
			return Path(t[0])
		}
		return PathQuery(t[0], t[1])
	case []any:
		if len(t) == 0 {
			return Empty()
		}
		base, _ := t[0].(string)
		if len(t) == 1 {
			return Path(base)
		}
		return PathQuery(base, t[1])
	}
	if q := query.From(v); q != nil {
		return Spec{kind: specQuery, query: q}
	}
	return Empty()
}

// hasBase reports whether the spec names a base path, even an empty one.
func (s Spec) hasBase() bool {
	return s.kind == specPath || s.kind == specPathQuery
}

// WithQuery returns s with q merged over its declared query; keys of q win.
// The base, or its absence, is kept.
//
// Example:
//
//	builder.SpecFrom([]any{"/static", "v=1"}).WithQuery("w=2")
//	// same as builder.PathQuery("/static", "v=1&w=2")
func (s Spec) WithQuery(q any) Spec {
	merged := query.Merge(s.query, query.From(q))
	switch {
	case s.hasBase():
		return Spec{kind: specPathQuery, base: s.base, query: merged}
	case merged != nil:
		return Spec{kind: specQuery, query: merged}
	}
	return Empty()
}

// WithVersion returns s with version appended to its base as one more path
// segment, as Version does. A spec without base gets version as its base.
// The declared query is kept.
func (s Spec) WithVersion(version string) Spec {
	base := version
	if s.hasBase() {
		base = s.base + "/" + version
	}
	if s.query == nil {
		return Path(base)
	}
	return Spec{kind: specPathQuery, base: base, query: s.query}
}
