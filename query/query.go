// Package query holds the flat key/value querystring data carried by asset
// builders.
//
// A Query remembers the order in which keys were first set, so the encoded
// querystring is stable: parent keys come first, keys added by children or by
// a single call follow. Overwriting a key keeps its original position.
//
// Values are three-state (see Value): a present string, Null (the key is
// forced to an empty value and encodes as "key="), or Omit (the key is dropped
// from the encoded output).
package query

import (
	"net/url"
	"strings"
)

type kind uint8

const (
	present kind = iota
	null
	omit
)

// Value is a single query value. The zero value is the present empty string.
type Value struct {
	s    string
	kind kind
}

var (
	// Null forces a key to an empty value; it encodes as "key=".
	Null = Value{kind: null}
	// Omit marks a key as not provided; it is removed when encoding.
	Omit = Value{kind: omit}
)

// String returns a present value.
func String(s string) Value { return Value{s: s} }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == null }

// IsOmitted reports whether v is Omit.
func (v Value) IsOmitted() bool { return v.kind == omit }

// String returns the textual value. Null and Omit yield "".
func (v Value) String() string { return v.s }

// Query is an insertion-ordered mapping from key to Value.
//
// A nil *Query means "no query at all", which callers keep distinct from an
// empty Query. Read methods are safe on a nil receiver.
type Query struct {
	keys []string
	vals map[string]Value
}

// New returns an empty Query.
func New() *Query {
	return &Query{vals: make(map[string]Value)}
}

// Set stores v under key. A key that already exists keeps its position.
func (q *Query) Set(key string, v Value) *Query {
	if q.vals == nil {
		q.vals = make(map[string]Value)
	}
	if _, ok := q.vals[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.vals[key] = v
	return q
}

// Get returns the value stored under key.
func (q *Query) Get(key string) (Value, bool) {
	if q == nil {
		return Value{}, false
	}
	v, ok := q.vals[key]
	return v, ok
}

// Len returns the number of keys, including Null and Omit ones.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Keys returns the keys in insertion order.
func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}
	out := make([]string, len(q.keys))
	copy(out, q.keys)
	return out
}

// Clone returns a shallow copy; nil stays nil.
func (q *Query) Clone() *Query {
	if q == nil {
		return nil
	}
	c := &Query{
		keys: make([]string, len(q.keys)),
		vals: make(map[string]Value, len(q.vals)),
	}
	copy(c.keys, q.keys)
	for k, v := range q.vals {
		c.vals[k] = v
	}
	return c
}

// Encode serializes q as "k1=v1&k2=v2" in key order. Omitted keys are
// skipped, Null keys encode as "key=". A nil or fully omitted Query encodes
// as "".
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	var b strings.Builder
	for _, k := range q.keys {
		v := q.vals[k]
		if v.kind == omit {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v.s))
	}
	return b.String()
}

// Merge returns parent's entries overwritten by own's entries.
//
// Two nil inputs give nil. A single non-nil input is cloned, so mutating the
// result never affects the sources. The merge is a snapshot: later changes to
// parent are not reflected in the result.
func Merge(parent, own *Query) *Query {
	switch {
	case parent == nil && own == nil:
		return nil
	case parent == nil:
		return own.Clone()
	case own == nil:
		return parent.Clone()
	}
	out := parent.Clone()
	for _, k := range own.keys {
		out.Set(k, own.vals[k])
	}
	return out
}
