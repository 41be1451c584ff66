package query

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	ms "github.com/mitchellh/mapstructure"
)

// TagName is the struct tag read by From when converting structs.
const TagName = "query"

// newMSDecoder is a package-level hook to allow tests to stub mapstructure decoder creation.
var newMSDecoder = ms.NewDecoder

// Parse reads a literal querystring such as "?v=1&q=foo". A leading '?' is
// ignored. A key without '=' gets the empty string. When a key repeats, it
// keeps its first position and its last value. Empty input gives nil.
func Parse(s string) *Query {
	s = strings.TrimPrefix(s, "?")
	if s == "" {
		return nil
	}
	q := New()
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		q.Set(unescape(k), String(unescape(v)))
	}
	return q
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}

// From converts the supported query inputs into a Query:
//
//	nil                      -> nil
//	*Query, Query            -> clone
//	string                   -> Parse
//	url.Values               -> first value of each key, keys sorted
//	map[string]string        -> keys sorted
//	map[string]Value         -> keys sorted
//	map[string]any           -> keys sorted, nil values become Null
//	struct, *struct          -> fields by `query` tag via mapstructure, keys sorted
//
// Anything else yields nil. From never fails.
func From(v any) *Query {
	switch t := v.(type) {
	case nil:
		return nil
	case *Query:
		return t.Clone()
	case Query:
		return t.Clone()
	case string:
		return Parse(t)
	case url.Values:
		q := New()
		for _, k := range sortedKeys(t) {
			if vs := t[k]; len(vs) > 0 {
				q.Set(k, String(vs[0]))
			} else {
				q.Set(k, Null)
			}
		}
		return q
	case map[string]string:
		q := New()
		for _, k := range sortedKeys(t) {
			q.Set(k, String(t[k]))
		}
		return q
	case map[string]Value:
		q := New()
		for _, k := range sortedKeys(t) {
			q.Set(k, t[k])
		}
		return q
	case map[string]any:
		return fromMap(t)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	m := map[string]any{}
	dec, err := newMSDecoder(&ms.DecoderConfig{TagName: TagName, Result: &m})
	if err != nil {
		return nil
	}
	if err := dec.Decode(rv.Interface()); err != nil {
		return nil
	}
	return fromMap(m)
}

func fromMap(m map[string]any) *Query {
	q := New()
	for _, k := range sortedKeys(m) {
		q.Set(k, valueOf(m[k]))
	}
	return q
}

func valueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case string:
		return String(t)
	case fmt.Stringer:
		return String(t.String())
	}
	return String(fmt.Sprint(v))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
