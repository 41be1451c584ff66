package query

import (
	"errors"
	"net/url"
	"testing"

	ms "github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetKeepsFirstPosition(t *testing.T) {
	q := New().Set("v", String("1")).Set("q", String("foo")).Set("v", String("2"))
	assert.Equal(t, []string{"v", "q"}, q.Keys())
	assert.Equal(t, "v=2&q=foo", q.Encode())
}

func TestEncodeNullAndOmit(t *testing.T) {
	q := New().
		Set("v", String("1")).
		Set("a", Null).
		Set("gone", Omit)
	assert.Equal(t, "v=1&a=", q.Encode())
	assert.Equal(t, 3, q.Len())
}

func TestEncodeEscapes(t *testing.T) {
	q := New().Set("a b", String("x&y=z"))
	assert.Equal(t, "a+b=x%26y%3Dz", q.Encode())
}

func TestEncodeNilAndAllOmitted(t *testing.T) {
	var q *Query
	assert.Equal(t, "", q.Encode())
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Keys())
	assert.Equal(t, "", New().Set("v", Omit).Encode())
	assert.Equal(t, "", New().Encode())
}

func TestValueStates(t *testing.T) {
	assert.True(t, Null.IsNull())
	assert.False(t, Null.IsOmitted())
	assert.True(t, Omit.IsOmitted())
	assert.False(t, String("").IsNull())
	assert.Equal(t, "x", String("x").String())
}

func TestMerge(t *testing.T) {
	t.Run("both nil", func(t *testing.T) {
		assert.Nil(t, Merge(nil, nil))
	})

	t.Run("single side is copied", func(t *testing.T) {
		src := New().Set("v", String("1"))
		for _, got := range []*Query{Merge(src, nil), Merge(nil, src)} {
			require.NotNil(t, got)
			got.Set("w", String("2"))
			assert.Equal(t, 1, src.Len())
			assert.Equal(t, "v=1&w=2", got.Encode())
		}
	})

	t.Run("own wins and parent order first", func(t *testing.T) {
		parent := New().Set("v", String("1")).Set("x", String("p"))
		own := New().Set("w", String("2")).Set("v", String("3"))
		got := Merge(parent, own)
		assert.Equal(t, "v=3&x=p&w=2", got.Encode())
		assert.Equal(t, "v=1&x=p", parent.Encode())
	})

	t.Run("omit overrides parent", func(t *testing.T) {
		parent := New().Set("v", String("1"))
		got := Merge(parent, New().Set("v", Omit))
		assert.Equal(t, "", got.Encode())
	})

	t.Run("empty own is not nil", func(t *testing.T) {
		got := Merge(nil, New())
		require.NotNil(t, got)
		assert.Equal(t, "", got.Encode())
	})
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"v=1", "v=1"},
		{"?v=1&q=foo", "v=1&q=foo"},
		{"a&b=", "a=&b="},
		{"v=1&v=2&w=3", "v=2&w=3"},
		{"x=a%20b&&y=c+d", "x=a+b&y=c+d"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.in).Encode())
		})
	}
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("?"))
}

func TestFrom(t *testing.T) {
	src := New().Set("z", String("1")).Set("a", String("2"))

	type version struct {
		V    int    `query:"v"`
		Lang string `query:"lang"`
	}

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"query pointer keeps order", src, "z=1&a=2"},
		{"query value", *src, "z=1&a=2"},
		{"string", "?b=1&a=2", "b=1&a=2"},
		{"map string", map[string]string{"b": "1", "a": "2"}, "a=2&b=1"},
		{"map any", map[string]any{"v": 1, "a": nil, "ok": true, "gone": Omit}, "a=&ok=true&v=1"},
		{"map value", map[string]Value{"v": String("1"), "n": Null}, "n=&v=1"},
		{"url values", url.Values{"v": {"1", "2"}, "e": {}}, "e=&v=1"},
		{"struct", version{V: 2, Lang: "pt"}, "lang=pt&v=2"},
		{"struct pointer", &version{V: 3}, "lang=&v=3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := From(tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Encode())
		})
	}

	assert.Nil(t, From(nil))
	assert.Nil(t, From(42))
	assert.Nil(t, From((*version)(nil)))

	got := From(src)
	got.Set("x", String("y"))
	assert.Equal(t, 2, src.Len(), "From must copy")
}

func TestFromDecoderFailure(t *testing.T) {
	orig := newMSDecoder
	t.Cleanup(func() { newMSDecoder = orig })
	newMSDecoder = func(*ms.DecoderConfig) (*ms.Decoder, error) { return nil, errors.New("boom") }

	assert.Nil(t, From(struct{ V int }{V: 1}))
}
