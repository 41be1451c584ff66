package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goflash/assetly/app"
	"github.com/goflash/assetly/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
property_name: static
assets:
  base: /static
  query: "v=1&Lang=pt"
  provides:
    css:
      base: stylesheets/
      query:
        w: 2
    js:
      query: ""
    inline:
      base: ""
      query: "inline=1"
    fonts:
      provides:
        woff:
          base: w2
`

const productionYAML = `
assets:
  base: //cdn.example.com
  version: 7
`

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadBaseConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", baseYAML)

	cfg, err := Load(context.Background(), Options{Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "static", cfg.PropertyName)

	b := cfg.Builder()
	assert.Equal(t, "/static?v=1&Lang=pt", b.Dir())
	assert.Equal(t, "/static/stylesheets/main.css?v=1&Lang=pt&w=2", b.Sub("css").File("main.css"))
	assert.Equal(t, "/static/js/app.js?v=1&Lang=pt", b.Sub("js").File("app.js"))
	assert.Equal(t, "/static?v=1&Lang=pt&inline=1", b.Sub("inline").Dir())
	assert.Equal(t, "/static/fonts/w2/a.woff2?v=1&Lang=pt", b.Sub("fonts").Sub("woff").File("a.woff2"))
	assert.Equal(t, []string{"css", "fonts", "inline", "js"}, b.Names())
}

func TestLoadEnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", baseYAML)
	writeConfig(t, dir, "assets.production.yaml", productionYAML)

	cfg, err := Load(context.Background(), Options{Paths: []string{dir}, Environment: "production"})
	require.NoError(t, err)

	b := cfg.Builder()
	assert.Equal(t, "//cdn.example.com/7/app.js?v=1&Lang=pt", b.File("app.js"))
	assert.Equal(t, "//cdn.example.com/7/stylesheets/a.css?v=1&Lang=pt&w=2", b.Sub("css").File("a.css"))
}

func TestLoadMissingOverlayIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", baseYAML)

	cfg, err := Load(context.Background(), Options{Paths: []string{dir}, Environment: "staging"})
	require.NoError(t, err)
	assert.Equal(t, "/static", cfg.Builder().Path())
}

func TestLoadMissingFileYieldsEmptyRoot(t *testing.T) {
	cfg, err := Load(context.Background(), Options{Paths: []string{t.TempDir()}})
	require.NoError(t, err)
	b := cfg.Builder()
	assert.Equal(t, "", b.Dir())
	assert.Equal(t, "a.js", b.File("a.js"))
	assert.Equal(t, "", cfg.ExpressOptions().PropertyName)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", baseYAML)
	t.Setenv("ASSETLY_ASSETS_BASE", "/local")
	t.Setenv("ASSETLY_ASSETS_QUERY", "dev=1")

	cfg, err := Load(context.Background(), Options{Paths: []string{dir}})
	require.NoError(t, err)
	b := cfg.Builder()
	assert.Equal(t, "/local/x.js?dev=1", b.File("x.js"))
	assert.Equal(t, "/local/stylesheets?dev=1&w=2", b.Sub("css").Dir())
}

func TestLoadCustomNameAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "site.json", `{"assets": {"base": "/s", "query": {"v": 3}}}`)

	cfg, err := Load(context.Background(), Options{Name: "site", Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "/s/a.png?v=3", cfg.Builder().File("a.png"))
}

func TestLoadInvalidPropertyName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", "property_name: \"not valid\"\n")

	_, err := Load(context.Background(), Options{Paths: []string{dir}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadNegativeVersion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", "assets:\n  version: -1\n")

	_, err := Load(context.Background(), Options{Paths: []string{dir}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", "assets: [unclosed\n")

	_, err := Load(context.Background(), Options{Paths: []string{dir}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadUnsupportedQueryValue(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", "assets:\n  query: [1, 2]\n")

	_, err := Load(context.Background(), Options{Paths: []string{dir}})
	require.Error(t, err)
}

func TestNodeSpec(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }
	q := query.Parse("v=1")

	parent := (&Config{Assets: Node{Base: str("/p")}}).Builder()
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"empty defaults to name", Node{}, "/p/sub"},
		{"query only defaults to name", Node{Query: q}, "/p/sub?v=1"},
		{"empty base", Node{Base: str("")}, "/p"},
		{"version only", Node{Version: num(2)}, "/p/2"},
		{"base and version", Node{Base: str("b"), Version: num(2), Query: q}, "/p/b/2?v=1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parent.Provides("sub", tc.node.Spec())
			assert.Equal(t, tc.want, parent.Sub("sub").Dir())
		})
	}
}

func TestSetupPublishesOnApp(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assets.yaml", baseYAML)
	cfg, err := Load(context.Background(), Options{Paths: []string{dir}})
	require.NoError(t, err)

	a := app.New()
	b := cfg.Setup(a)
	assert.Same(t, b, a.Get("static"))
	assert.Same(t, b, a.Locals()["static"])
	assert.Nil(t, a.Get("assets"))
}

func TestQueryDecodeHook(t *testing.T) {
	hook := QueryDecodeHookFunc()
	strType := reflect.TypeOf("")
	mapType := reflect.TypeOf(map[string]any{})

	out, err := hook(strType, strType, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	out, err = hook(strType, queryPtrType, "?v=1&a=2")
	require.NoError(t, err)
	assert.Equal(t, "v=1&a=2", out.(*query.Query).Encode())

	out, err = hook(strType, queryPtrType, "")
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = hook(mapType, queryPtrType, map[string]any{"v": 1, "n": nil})
	require.NoError(t, err)
	assert.Equal(t, "n=&v=1", out.(*query.Query).Encode())

	q := query.Parse("a=1")
	out, err = hook(queryPtrType, queryType, q)
	require.NoError(t, err)
	assert.Same(t, q, out)

	_, err = hook(reflect.TypeOf(1), queryPtrType, 1)
	assert.Error(t, err)
}
