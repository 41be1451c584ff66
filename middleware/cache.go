package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goflash/assetly"
)

// CacheConfig configures the Cache middleware.
type CacheConfig struct {
	// VersionKeys are query keys that mark a fingerprinted URI, such as the
	// "v" of "/static/app.js?v=3". Default: ["v"].
	VersionKeys []string
	// Versioned replaces the VersionKeys check when set.
	Versioned func(assetly.Ctx) bool
	// MaxAge applies to versioned URIs. Default: one year.
	MaxAge time.Duration
	// Fallback is the Cache-Control value for unversioned URIs.
	// Default: "no-cache". Use "-" to leave the header unset.
	Fallback string
}

// Cache returns middleware that marks versioned asset URIs as immutable so
// browsers and CDNs keep them until the version changes, and revalidates
// everything else. Only GET and HEAD requests are touched; a handler may still
// override the header.
//
//	assets := assetly.Create("/static", map[string]any{"v": buildID})
//	a.Use(middleware.Cache(middleware.CacheConfig{Versioned: middleware.VersionedBy(assets)}))
//	a.Static(assets.Path(), "./public")
func Cache(cfgs ...CacheConfig) assetly.Middleware {
	cfg := CacheConfig{VersionKeys: []string{"v"}, MaxAge: 365 * 24 * time.Hour, Fallback: "no-cache"}
	if len(cfgs) > 0 {
		c := cfgs[0]
		if len(c.VersionKeys) > 0 {
			cfg.VersionKeys = c.VersionKeys
		}
		if c.MaxAge > 0 {
			cfg.MaxAge = c.MaxAge
		}
		if c.Fallback != "" {
			cfg.Fallback = c.Fallback
		}
		cfg.Versioned = c.Versioned
	}
	if cfg.Versioned == nil {
		keys := cfg.VersionKeys
		cfg.Versioned = func(c assetly.Ctx) bool {
			for _, k := range keys {
				if c.Query(k) != "" {
					return true
				}
			}
			return false
		}
	}
	immutable := "public, max-age=" + strconv.Itoa(int(cfg.MaxAge/time.Second)) + ", immutable"

	return func(next assetly.Handler) assetly.Handler {
		return func(c assetly.Ctx) error {
			if m := c.Method(); m != http.MethodGet && m != http.MethodHead {
				return next(c)
			}
			switch {
			case cfg.Versioned(c):
				c.Header("Cache-Control", immutable)
			case cfg.Fallback != "-":
				c.Header("Cache-Control", cfg.Fallback)
			}
			return next(c)
		}
	}
}

// VersionedBy reports a request as versioned when its query carries every
// present value of b's query (for example the "v=3" published by the root
// builder). Null values must be present and empty; omitted values are
// ignored. A builder without a query versions nothing.
func VersionedBy(b *assetly.Builder) func(assetly.Ctx) bool {
	want := b.Query()
	return func(c assetly.Ctx) bool {
		if want.Len() == 0 {
			return false
		}
		got := c.Request().URL.Query()
		matched := 0
		for _, k := range want.Keys() {
			v, _ := want.Get(k)
			if v.IsOmitted() {
				continue
			}
			vals, ok := got[k]
			if !ok || len(vals) == 0 || vals[0] != v.String() {
				return false
			}
			matched++
		}
		return matched > 0
	}
}
