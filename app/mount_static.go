package app

import (
	"net/http"
	"os"
	"strings"
)

// Static serves files from a directory under a URL prefix for GET and HEAD
// requests. It delegates to StaticDirs with a single directory.
//
// In development the prefix usually matches the path of the asset builder so
// that the URIs it produces resolve locally:
//
//	assets := builder.New(builder.Path("/static"))
//	a.Static(assets.Path(), "./public")
func (a *DefaultApp) Static(prefix, dir string) { a.StaticDirs(prefix, dir) }

// StaticDirs serves files from multiple directories under the same URL prefix
// for GET and HEAD requests. Directories are searched in order; the first
// existing file is served. Empty directory names are ignored and nothing is
// registered when no directory remains.
//
// Static routes run through the global middleware, so compression, logging
// and cache headers apply to assets as well.
//
// Example:
//
//	// build output first, then the checked-in public files
//	a.StaticDirs("/static", "./dist", "./public")
func (a *DefaultApp) StaticDirs(prefix string, dirs ...string) {
	prefix = cleanPath(prefix)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	mfs := multiFS{}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		mfs = append(mfs, http.Dir(d))
	}
	if len(mfs) == 0 {
		return
	}

	fs := http.StripPrefix(prefix, http.FileServer(mfs))
	h := func(c Ctx) error {
		fs.ServeHTTP(c.ResponseWriter(), c.Request())
		return nil
	}
	a.handle(http.MethodGet, prefix+"*filepath", h)
	a.handle(http.MethodHead, prefix+"*filepath", h)
	a.Logger().Debug("static mounted", "prefix", prefix, "dirs", len(mfs))
}

// multiFS is an http.FileSystem that tries multiple underlying filesystems in
// order. The first successful Open wins; if all fail, the last error is returned.
type multiFS []http.FileSystem

func (m multiFS) Open(name string) (http.File, error) {
	var lastErr error
	for _, fs := range m {
		f, err := fs.Open(name)
		if err == nil {
			return f, nil
		}
		lastErr = err
		if os.IsNotExist(err) {
			continue
		}
	}
	if lastErr == nil {
		lastErr = os.ErrNotExist
	}
	return nil, lastErr
}
