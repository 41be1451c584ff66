package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/goflash/assetly"
)

// DefaultGzipTypes are the content types compressed when GzipConfig.Types is
// empty. Images and fonts are usually compressed already.
var DefaultGzipTypes = []string{
	"text/",
	"application/javascript",
	"application/json",
	"application/xml",
	"image/svg+xml",
}

// GzipConfig configures the gzip middleware.
type GzipConfig struct {
	// Level is the compress/gzip level. Default: gzip.DefaultCompression.
	Level int
	// Types are Content-Type prefixes eligible for compression.
	// Default: DefaultGzipTypes.
	Types []string
}

// gzipPools holds one *sync.Pool of writers per compression level.
var gzipPools sync.Map // map[int]*sync.Pool

func getGzipWriter(level int, w io.Writer) (*gzip.Writer, func()) {
	poolAny, _ := gzipPools.LoadOrStore(level, &sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(io.Discard, level)
		return gw
	}})
	pool := poolAny.(*sync.Pool)
	gw := pool.Get().(*gzip.Writer)
	gw.Reset(w)
	put := func() {
		_ = gw.Close()
		gw.Reset(io.Discard)
		pool.Put(gw)
	}
	return gw, put
}

// Gzip returns middleware that compresses responses when the client sends
// Accept-Encoding: gzip and the response Content-Type matches one of the
// configured prefixes. HEAD requests are never compressed.
//
// Use it before Static so stylesheets and scripts are served compressed:
//
//	a.Use(middleware.Gzip())
//	a.Static("/static", "./public")
func Gzip(cfgs ...GzipConfig) assetly.Middleware {
	cfg := GzipConfig{Level: gzip.DefaultCompression, Types: DefaultGzipTypes}
	if len(cfgs) > 0 {
		if cfgs[0].Level != 0 {
			cfg.Level = cfgs[0].Level
		}
		if len(cfgs[0].Types) > 0 {
			cfg.Types = cfgs[0].Types
		}
	}
	return func(next assetly.Handler) assetly.Handler {
		return func(c assetly.Ctx) error {
			r := c.Request()
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") || c.Method() == http.MethodHead {
				return next(c)
			}

			grw := &gzipResponseWriter{rw: c.ResponseWriter(), level: cfg.Level, types: cfg.Types}
			c.SetResponseWriter(grw)
			defer grw.Close()

			return next(c)
		}
	}
}

type gzipResponseWriter struct {
	rw          http.ResponseWriter
	gz          *gzip.Writer
	put         func()
	level       int
	types       []string
	wroteHeader bool
	useGzip     bool
}

func (g *gzipResponseWriter) Header() http.Header { return g.rw.Header() }

func (g *gzipResponseWriter) WriteHeader(status int) {
	if g.wroteHeader {
		return
	}
	g.wroteHeader = true
	g.Header().Add("Vary", "Accept-Encoding")

	enc := g.Header().Get("Content-Encoding")
	if (enc != "" && enc != "identity") ||
		status == http.StatusNoContent || status == http.StatusNotModified ||
		!g.compressible(g.Header().Get("Content-Type")) {
		g.rw.WriteHeader(status)
		return
	}

	g.useGzip = true
	g.Header().Del("Content-Length")
	g.Header().Set("Content-Encoding", "gzip")
	g.rw.WriteHeader(status)
}

func (g *gzipResponseWriter) compressible(contentType string) bool {
	for _, t := range g.types {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}

func (g *gzipResponseWriter) Write(p []byte) (int, error) {
	if !g.wroteHeader {
		if g.Header().Get("Content-Type") == "" {
			g.Header().Set("Content-Type", http.DetectContentType(p))
		}
		g.WriteHeader(http.StatusOK)
	}
	if !g.useGzip {
		return g.rw.Write(p)
	}
	if g.gz == nil {
		g.gz, g.put = getGzipWriter(g.level, g.rw)
	}
	return g.gz.Write(p)
}

// Close finishes the gzip stream. A compressed response without body still
// gets an empty gzip stream so it matches its Content-Encoding.
func (g *gzipResponseWriter) Close() error {
	if g.gz == nil {
		if !g.useGzip {
			return nil
		}
		g.gz, g.put = getGzipWriter(g.level, g.rw)
	}
	g.put()
	g.gz, g.put = nil, nil
	return nil
}

// Flush flushes buffered compressed data and the underlying writer.
func (g *gzipResponseWriter) Flush() {
	if g.gz != nil {
		_ = g.gz.Flush()
	}
	if f, ok := g.rw.(http.Flusher); ok {
		f.Flush()
	}
}

var (
	_ http.ResponseWriter = (*gzipResponseWriter)(nil)
	_ http.Flusher        = (*gzipResponseWriter)(nil)
)
