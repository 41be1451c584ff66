package ctx

import (
	"bytes"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goflash/assetly/ctx"

// Template is the part of *html/template.Template (and *text/template.Template)
// used by Render.
type Template interface {
	Name() string
	Execute(w io.Writer, data any) error
}

var renderBufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Render executes tpl and writes the result as text/html with the given status.
//
// The template data is a fresh map holding the application locals overlaid by
// data, so handler values win over locals of the same name. The output is
// buffered: when execution fails nothing is written and the error is returned
// to the app's ErrorHandler.
//
// A span named "render <template>" is recorded with the global
// OpenTelemetry tracer provider.
//
// Example:
//
//	var page = template.Must(template.New("page").Parse(
//		`<script src="{{ .assets.File "app.js" }}"></script><h1>{{ .Title }}</h1>`))
//
//	a.GET("/", func(c ctx.Ctx) error {
//		return c.Render(http.StatusOK, page, map[string]any{"Title": "Home"})
//	})
func (c *DefaultContext) Render(status int, tpl Template, data map[string]any) error {
	_, span := otel.Tracer(tracerName).Start(c.Context(), "render "+tpl.Name(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("template.name", tpl.Name()),
			attribute.Int("template.locals", len(c.locals)),
		),
	)
	defer span.End()

	m := make(map[string]any, len(c.locals)+len(data))
	for k, v := range c.locals {
		m[k] = v
	}
	for k, v := range data {
		m[k] = v
	}

	buf := renderBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer renderBufPool.Put(buf)

	if err := tpl.Execute(buf, m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "template execution failed")
		LoggerFromContext(c.Context()).Error("render failed", "template", tpl.Name(), "err", err)
		return err
	}
	_, err := c.Send(status, "text/html; charset=utf-8", buf.Bytes())
	return err
}
