package middleware

import (
	"net/http"
	"time"

	"github.com/goflash/assetly"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goflash/assetly/middleware"

// OTelConfig configures the OpenTelemetry tracing middleware.
type OTelConfig struct {
	// Tracer defaults to otel.Tracer for this package.
	Tracer trace.Tracer
	// Propagator defaults to otel.GetTextMapPropagator().
	Propagator propagation.TextMapPropagator
	// ServiceName is recorded as service.name when set.
	ServiceName string
	// Filter skips tracing for requests it returns true for.
	Filter func(assetly.Ctx) bool
	// SpanName defaults to "METHOD route" (or path when no route matched).
	SpanName func(assetly.Ctx) string
	// Attributes adds per-request attributes.
	Attributes func(assetly.Ctx) []attribute.KeyValue
	// ExtraAttributes are added to every span.
	ExtraAttributes []attribute.KeyValue
	// Status maps the response to a span status. Default: 5xx or error is Error.
	Status func(code int, err error) (codes.Code, string)
	// RecordDuration adds http.server.duration_ms to the span.
	RecordDuration bool
}

// OTel returns tracing middleware with default settings.
func OTel(serviceName string) assetly.Middleware {
	return OTelWithConfig(OTelConfig{ServiceName: serviceName})
}

// OTelWithConfig returns middleware that starts a server span per request,
// extracting the parent from the incoming headers. The span's context
// replaces the request context so spans started further down (for example
// by Render) become children.
func OTelWithConfig(cfg OTelConfig) assetly.Middleware {
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(tracerName)
	}
	if cfg.Propagator == nil {
		cfg.Propagator = otel.GetTextMapPropagator()
	}
	if cfg.Status == nil {
		cfg.Status = defaultSpanStatus
	}

	return func(next assetly.Handler) assetly.Handler {
		return func(c assetly.Ctx) error {
			if cfg.Filter != nil && cfg.Filter(c) {
				return next(c)
			}

			r := c.Request()
			parent := cfg.Propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			name := ""
			if cfg.SpanName != nil {
				name = cfg.SpanName(c)
			}
			if name == "" {
				name = defaultSpanName(c)
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
			}
			if rt := c.Route(); rt != "" {
				attrs = append(attrs, attribute.String("http.route", rt))
			}
			if cfg.ServiceName != "" {
				attrs = append(attrs, attribute.String("service.name", cfg.ServiceName))
			}
			attrs = append(attrs, cfg.ExtraAttributes...)
			if cfg.Attributes != nil {
				attrs = append(attrs, cfg.Attributes(c)...)
			}

			spanCtx, span := cfg.Tracer.Start(parent, name,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()
			c.SetRequest(r.WithContext(spanCtx))

			start := time.Now()
			err := next(c)

			status := c.StatusCode()
			if status == 0 {
				if err != nil {
					status = http.StatusInternalServerError
				} else {
					status = http.StatusOK
				}
			}
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if cfg.RecordDuration {
				span.SetAttributes(attribute.Float64("http.server.duration_ms", float64(time.Since(start).Microseconds())/1000.0))
			}
			if err != nil {
				span.RecordError(err)
			}
			code, desc := cfg.Status(status, err)
			span.SetStatus(code, desc)
			return err
		}
	}
}

func defaultSpanName(c assetly.Ctx) string {
	if rt := c.Route(); rt != "" {
		return c.Method() + " " + rt
	}
	return c.Method() + " " + c.Path()
}

func defaultSpanStatus(code int, err error) (codes.Code, string) {
	if err != nil || code >= http.StatusInternalServerError {
		return codes.Error, http.StatusText(code)
	}
	return codes.Unset, ""
}
