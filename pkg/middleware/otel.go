package middleware

import (
	"context"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/pagefx/pkg/validate"
)

// Default tracer name for pagefx.
const defaultTracerName = "pagefx"

// OTelConfig configures the OpenTelemetry tracer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "pagefx").
	TracerName string

	// Provider overrides the global tracer provider. Mostly useful in tests.
	Provider trace.TracerProvider

	// Filter determines which requests to trace.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool
}

// OTelOption configures the OpenTelemetry tracer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = p
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{TracerName: defaultTracerName}
}

// Tracer starts spans for requests and bridge signals.
type Tracer struct {
	tracer trace.Tracer
	filter func(r *http.Request) bool
}

// NewTracer resolves a tracer from the configured provider, or from the
// global one. Configure the global provider in main() before serving:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracer(opts ...OTelOption) *Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	t := &Tracer{filter: config.Filter}
	if config.Provider != nil {
		t.tracer = config.Provider.Tracer(config.TracerName)
	} else {
		t.tracer = otel.Tracer(config.TracerName)
	}
	return t
}

// Handler traces every request with a server span. Handlers reach the span
// through trace.SpanFromContext(r.Context()).
func (t *Tracer) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.filter != nil && !t.filter(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := t.tracer.Start(r.Context(),
			fmt.Sprintf("pagefx %s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.String("http.route", routePattern(r)),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	})
}

// StartSignal opens a span around one bridge signal.
func (t *Tracer) StartSignal(ctx context.Context, signal string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{attribute.String("pagefx.signal", signal)}, attrs...)
	return t.tracer.Start(ctx, "pagefx.bridge."+signal,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordValidation annotates span with the outcome of a validation pass.
// Failed passes set an error status naming the first failing field.
func RecordValidation(span trace.Span, res validate.Result) {
	span.SetAttributes(
		attribute.String("pagefx.validation.result", ResultLabel(res)),
		attribute.Int("pagefx.validation.checked", res.Checked),
		attribute.Int("pagefx.validation.errors", len(res.Errors)),
	)
	if res.Valid {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetStatus(codes.Error, "validation failed: "+res.Errors[0].Field)
}
