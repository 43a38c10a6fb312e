// Package middleware provides observability for pagefx: Prometheus metrics
// and OpenTelemetry tracing for toasts, validation passes, bridge signals
// and HTTP requests.
//
// # Prometheus Metrics
//
// Metrics implements toast.Observer and validate.Observer, so it can be
// handed straight to the components it measures:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("pagefx"))
//	toasts := toast.New(body, l, toast.WithObserver(m))
//	engine := validate.Default(validate.WithObserver(m))
//	r.Use(m.Handler)
//
// Metrics collected:
//   - pagefx_toasts_total{kind}: toasts shown
//   - pagefx_toasts_active: toasts currently on a surface
//   - pagefx_toast_dismissals_total{trigger}: closing transitions by cause
//   - pagefx_validations_total{result}: passes by outcome (valid, invalid, vacuous)
//   - pagefx_validation_failures_total{field}: failed fields
//   - pagefx_bridge_signals_total{signal}: host lifecycle signals handled
//   - pagefx_http_requests_total{route,status}: HTTP requests
//   - pagefx_http_request_duration_seconds{route}: HTTP latency
//
// # OpenTelemetry
//
// Tracer wraps the global tracer provider. Its Handler starts a server span
// per request, and StartSignal opens a child span around a bridge signal:
//
//	tr := middleware.NewTracer(middleware.WithTracerName("pagefx"))
//	r.Use(tr.Handler)
//	ctx, span := tr.StartSignal(r.Context(), "before_submit")
//	defer span.End()
package middleware
