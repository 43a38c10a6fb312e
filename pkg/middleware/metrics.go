package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/validate"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pagefx").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pagefx",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors.
type Metrics struct {
	toastsTotal        *prometheus.CounterVec
	toastsActive       prometheus.Gauge
	toastDismissals    *prometheus.CounterVec
	validationsTotal   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	bridgeSignals      *prometheus.CounterVec
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

var (
	_ toast.Observer    = (*Metrics)(nil)
	_ validate.Observer = (*Metrics)(nil)
)

// NewMetrics registers the collectors with the configured registry.
// Registering twice against the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		toastsTotal: counter("toasts_total", "Total number of toasts shown", "kind"),

		toastsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_active",
			Help:        "Number of toasts currently on a surface",
			ConstLabels: config.ConstLabels,
		}),

		toastDismissals:    counter("toast_dismissals_total", "Toast closing transitions by trigger", "trigger"),
		validationsTotal:   counter("validations_total", "Validation passes by result", "result"),
		validationFailures: counter("validation_failures_total", "Failed fields by field id", "field"),
		bridgeSignals:      counter("bridge_signals_total", "Host lifecycle signals handled", "signal"),
		requestsTotal:      counter("http_requests_total", "HTTP requests by route and status", "route", "status"),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// ToastShown implements toast.Observer.
func (m *Metrics) ToastShown(kind toast.Kind) {
	m.toastsTotal.WithLabelValues(string(kind)).Inc()
	m.toastsActive.Inc()
}

// ToastDismissed implements toast.Observer.
func (m *Metrics) ToastDismissed(_ toast.Kind, trigger toast.Trigger) {
	m.toastDismissals.WithLabelValues(string(trigger)).Inc()
}

// ToastRemoved implements toast.Observer.
func (m *Metrics) ToastRemoved(toast.Kind) {
	m.toastsActive.Dec()
}

// ValidationFinished implements validate.Observer.
func (m *Metrics) ValidationFinished(res validate.Result) {
	m.validationsTotal.WithLabelValues(ResultLabel(res)).Inc()
	for _, e := range res.Errors {
		m.validationFailures.WithLabelValues(e.Field).Inc()
	}
}

// RecordSignal counts one handled bridge signal.
func (m *Metrics) RecordSignal(signal string) {
	m.bridgeSignals.WithLabelValues(signal).Inc()
}

// Handler records request count and latency, labelled by the chi route
// pattern so path parameters do not explode cardinality.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// ResultLabel classifies a validation result. A pass that evaluated no
// fields is reported as "vacuous" rather than "valid".
func ResultLabel(res validate.Result) string {
	switch {
	case !res.Valid:
		return "invalid"
	case res.Checked == 0:
		return "vacuous"
	default:
		return "valid"
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
