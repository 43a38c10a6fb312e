package bridge

import (
	"github.com/rs/zerolog"

	"github.com/vango-dev/pagefx/pkg/middleware"
)

// Messages are the toast texts raised by the bridge.
type Messages struct {
	FixErrors     string `yaml:"fix_errors"`
	RequestFailed string `yaml:"request_failed"`
	Saved         string `yaml:"saved"`
}

// DefaultMessages returns the English toast texts.
func DefaultMessages() Messages {
	return Messages{
		FixErrors:     "Please fix the errors in the form",
		RequestFailed: "Request failed. Please try again.",
		Saved:         "Configuration saved successfully!",
	}
}

// SignalRecorder counts handled signals. *middleware.Metrics satisfies it.
type SignalRecorder interface {
	RecordSignal(signal string)
}

type nopRecorder struct{}

func (nopRecorder) RecordSignal(string) {}

type config struct {
	messages     Messages
	successPaths []string
	location     func() string
	logger       zerolog.Logger
	recorder     SignalRecorder
	tracer       *middleware.Tracer
}

func defaultConfig() config {
	return config{
		messages:     DefaultMessages(),
		successPaths: []string{"/config"},
		location:     func() string { return "/" },
		logger:       zerolog.Nop(),
		recorder:     nopRecorder{},
	}
}

// Option configures a Bridge.
type Option func(*config)

// WithMessages overrides toast texts. Empty entries keep their defaults.
func WithMessages(m Messages) Option {
	return func(c *config) {
		if m.FixErrors != "" {
			c.messages.FixErrors = m.FixErrors
		}
		if m.RequestFailed != "" {
			c.messages.RequestFailed = m.RequestFailed
		}
		if m.Saved != "" {
			c.messages.Saved = m.Saved
		}
	}
}

// WithSuccessPaths sets the request paths whose successful completion
// raises the saved toast. Default: /config. See MatchPath for the pattern
// syntax.
func WithSuccessPaths(paths ...string) Option {
	return func(c *config) {
		c.successPaths = append([]string(nil), paths...)
	}
}

// WithLocation supplies the current page path used to mark the active
// navigation link after content is replaced.
func WithLocation(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.location = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithSignalRecorder counts every handled signal.
func WithSignalRecorder(r SignalRecorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithTracer wraps every signal in a span.
func WithTracer(t *middleware.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}
