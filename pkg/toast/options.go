package toast

import (
	"time"

	"github.com/rs/zerolog"
)

// Emitter receives toast lifecycle events.
type Emitter interface {
	Emit(name string, data any)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(name string, data any)

// Emit implements Emitter.
func (f EmitterFunc) Emit(name string, data any) { f(name, data) }

// Observer is notified of lifecycle transitions, typically to record
// metrics.
type Observer interface {
	ToastShown(kind Kind)
	ToastDismissed(kind Kind, trigger Trigger)
	ToastRemoved(kind Kind)
}

type nopObserver struct{}

func (nopObserver) ToastShown(Kind)              {}
func (nopObserver) ToastDismissed(Kind, Trigger) {}
func (nopObserver) ToastRemoved(Kind)            {}

// Titles holds the heading shown above each kind of message.
type Titles struct {
	Info    string `yaml:"info"`
	Success string `yaml:"success"`
	Error   string `yaml:"error"`
}

// DefaultTitles returns the English titles.
func DefaultTitles() Titles {
	return Titles{Info: "Info", Success: "Success", Error: "Error"}
}

// For returns the title for kind, falling back to the default titles for
// empty entries.
func (t Titles) For(kind Kind) string {
	def := DefaultTitles()
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	switch kind {
	case KindSuccess:
		return pick(t.Success, def.Success)
	case KindError:
		return pick(t.Error, def.Error)
	default:
		return pick(t.Info, def.Info)
	}
}

type config struct {
	duration       time.Duration
	closeDelay     time.Duration
	closeAnimation string
	titles         Titles
	dismissPath    string
	logger         zerolog.Logger
	emitter        Emitter
	observer       Observer
}

func defaultConfig() config {
	return config{
		duration:       DefaultDuration,
		closeDelay:     DefaultCloseDelay,
		closeAnimation: "slideIn 0.3s ease reverse",
		titles:         DefaultTitles(),
		logger:         zerolog.Nop(),
		observer:       nopObserver{},
	}
}

// Option configures a Manager.
type Option func(*config)

// WithDuration sets the default active duration.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithCloseDelay sets the closing animation window.
func WithCloseDelay(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.closeDelay = d
		}
	}
}

// WithTitles sets the per-kind titles.
func WithTitles(t Titles) Option {
	return func(c *config) {
		c.titles = t
	}
}

// WithDismissPath makes the close button post to path, with "{id}"
// replaced by the toast id (e.g. "/toasts/{id}/dismiss").
func WithDismissPath(path string) Option {
	return func(c *config) {
		c.dismissPath = path
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithEmitter mirrors lifecycle events to e.
func WithEmitter(e Emitter) Option {
	return func(c *config) {
		c.emitter = e
	}
}

// WithObserver reports lifecycle transitions to o.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}
