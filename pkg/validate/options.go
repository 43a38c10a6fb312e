package validate

import "github.com/rs/zerolog"

// Messages holds the failure messages of the default fields.
type Messages struct {
	Required   string `yaml:"required"`
	InvalidURL string `yaml:"invalid_url"`
}

// DefaultMessages returns the English messages.
func DefaultMessages() Messages {
	return Messages{
		Required:   "required",
		InvalidURL: "invalid URL, expected http://host:port/path form",
	}
}

// Observer is told about every completed pass.
type Observer interface {
	ValidationFinished(res Result)
}

type nopObserver struct{}

func (nopObserver) ValidationFinished(Result) {}

type config struct {
	groupClass   string
	errorClass   string
	messageClass string
	messages     Messages
	logger       zerolog.Logger
	observer     Observer
}

func defaultConfig() config {
	return config{
		groupClass:   "form-group",
		errorClass:   "error",
		messageClass: "error-message",
		messages:     DefaultMessages(),
		logger:       zerolog.Nop(),
		observer:     nopObserver{},
	}
}

// Option configures an Engine.
type Option func(*config)

// WithMessages overrides the default fields' messages. Empty entries keep
// the defaults.
func WithMessages(m Messages) Option {
	return func(c *config) {
		if m.Required != "" {
			c.messages.Required = m.Required
		}
		if m.InvalidURL != "" {
			c.messages.InvalidURL = m.InvalidURL
		}
	}
}

// WithClasses overrides the group, error and message class names.
func WithClasses(group, errorClass, message string) Option {
	return func(c *config) {
		if group != "" {
			c.groupClass = group
		}
		if errorClass != "" {
			c.errorClass = errorClass
		}
		if message != "" {
			c.messageClass = message
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithObserver reports every pass to o.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}
