package validate

import (
	"errors"

	"github.com/vango-dev/pagefx/pkg/vdom"
)

// Recognized field ids on the OAuth client configuration form.
const (
	FieldClientID     = "client_id"
	FieldClientSecret = "client_secret"
	FieldRedirectURI  = "redirect_uri"
)

// Field is one recognized control and the rules it must satisfy.
type Field struct {
	// ID is the id attribute of the control inside the container.
	ID string

	// Rules are applied in order; the first failure wins.
	Rules []Validator
}

// FieldError is a failed field and the message shown for it.
type FieldError struct {
	Field   string
	Message string
}

// Result is the outcome of one validation pass.
type Result struct {
	// Valid is the logical AND of every evaluated field.
	Valid bool

	// Checked is the number of recognized fields found in the container.
	Checked int

	// Errors lists failed fields in field order.
	Errors []FieldError
}

// Message returns the failure message for field, if it failed.
func (r Result) Message(field string) (string, bool) {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Engine validates a fixed list of fields.
type Engine struct {
	fields []Field
	cfg    config
}

// New creates an Engine for the given fields.
func New(fields []Field, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{fields: fields, cfg: cfg}
}

// Default creates an Engine for the client configuration form: client_id
// and client_secret are required, redirect_uri must be an http(s) URL.
func Default(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{fields: DefaultFields(cfg.messages), cfg: cfg}
}

// DefaultFields returns the client configuration form's fields.
func DefaultFields(msgs Messages) []Field {
	return []Field{
		{ID: FieldClientID, Rules: []Validator{Required(msgs.Required)}},
		{ID: FieldClientSecret, Rules: []Validator{Required(msgs.Required)}},
		{ID: FieldRedirectURI, Rules: []Validator{HTTPURL(msgs.InvalidURL)}},
	}
}

// Fields returns the engine's field list.
func (e *Engine) Fields() []Field {
	return e.fields
}

// Validate runs a pass over container and reports whether every
// recognized field that is present passed.
func (e *Engine) Validate(container *vdom.VNode) bool {
	return e.Check(container).Valid
}

// Check runs a pass over container, annotates the tree, and returns the
// detailed result.
func (e *Engine) Check(container *vdom.VNode) Result {
	res := Result{Valid: true}
	if container == nil {
		e.cfg.observer.ValidationFinished(res)
		return res
	}

	for _, f := range e.fields {
		control := container.Find(vdom.ByID(f.ID))
		if control == nil {
			continue
		}
		res.Checked++

		if msg, failed := e.apply(f, control.FieldValue()); failed {
			res.Valid = false
			res.Errors = append(res.Errors, FieldError{Field: f.ID, Message: msg})
			e.showError(control, msg)
			e.cfg.logger.Debug().Str("field", f.ID).Str("message", msg).Msg("field invalid")
			continue
		}
		e.clearError(control)
	}

	e.cfg.observer.ValidationFinished(res)
	return res
}

// apply runs the field's rules and returns the first failure message.
func (e *Engine) apply(f Field, value string) (string, bool) {
	for _, rule := range f.Rules {
		err := rule.Validate(value)
		if err == nil {
			continue
		}
		var ve ValidationError
		if errors.As(err, &ve) {
			return ve.Message, true
		}
		return err.Error(), true
	}
	return "", false
}

// showError marks the control's group as errored and leaves exactly one
// message node, immediately after the control.
func (e *Engine) showError(control *vdom.VNode, message string) {
	control.SetAttr("aria-invalid", "true")

	group := control.Closest(vdom.ByClass(e.cfg.groupClass))
	if group == nil {
		return
	}
	group.AddClass(e.cfg.errorClass)

	existing := group.FindAll(vdom.ByClass(e.cfg.messageClass))
	var msg *vdom.VNode
	if len(existing) > 0 {
		msg = existing[0]
		for _, extra := range existing[1:] {
			extra.Remove()
		}
	} else {
		msg = vdom.Div(vdom.Class(e.cfg.messageClass))
	}
	if control.NextSibling() != msg {
		control.After(msg)
	}
	msg.SetText(message)
}

// clearError removes every error annotation for the control.
func (e *Engine) clearError(control *vdom.VNode) {
	control.RemoveAttr("aria-invalid")

	group := control.Closest(vdom.ByClass(e.cfg.groupClass))
	if group == nil {
		return
	}
	group.RemoveClass(e.cfg.errorClass)
	for _, msg := range group.FindAll(vdom.ByClass(e.cfg.messageClass)) {
		msg.Remove()
	}
}
