package validate

import (
	"net/url"
	"strings"
)

// Validator is an interface for form field validation.
type Validator interface {
	// Validate checks if the value is valid.
	// Returns nil if valid, or an error with a message if invalid.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Required validates that the value is non-empty after trimming
// whitespace.
func Required(msg string) Validator {
	if msg == "" {
		msg = DefaultMessages().Required
	}
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// HTTPURL validates that the value parses as an absolute URL whose scheme
// is http or https. Parse errors are reported as validation failures.
func HTTPURL(msg string) Validator {
	if msg == "" {
		msg = DefaultMessages().InvalidURL
	}
	return ValidatorFunc(func(value string) error {
		if !isHTTPURL(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.Hostname() != ""
}

// Func wraps a predicate as a Validator that fails with msg.
func Func(msg string, ok func(value string) bool) Validator {
	return ValidatorFunc(func(value string) error {
		if !ok(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}
