package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Category groups codes by where they arise.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryRuntime    Category = "runtime"
	CategoryProtocol   Category = "protocol"
	CategoryValidation Category = "validation"
	CategoryCLI        Category = "cli"
)

// Location is a position in a file, usually the config file. Column is
// optional.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l *Location) String() string {
	switch {
	case l == nil:
		return ""
	case l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error carries a registered code with what the CLI prints and what an
// HTTP client receives. Codes look like "P011"; errors made with Newf have
// none.
type Error struct {
	Code       string
	Category   Category
	Message    string
	Detail     string
	Location   *Location
	Context    []string // lines around Location
	Suggestion string
	Status     int // HTTP status, 500 when zero
	Wrapped    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// HTTPStatus returns the status to report for e, defaulting to 500.
func (e *Error) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// WithLocation adds a file location and reads the lines around it.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = contextLines(file, line, contextSize)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// contextSize is how many config lines Format shows around a location.
const contextSize = 3

// contextLines returns up to size lines of file centered on line.
func contextLines(file string, line, size int) []string {
	data, err := os.ReadFile(file)
	if err != nil || line < 1 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	first := max(line-size/2, 1)
	last := min(line+size/2, len(lines))
	if first > last {
		return nil
	}
	return lines[first-1 : last]
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		Status:   template.Status,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error. Errors that already carry
// an *Error anywhere in their chain are returned as that *Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var pe *Error
	if stderrors.As(err, &pe) {
		return pe
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var pe *Error
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
