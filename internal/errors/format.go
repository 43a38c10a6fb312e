package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// term styles terminal output. It follows stderr's capabilities until
// SetColor overrides them.
var term = lipgloss.NewRenderer(os.Stderr)

var (
	codeStyle   = term.NewStyle().Bold(true)
	errorStyle  = term.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	arrowStyle  = term.NewStyle().Foreground(lipgloss.Color("1"))
	placeStyle  = term.NewStyle().Foreground(lipgloss.Color("6"))
	gutterStyle = term.NewStyle().Foreground(lipgloss.Color("8"))
	detailStyle = term.NewStyle().Width(detailWidth).PaddingLeft(2)
)

const detailWidth = 72

// SetColor forces ANSI colors on or off.
func SetColor(on bool) {
	if on {
		term.SetColorProfile(termenv.ANSI)
		return
	}
	term.SetColorProfile(termenv.Ascii)
}

// Format returns the error formatted for terminal display: a header, the
// config lines around Location, then detail, hint and cause.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(errorStyle.Render("ERROR") + " " + codeStyle.Render(e.Code+":") + " " + e.Message)
	} else {
		b.WriteString(errorStyle.Render("ERROR:") + " " + e.Message)
	}
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", placeStyle.Render(e.Location.String()))
		if len(e.Context) > 0 {
			e.writeContext(&b)
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		b.WriteString(strings.TrimRight(detailStyle.Render(e.Detail), " "))
		b.WriteString("\n\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n\n", placeStyle.Render("Hint:"), e.Suggestion)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s %s\n\n", gutterStyle.Render("Cause:"), e.Wrapped.Error())
	}
	return b.String()
}

// writeContext prints the lines around Location, marking its line with an
// arrow and its column with a caret.
func (e *Error) writeContext(b *strings.Builder) {
	bar := gutterStyle.Render(" │ ")
	first := max(e.Location.Line-contextSize/2, 1)
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", arrowStyle.Render("→ "), n, bar, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", gutterStyle.Render("│ "),
				strings.Repeat(" ", e.Location.Column-1), arrowStyle.Render("^"))
		}
	}
}

// FormatCompact returns a compact single-line error format.
func (e *Error) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	return b.String()
}

// FormatJSON returns the error as a JSON object, the shape served to HTTP
// clients.
func (e *Error) FormatJSON() string {
	type location struct {
		File   string `json:"file"`
		Line   int    `json:"line"`
		Column int    `json:"column,omitempty"`
	}
	out := struct {
		Code       string    `json:"code,omitempty"`
		Category   Category  `json:"category"`
		Message    string    `json:"message"`
		Detail     string    `json:"detail,omitempty"`
		Location   *location `json:"location,omitempty"`
		Suggestion string    `json:"suggestion,omitempty"`
		Cause      string    `json:"cause,omitempty"`
	}{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Location != nil {
		out.Location = &location{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// Fprint writes a formatted error to w. Plain errors get a one-line header.
func Fprint(w io.Writer, err error) {
	var pe *Error
	if stderrors.As(err, &pe) {
		fmt.Fprint(w, pe.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", errorStyle.Render("ERROR:"), err.Error())
}
