package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantMsg    string
		wantCat    Category
		wantStatus int
	}{
		{
			name:       "config error",
			code:       "P001",
			wantMsg:    "Configuration file not found",
			wantCat:    CategoryConfig,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "runtime error",
			code:       "P011",
			wantMsg:    "Page session not found",
			wantCat:    CategoryRuntime,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "protocol error",
			code:       "P020",
			wantMsg:    "Invalid toast id",
			wantCat:    CategoryProtocol,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			code:       "P030",
			wantMsg:    "Form validation failed",
			wantCat:    CategoryValidation,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown error code",
			code:       "P999",
			wantMsg:    "Unknown error",
			wantCat:    "",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.HTTPStatus() != tt.wantStatus {
				t.Errorf("HTTPStatus() = %d, want %d", err.HTTPStatus(), tt.wantStatus)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "client-id")
	if err.Message != `flag "client-id" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	err := New("P001")
	if got, want := err.Error(), "P001: Configuration file not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("P001").Wrap(os.ErrNotExist)
	if !strings.HasSuffix(wrapped.Error(), ": "+os.ErrNotExist.Error()) {
		t.Errorf("Error() = %q, should end with the cause", wrapped.Error())
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "pagefx.yaml")
	content := "addr: \":8080\"\ntoast:\n\tduration: 3s\nmetrics:\n  enabled: true\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("P002").WithLocation(tmpFile, 3, 0)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.Line != 3 {
		t.Errorf("Location.Line = %d, want 3", err.Location.Line)
	}
	if len(err.Context) != 3 || err.Context[1] != "\tduration: 3s" {
		t.Errorf("Context = %q", err.Context)
	}
}

func TestError_Builders(t *testing.T) {
	err := New("P003").
		WithDetail("toast.duration must be positive").
		WithSuggestion("Use a Go duration such as 3s")

	if err.Detail != "toast.duration must be positive" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "Use a Go duration such as 3s" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestError_WrapAndIs(t *testing.T) {
	inner := os.ErrNotExist
	outer := New("P001").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, os.ErrNotExist) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if !stderrors.Is(fmt.Errorf("loading: %w", outer), New("P001")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(outer, New("P002")) {
		t.Error("different codes should not match")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "P010") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	pe := New("P011")
	if FromError(fmt.Errorf("lookup: %w", pe), "P010") != pe {
		t.Error("FromError should return the *Error from the chain")
	}

	stdErr := stderrors.New("address already in use")
	result := FromError(stdErr, "P010")
	if result.Wrapped != stdErr || result.Code != "P010" {
		t.Errorf("FromError = %+v", result)
	}
}

func TestCode(t *testing.T) {
	if got := Code(fmt.Errorf("x: %w", New("P020"))); got != "P020" {
		t.Errorf("Code = %q, want P020", got)
	}
	if got := Code(stderrors.New("plain")); got != "" {
		t.Errorf("Code = %q, want empty", got)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil location", nil, ""},
		{"with column", &Location{File: "pagefx.yaml", Line: 10, Column: 5}, "pagefx.yaml:10:5"},
		{"without column", &Location{File: "pagefx.yaml", Line: 10}, "pagefx.yaml:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	SetColor(false)

	tmpFile := filepath.Join(t.TempDir(), "pagefx.yaml")
	if err := os.WriteFile(tmpFile, []byte("a: 1\nb: [\nc: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	formatted := New("P002").
		WithLocation(tmpFile, 2, 4).
		WithSuggestion("Close the list").
		Wrap(stderrors.New("yaml: line 2: did not find expected node content")).
		Format()

	for _, want := range []string{"P002", "could not be parsed", tmpFile, "→", "^", "Hint: Close the list", "Cause: yaml"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	compact := New("P002").WithLocation("pagefx.yaml", 10, 5).FormatCompact()

	want := "pagefx.yaml:10:5: P002: Configuration file could not be parsed"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}
}

func TestFormatJSON(t *testing.T) {
	json := New("P021").Wrap(stderrors.New("unexpected EOF")).FormatJSON()

	for _, want := range []string{
		`"code":"P021"`,
		`"category":"protocol"`,
		`"message":"Malformed request outcome"`,
		`"cause":"unexpected EOF"`,
	} {
		if !strings.Contains(json, want) {
			t.Errorf("FormatJSON() = %s, missing %s", json, want)
		}
	}
	if strings.Contains(json, `"location"`) {
		t.Error("location should be omitted when unset")
	}
}

func TestFprint(t *testing.T) {
	SetColor(false)

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("serve: %w", New("P010")))
	if !strings.Contains(buf.String(), "ERROR P010: Server failed to start") {
		t.Errorf("Fprint(*Error) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("boom"))
	if !strings.Contains(buf.String(), "ERROR: boom") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}
}

func TestRegistryCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if !strings.HasPrefix(code, "P") || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("bad template %s: %+v", code, tmpl)
		}
	}

	if _, ok := GetTemplate("P999"); ok {
		t.Error("P999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("P999", ErrorTemplate{
		Category: CategoryRuntime,
		Message:  "Custom test error",
		Status:   http.StatusTeapot,
	})
	defer delete(registry, "P999")

	err := New("P999")
	if err.Message != "Custom test error" || err.HTTPStatus() != http.StatusTeapot {
		t.Errorf("New(P999) = %+v", err)
	}
}

func TestFormatWrapsDetail(t *testing.T) {
	SetColor(false)

	detail := strings.Repeat("word ", 40)
	formatted := New("P001").WithDetail(detail).Format()

	for _, line := range strings.Split(formatted, "\n") {
		if len(line) > detailWidth {
			t.Errorf("line longer than %d: %q", detailWidth, line)
		}
	}
	if !strings.Contains(formatted, "  word word") {
		t.Errorf("detail not indented:\n%s", formatted)
	}
}

func TestSetColor(t *testing.T) {
	defer SetColor(false)

	SetColor(true)
	if !strings.Contains(errorStyle.Render("x"), "\x1b[") {
		t.Error("expected ANSI codes with color on")
	}
	SetColor(false)
	if strings.Contains(errorStyle.Render("x"), "\x1b[") {
		t.Error("unexpected ANSI codes with color off")
	}
}
