package errors

import "net/http"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	Status   int
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (P001-P009)
	// ============================================

	"P001": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "The file passed with --config does not exist or cannot be read.",
	},
	"P002": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be parsed",
		Detail:   "The configuration file is not valid YAML or has values of the wrong type.",
	},
	"P003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "One or more configuration values failed validation.",
	},
	"P004": {
		Category: CategoryConfig,
		Message:  "Environment file could not be loaded",
		Detail:   "The .env file exists but could not be parsed.",
	},
	"P005": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A PAGEFX_* environment variable has a value that cannot be converted.",
	},

	// ============================================
	// Runtime Errors (P010-P019)
	// ============================================

	"P010": {
		Category: CategoryRuntime,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be opened. The address may already be in use.",
	},
	"P011": {
		Category: CategoryRuntime,
		Message:  "Page session not found",
		Detail:   "The page session cookie is missing or refers to an expired session. Reload the page.",
		Status:   http.StatusNotFound,
	},
	"P012": {
		Category: CategoryRuntime,
		Message:  "Page session closed",
		Detail:   "The page session's event loop has stopped.",
		Status:   http.StatusGone,
	},
	"P013": {
		Category: CategoryRuntime,
		Message:  "Server shutdown failed",
		Detail:   "In-flight requests did not finish before the shutdown deadline.",
	},
	"P014": {
		Category: CategoryRuntime,
		Message:  "History store unavailable",
		Detail:   "The request history database could not be opened or migrated.",
	},

	// ============================================
	// Protocol Errors (P020-P029)
	// ============================================

	"P020": {
		Category: CategoryProtocol,
		Message:  "Invalid toast id",
		Detail:   "Toast ids are non-negative integers assigned by the page session.",
		Status:   http.StatusBadRequest,
	},
	"P021": {
		Category: CategoryProtocol,
		Message:  "Malformed request outcome",
		Detail:   `The after-request event body must be JSON of the form {"successful":bool,"status":int,"path":string}.`,
		Status:   http.StatusBadRequest,
	},
	"P022": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The toast event stream requires a WebSocket upgrade request.",
		Status:   http.StatusBadRequest,
	},
	"P023": {
		Category: CategoryProtocol,
		Message:  "Malformed form submission",
		Detail:   "The request body could not be parsed as a form.",
		Status:   http.StatusBadRequest,
	},

	// ============================================
	// Validation Errors (P030-P039)
	// ============================================

	"P030": {
		Category: CategoryValidation,
		Message:  "Form validation failed",
		Detail:   "One or more fields are invalid. Each failing field is annotated with its message.",
		Status:   http.StatusUnprocessableEntity,
	},

	// ============================================
	// CLI Errors (P040-P049)
	// ============================================

	"P040": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command line flag has a value that cannot be used.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
