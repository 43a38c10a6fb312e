// Package validate checks a fixed set of form fields inside a container
// node and annotates the tree with the outcome.
//
// # Overview
//
// An Engine holds a list of Fields. Each Field names the id of a form
// control and the rules it must satisfy. Validate walks the list, locates
// each control inside the container, and:
//
//   - on failure, adds the "error" class to the control's enclosing
//     .form-group and places a single div.error-message immediately after
//     the control (creating it if absent, replacing its text if present);
//   - on success, removes the "error" class and every error message from
//     the group.
//
// The aggregate result is the logical AND of every field found. Fields
// missing from the container are skipped, so a container with none of the
// recognized fields validates successfully; Result.Checked reports how
// many fields were actually evaluated so callers can tell the difference.
//
// Validation is stateless: annotations are re-derived from the current
// field values on every call.
//
// # Basic Usage
//
//	engine := validate.Default()
//	if !engine.Validate(form) {
//	    toasts.Error("Please fix the errors in the form")
//	}
//
// # Validators
//
// The package includes validators for the rules the page needs:
//
//   - Required: non-empty after trimming whitespace
//   - HTTPURL: absolute URL with an http or https scheme
//   - Func: user-defined validation logic
package validate
