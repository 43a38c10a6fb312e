// Package errors provides structured, actionable error messages for pagefx.
//
// Infrastructure code (configuration loading, the HTTP server, the CLI)
// reports failures as *Error values carrying a registered code, a category
// and an optional hint. The core packages (toast, validate, bridge) never
// return errors.
//
// # Error Categories
//
//   - config: configuration file, environment and value errors
//   - runtime: server lifecycle and page session errors
//   - protocol: malformed requests from the page host
//   - validation: form values that failed validation
//   - cli: command line usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "P001") that maps to a short message,
// a detailed explanation and the HTTP status used when it reaches a client.
//
// # Usage
//
//	err := errors.New("P002").
//	    WithLocation("pagefx.yaml", 4, 0).
//	    WithSuggestion("Indent nested keys with spaces, not tabs")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR P002: Configuration file could not be parsed
//	//
//	//   pagefx.yaml:4
//	//
//	//       3 │ toast:
//	//   →   4 │ 	duration: 3s
//	//       5 │ metrics:
//	//
//	//   Hint: Indent nested keys with spaces, not tabs
//
// Colors follow the capabilities of stderr. SetColor(false) forces plain
// text, which tests and piped output rely on.
package errors
