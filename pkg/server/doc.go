// Package server serves the pagefx configuration page over HTTP.
//
// Every browser tab gets a page session: its own node tree, event loop,
// toast manager and bridge, addressed by a UUID cookie. Handlers never
// touch a page tree directly; they run their work on the page's loop with
// loop.EventLoop.Do and render the result while still on the loop.
//
// Routes:
//
//	GET  /, /config, /history      full page
//	POST /config                   submit the client configuration form
//	POST /config/validate          re-validate after a field loses focus
//	POST /toasts/{id}/dismiss      user dismissal
//	GET  /toasts                   toast surface fragment
//	POST /events/after-request     host-reported request outcome
//	GET  /history/search?q=        filtered history table fragment
//	POST /token/copy               copy the issued token
//	POST /dark-mode                toggle dark mode
//	GET  /ws                       toast and clipboard event stream
//	GET  /metrics                  Prometheus metrics, when enabled
package server
