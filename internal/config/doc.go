// Package config loads pagefx settings.
//
// Values come from built-in defaults, then an optional YAML file, then
// .env files, then PAGEFX_* environment variables. Later sources win.
//
// # Configuration File Structure
//
//	addr: ":8080"
//	log_level: info
//	toast:
//	  duration: 3s
//	  close_delay: 300ms
//	bridge:
//	  success_paths: ["/config"]
//	session:
//	  idle_timeout: 30m
//	history:
//	  driver: sqlite          # memory, sqlite or postgres
//	  dsn: pagefx.db
//	  limit: 50
//	messages:
//	  titles:
//	    success: Success
//	  fields:
//	    required: required
//	  toasts:
//	    saved: Configuration saved successfully!
//	metrics:
//	  enabled: true
//	  path: /metrics
//	  namespace: pagefx
//
// Every key outside messages has a PAGEFX_ variable, for example
// PAGEFX_TOAST_DURATION or PAGEFX_HISTORY_DSN. List values are comma
// separated.
//
// # Usage
//
//	cfg, err := config.Load("pagefx.yaml", ".env")
//	if err != nil {
//	    errors.Fprint(os.Stderr, err)
//	    os.Exit(1)
//	}
package config
