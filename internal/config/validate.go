package config

import (
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/vango-dev/pagefx/pkg/bridge"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/routepath"
)

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks that the configuration is usable. The returned error is a
// criterio.FieldErrors listing every offending key.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("addr", c.Addr, validAddr),
		criterio.Run("log_level", c.LogLevel, validLevel),
		durationField("toast.duration", c.Toast.Duration, positive),
		durationField("toast.close_delay", c.Toast.CloseDelay, nonNegative),
		durationField("session.idle_timeout", c.Session.IdleTimeout, positive),
		c.validateSuccessPaths(),
		c.validateHistory(),
		c.validateMetrics(),
	)
}

func (c *Config) validateHistory() error {
	var errs criterio.FieldErrorsBuilder
	switch c.History.Driver {
	case history.DriverMemory:
	case history.DriverSQLite, history.DriverPostgres:
		if c.History.DSN == "" {
			errs = errs.Append("history.dsn", fmt.Errorf("required for the %s driver", c.History.Driver))
		}
	default:
		errs = errs.Append("history.driver", fmt.Errorf("unknown driver %q, want memory, sqlite or postgres", c.History.Driver))
	}
	if c.History.Limit <= 0 {
		errs = errs.Append("history.limit", fmt.Errorf("must be positive, got %d", c.History.Limit))
	}
	return errs.ToError()
}

func (c *Config) validateSuccessPaths() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Bridge.SuccessPaths {
		if err := bridge.CheckPattern(p); err != nil {
			errs = errs.Append(fmt.Sprintf("bridge.success_paths[%d]", i), fmt.Errorf("invalid path %q: %w", p, err))
		}
	}
	return errs.ToError()
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	return criterio.ValidateStruct(
		criterio.Run("metrics.path", c.Metrics.Path, validPath),
		criterio.Run("metrics.namespace", c.Metrics.Namespace, func(ns string) error {
			if !metricNamespace.MatchString(ns) {
				return fmt.Errorf("%q is not a valid metric namespace", ns)
			}
			return nil
		}),
	)
}

func validPath(p string) error {
	if _, err := routepath.Canonicalize(p); err != nil {
		return fmt.Errorf("invalid path %q: %w", p, err)
	}
	return nil
}

func validAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("address is required")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}

func validLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func durationField(field string, d time.Duration, check func(time.Duration) error) error {
	if err := check(d); err != nil {
		return criterio.NewFieldErrors(field, err)
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", d)
	}
	return nil
}

func nonNegative(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative, got %s", d)
	}
	return nil
}
