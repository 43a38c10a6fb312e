package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/pagefx/internal/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PAGEFX_"

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// applyEnv overlays PAGEFX_* variables onto c.
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var firstErr error
	fail := func(key, value string, err error) {
		if firstErr == nil {
			firstErr = errors.New("P005").
				WithDetail(EnvPrefix + key + "=" + value).
				Wrap(err)
		}
	}
	dur := func(key string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			fail(key, v, err)
			return
		}
		*dst = d
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail(key, v, err)
			return
		}
		*dst = b
	}

	str("ADDR", &c.Addr)
	str("LOG_LEVEL", &c.LogLevel)
	dur("TOAST_DURATION", &c.Toast.Duration)
	dur("TOAST_CLOSE_DELAY", &c.Toast.CloseDelay)
	dur("SESSION_IDLE_TIMEOUT", &c.Session.IdleTimeout)
	if v, ok := lookup(EnvPrefix + "BRIDGE_SUCCESS_PATHS"); ok {
		c.Bridge.SuccessPaths = splitList(v)
	}
	str("HISTORY_DRIVER", &c.History.Driver)
	str("HISTORY_DSN", &c.History.DSN)
	if v, ok := lookup(EnvPrefix + "HISTORY_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail("HISTORY_LIMIT", v, err)
		} else {
			c.History.Limit = n
		}
	}
	boolean("METRICS_ENABLED", &c.Metrics.Enabled)
	str("METRICS_PATH", &c.Metrics.Path)
	str("METRICS_NAMESPACE", &c.Metrics.Namespace)

	return firstErr
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
