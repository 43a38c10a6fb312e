package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/pagefx/internal/errors"
	"github.com/vango-dev/pagefx/pkg/bridge"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/validate"
)

// Config is the complete service configuration.
type Config struct {
	Addr     string         `yaml:"addr"`
	LogLevel string         `yaml:"log_level"`
	Toast    ToastConfig    `yaml:"toast"`
	Bridge   BridgeConfig   `yaml:"bridge"`
	Session  SessionConfig  `yaml:"session"`
	History  HistoryConfig  `yaml:"history"`
	Messages MessagesConfig `yaml:"messages"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ToastConfig controls toast timing.
type ToastConfig struct {
	Duration   time.Duration `yaml:"duration"`
	CloseDelay time.Duration `yaml:"close_delay"`
}

// BridgeConfig controls host signal handling.
type BridgeConfig struct {
	// SuccessPaths are the request paths whose 200 response raises the
	// saved toast.
	SuccessPaths []string `yaml:"success_paths"`
}

// SessionConfig controls page session lifetime.
type SessionConfig struct {
	// IdleTimeout is how long an untouched page session survives.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// HistoryConfig selects where request history is kept.
type HistoryConfig struct {
	// Driver is memory, sqlite or postgres.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	// Limit is the number of entries kept per browser.
	Limit int `yaml:"limit"`
}

// MessagesConfig holds every user-facing text.
type MessagesConfig struct {
	Titles toast.Titles      `yaml:"titles"`
	Fields validate.Messages `yaml:"fields"`
	Toasts bridge.Messages   `yaml:"toasts"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Toast: ToastConfig{
			Duration:   toast.DefaultDuration,
			CloseDelay: toast.DefaultCloseDelay,
		},
		Bridge: BridgeConfig{
			SuccessPaths: []string{"/config"},
		},
		Session: SessionConfig{
			IdleTimeout: 30 * time.Minute,
		},
		History: HistoryConfig{
			Driver: history.DriverMemory,
			Limit:  history.DefaultLimit,
		},
		Messages: MessagesConfig{
			Titles: toast.DefaultTitles(),
			Fields: validate.DefaultMessages(),
			Toasts: bridge.DefaultMessages(),
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "pagefx",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the given .env files (missing ones are ignored) and the
// process environment. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.New("P003").Wrap(err)
	}
	return &cfg, nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("P001").Wrap(err).
			WithSuggestion("Check the --config path, or omit it to use defaults")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		perr := errors.New("P002").Wrap(err)
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			line, _ := strconv.Atoi(m[1])
			perr = perr.WithLocation(path, line, 0)
		}
		return perr
	}
	return nil
}

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.New("P004").Wrap(err).WithLocation(f, 0, 0)
		}
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
