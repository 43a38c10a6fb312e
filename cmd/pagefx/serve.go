package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/pagefx/internal/config"
	"github.com/vango-dev/pagefx/internal/errors"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
		addr       string
		jsonLogs   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Configuration is read from the YAML file given with --config, then the
.env file, then PAGEFX_* environment variables. Flags win over all of them.

Examples:
  pagefx serve
  pagefx serve --config pagefx.yaml
  pagefx serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
				if err := cfg.Validate(); err != nil {
					return errors.New("P040").Wrap(err).WithDetail("--addr=" + addr)
				}
			}

			logger := newLogger(cfg, jsonLogs)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := history.Open(ctx, cfg.History.Driver, cfg.History.DSN,
				history.WithLimit(cfg.History.Limit))
			if err != nil {
				return errors.New("P014").Wrap(err).
					WithSuggestion("Check history.driver and history.dsn, or use the memory driver.")
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn().Err(err).Msg("closing history store")
				}
			}()

			srv := server.New(cfg,
				server.WithLogger(logger),
				server.WithHistoryStore(store),
			)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&jsonLogs, "json", false, "Write logs as JSON even on a terminal")

	return cmd
}

// newLogger writes console output to a terminal and JSON otherwise.
func newLogger(cfg *config.Config, jsonLogs bool) zerolog.Logger {
	var logger zerolog.Logger
	if jsonLogs || !term.IsTerminal(int(os.Stderr.Fd())) {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(cfg.Level()).With().Timestamp().Logger()
}
