package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vango-dev/pagefx/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var noColor bool
	rootCmd := &cobra.Command{
		Use:   "pagefx",
		Short: "Server-driven toasts and form validation for htmx pages",
		Long: `pagefx serves an OAuth2 client test page whose feedback is driven
from the server:

  • Toast notifications with timed dismissal
  • Declarative form validation with inline errors
  • Host lifecycle signals (swap, submit, blur, request outcome)
  • Live toast events over WebSocket
  • Request history kept per browser in memory, SQLite or PostgreSQL`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" {
				errors.SetColor(false)
				lipgloss.SetColorProfile(termenv.Ascii)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(),
		validateCmd(),
		historyCmd(),
		versionCmd(),
	)
	return rootCmd
}
