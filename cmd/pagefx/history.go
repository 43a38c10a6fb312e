package main

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/vango-dev/pagefx/internal/config"
	"github.com/vango-dev/pagefx/internal/errors"
	"github.com/vango-dev/pagefx/pkg/history"
)

func historyCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
		browser    string
		clearAll   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored request history",
		Long: `Inspect the request history kept by the configured store.

Without --browser every browser with history is listed. With --browser
that browser's requests are listed, or removed with --clear.

Examples:
  pagefx history
  pagefx history --browser 5f0c...
  pagefx history --browser 5f0c... --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearAll && browser == "" {
				return errors.New("P040").WithDetail("--clear needs --browser.")
			}
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := history.Open(ctx, cfg.History.Driver, cfg.History.DSN,
				history.WithLimit(cfg.History.Limit))
			if err != nil {
				return errors.New("P014").Wrap(err)
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			switch {
			case clearAll:
				if err := store.Clear(ctx, browser); err != nil {
					return errors.New("P014").Wrap(err)
				}
				success(w, "history of %s cleared", browser)
				return nil
			case browser != "":
				return printEntries(ctx, w, store, browser, time.Now())
			default:
				return printOwners(ctx, w, store, time.Now())
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
	cmd.Flags().StringVarP(&browser, "browser", "b", "", "Browser id (the pagefx_browser cookie)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove the browser's history")

	return cmd
}

func printOwners(ctx context.Context, w io.Writer, store history.Store, now time.Time) error {
	owners, err := store.Owners(ctx)
	if err != nil {
		return errors.New("P014").Wrap(err)
	}
	if len(owners) == 0 {
		muted(w, "no history stored")
		return nil
	}

	rows := make([][]string, 0, len(owners))
	for _, o := range owners {
		rows = append(rows, []string{o.Owner, strconv.Itoa(o.Entries), humanize.RelTime(o.Last, now, "ago", "from now")})
	}
	io.WriteString(w, newTable("Browser", "Requests", "Last").Rows(rows...).Render()+"\n")
	return nil
}

func printEntries(ctx context.Context, w io.Writer, store history.Store, browser string, now time.Time) error {
	entries, err := store.List(ctx, browser)
	if err != nil {
		return errors.New("P014").Wrap(err)
	}
	if len(entries) == 0 {
		muted(w, "no history for %s", browser)
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.At.Local().Format(time.DateTime),
			humanize.RelTime(e.At, now, "ago", "from now"),
			e.Method,
			e.Path,
			strconv.Itoa(e.Status),
		})
	}
	io.WriteString(w, newTable("Time", "", "Method", "Path", "Status").Rows(rows...).Render()+"\n")
	muted(w, "%s", english.Plural(len(entries), "request", ""))
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
