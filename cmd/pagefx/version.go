package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, version)
				return
			}
			rev, built := buildStamp()
			fmt.Fprintf(w, "%s %s\n", headerStyle.UnsetPadding().Render("pagefx"), version)
			for _, kv := range [][2]string{
				{"commit", rev},
				{"built", built},
				{"go", runtime.Version()},
				{"platform", runtime.GOOS + "/" + runtime.GOARCH},
			} {
				fmt.Fprintf(w, "  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-9s", kv[0])), kv[1])
			}
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}

// buildStamp returns the commit and build date set by the linker, falling
// back to the VCS stamp go build embeds.
func buildStamp() (rev, built string) {
	rev, built = commit, date
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return rev, built
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && rev == "none":
			rev = s.Value
		case s.Key == "vcs.time" && built == "unknown":
			built = s.Value
		}
	}
	return rev, built
}
