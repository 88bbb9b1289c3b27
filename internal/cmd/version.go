package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Show the lingo version string set at build time via ldflags.",
		Example: `  # Show version
  lingo version

  # Machine-readable output
  lingo version -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output(cmd) == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"version": Version,
					"go":      runtime.Version(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lingo %s (go: %s)\n", Version, runtime.Version())
			return nil
		},
	}
}

func output(cmd *cobra.Command) string {
	o, _ := cmd.Flags().GetString("output")
	return o
}
