/*
PURPOSE:
  Defines the 'preview' subcommand.
  Prints the code preview run-main would show for a source location.

REQUIREMENTS:
  Implementation-discovered:
  - Useful to check preview sizing from the config without provoking a failure.

ARCHITECTURE INTEGRATION:
  - Calls: internal/preview.Snippet()

ERROR HANDLING:
  - Returns an error for malformed locations or unreadable files.

USAGE:
  run-main preview internal/cli/root.go:42
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/run-main/internal/preview"
)

var (
	beforeOverride int
	afterOverride  int
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE:LINE...",
	Short: "Print the code preview for source locations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := preview.Options{
			Before:   cfg.Preview.Before,
			After:    cfg.Preview.After,
			MaxWidth: cfg.Preview.MaxWidth,
			Color:    !noColor(cfg.Color),
		}
		if cmd.Flags().Changed("before") {
			opts.Before = beforeOverride
		}
		if cmd.Flags().Changed("after") {
			opts.After = afterOverride
		}

		for i, loc := range args {
			file, line, err := preview.ParseLocation(loc)
			if err != nil {
				return err
			}
			snippet, err := preview.Snippet(file, line, opts)
			if err != nil {
				return fmt.Errorf("failed to preview %s: %w", loc, err)
			}
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), snippet)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVarP(&beforeOverride, "before", "B", 0, "lines to show above the location (overrides config)")
	previewCmd.Flags().IntVarP(&afterOverride, "after", "A", 0, "lines to show below the location (overrides config)")
}
