/*
PURPOSE:
  Defines the 'exec' subcommand.
  Runs a command as the main routine and reports its failure.

REQUIREMENTS:
  Implementation-discovered:
  - Arguments after "--" belong to the command, not to run-main.
  - The report must be written before the process exits.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Run()
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - A failing command is reported by runmain, then run-main exits 1.
  - Report write failures are returned as errors.

USAGE:
  run-main exec -- make test
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/run-main/internal/engine"
	"github.com/daryltucker/run-main/internal/model"
	"github.com/daryltucker/run-main/internal/output"
)

var reportOverride string

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- COMMAND [ARGS...]",
	Short: "Run a command and report its failure",
	Long: `Runs COMMAND with the current standard streams.
If it cannot start or exits non-zero, the failure is printed to stderr and
run-main exits with status 1. With --report (or 'report' in the config file),
one JSON line describing the run is appended to the given file.`,
	Example: `  # Run the test suite
  run-main exec -- go test ./...

  # Record every run
  run-main exec --report runs.jsonl -- ./deploy.sh staging`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportOverride != "" {
			cfg.Report = reportOverride
		}

		r := engine.New(cfg)
		r.Stdin = cmd.InOrStdin()
		r.Stdout = cmd.OutOrStdout()
		r.Stderr = cmd.ErrOrStderr()
		r.NoColor = noColor(cfg.Color)

		report, _ := r.Run(cmd.Context(), args)

		if cfg.Report != "" {
			if err := writeReport(cfg.Report, report); err != nil {
				return err
			}
			output.Logger.Debug("report written", "path", cfg.Report)
		}

		if !report.Succeeded {
			osExit(report.ExitCode)
		}
		return nil
	},
}

func writeReport(path string, report model.Report) error {
	w, err := output.NewJSONWriter(path)
	if err != nil {
		return fmt.Errorf("failed to open report %s: %w", path, err)
	}
	defer w.Close()

	if err := w.Write(report); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().SetInterspersed(false)
	execCmd.Flags().StringVar(&reportOverride, "report", "", "append a JSON line describing the run to this file")
}
