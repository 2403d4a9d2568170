/*
PURPOSE:
  Defines the root Cobra command for the run-main CLI.
  Handles global flags and per-invocation setup (config, color, logging).

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose Execute functions for main.go.
  - Cobra must not print errors itself: main.go reports them through runmain.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/run-main/main.go
  - Calls: Child commands (exec, preview, demo, config)

ERROR HANDLING:
  - Returns error to main.go, which formats it and exits 1.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Logic: Load Config -> Override -> Command.

RELATED FILES:
  - cmd/run-main/main.go
  - internal/config/config.go
*/

package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/daryltucker/run-main/internal/config"
	"github.com/daryltucker/run-main/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	// colorMode overrides the config's color mode when non-empty
	colorMode string
	verbose   bool

	// cfg is the effective configuration, loaded before every command.
	cfg = config.DefaultConfig()

	// osExit terminates the process; replaced in tests.
	osExit = os.Exit

	rootCmd = &cobra.Command{
		Use:   "run-main",
		Short: "Run programs and report their failures readably",
		Long: `run-main runs a command (or a built-in demo) as a program's main routine.
If it fails, the failure is printed with a source preview and a stack trace
when one is available, and run-main exits with status 1.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext executes the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./runmain.yaml or ./.runmain.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color output: auto, always or never (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if colorMode != "" {
		loaded.Color = colorMode
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	if verbose {
		loaded.LogLevel = "debug"
	}

	logger, err := output.NewLogger(cmd.ErrOrStderr(), loaded.LogLevel)
	if err != nil {
		return err
	}
	output.SetLogger(logger)

	cfg = loaded
	color.NoColor = noColor(cfg.Color)
	output.Logger.Debug("configuration loaded", "config", cfgFile, "color", cfg.Color)
	return nil
}

// noColor resolves a color mode against stderr, where diagnostics go.
func noColor(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return false
	case config.ColorNever:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
