/*
PURPOSE:
  Runs an external command as a run-main main routine.
  The command's start is the synchronous part; its exit is the deferred part.

REQUIREMENTS:
  Implementation-discovered:
  - A command that cannot start fails synchronously.
  - A command that exits non-zero rejects the deferred result.
  - The process must not be terminated here: the caller writes the report
    first and decides how to exit.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (exec command)
  - Uses: pkg/runmain, internal/config, internal/model

ERROR HANDLING:
  - Failures are printed by runmain and returned so the caller can act on them.

USAGE:
  r := engine.New(cfg)
  report, err := r.Run(ctx, []string{"make", "test"})
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/daryltucker/run-main/internal/config"
	"github.com/daryltucker/run-main/internal/model"
	"github.com/daryltucker/run-main/internal/output"
	"github.com/daryltucker/run-main/pkg/failure"
	"github.com/daryltucker/run-main/pkg/runmain"
)

// ErrNoCommand is returned when Run is given no arguments.
var ErrNoCommand = errors.New("no command specified")

// Runner supervises one command.
type Runner struct {
	Config  *config.Config
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	NoColor bool
}

// New creates a Runner wired to the process's standard streams.
func New(cfg *config.Config) *Runner {
	return &Runner{
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: output.Logger,
	}
}

// Command returns a main routine that starts args and defers on its exit.
func (r *Runner) Command(ctx context.Context, args []string) runmain.Main {
	return func() any {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...) // #nosec G204 -- running the user's command is the point
		cmd.Stdin = r.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr

		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start %s: %w", args[0], err)
		}
		r.Logger.Debug("started command", "pid", cmd.Process.Pid, "command", args[0])

		return runmain.Async(func() error {
			if err := cmd.Wait(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		})
	}
}

// Run runs args under runmain and returns a report of the outcome. The
// returned error is the original failure, already printed to Stderr.
func (r *Runner) Run(ctx context.Context, args []string) (model.Report, error) {
	if len(args) == 0 {
		return model.Report{}, ErrNoCommand
	}

	report := model.Report{
		Command:   args,
		StartedAt: time.Now(),
	}

	sig := runmain.Run(r.Command(ctx, args),
		runmain.WithPrintError(runmain.WriterPrinter(r.Stderr)),
		// Termination is left to the caller, after the report is written.
		runmain.WithExit(func(int) {}),
		runmain.WithFormat(r.Config.FormatOptions(r.NoColor)),
		runmain.WithLogger(r.Logger),
	)
	err := sig.Wait(context.Background())
	report.Duration = time.Since(report.StartedAt)

	v, failed := sig.Failure()
	if !failed {
		report.Succeeded = true
		r.Logger.Debug("command succeeded", "command", args[0], "duration", report.Duration)
		return report, nil
	}

	describe(&report, failure.Classify(v, nil))
	r.Logger.Debug("command failed", "command", args[0], "error", err)
	return report, err
}

func describe(report *model.Report, f failure.Failure) {
	report.ExitCode = runmain.ExitFailure
	report.Kind = f.Kind().String()
	if err, ok := f.Err(); ok {
		report.ErrorType = failure.TypeName(err)
		report.Message = err.Error()
	} else {
		report.Message = fmt.Sprint(f.Value())
	}
	if loc, ok := f.Location(); ok {
		report.Location = fmt.Sprintf("%s:%d", loc.File, loc.Line)
	}
}
