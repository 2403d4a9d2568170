/*
PURPOSE:
  Entry point for the run-main application.
  Runs the CLI root command as a main routine, so that run-main reports its
  own failures the same way it reports the failures of the programs it runs.

REQUIREMENTS:
  User-specified:
  - Must serve as the single binary entry point.
  - Must handle top-level errors gracefully.

  Implementation-discovered:
  - Interrupts cancel the command context instead of killing the process.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.ExecuteContext(), pkg/runmain.Run()

ERROR HANDLING:
  - Errors and panics from the CLI are printed by runmain; exit code 1.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o run-main ./cmd/run-main
  ./run-main [command] [flags]

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
  - pkg/runmain/runmain.go - The main routine wrapper.
*/

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/daryltucker/run-main/internal/cli"
	"github.com/daryltucker/run-main/pkg/runmain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sig := runmain.Run(runmain.Func(func() error {
		return cli.ExecuteContext(ctx)
	}))
	<-sig.Done()
}
