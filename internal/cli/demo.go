package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daryltucker/run-main/internal/output"
	"github.com/daryltucker/run-main/pkg/runmain"
)

// demos are main routines of every shape runmain handles.
var demos = map[string]runmain.Main{
	"ok": func() any {
		return 2 + 2
	},
	"error": runmain.Func(func() error {
		return pkgerrors.New("something's come along and it's burst our bubble")
	}),
	"panic": func() any {
		panic(errors.New("uh oh! we're in trouble"))
	},
	"value": func() any {
		panic(6)
	},
	"async": func() any {
		return runmain.Async(func() error {
			time.Sleep(10 * time.Millisecond)
			return pkgerrors.New("failed after a while")
		})
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var demoCmd = &cobra.Command{
	Use:   "demo KIND",
	Short: "Run a built-in main routine to show how failures are reported",
	Long: fmt.Sprintf(`Runs a built-in main routine of the given KIND: one of %v.
Every kind except "ok" fails and makes run-main exit with status 1.`, demoNames()),
	ValidArgs: demoNames(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		exited := make(chan struct{})
		sig := runmain.Run(demos[args[0]],
			runmain.WithPrintError(runmain.WriterPrinter(cmd.ErrOrStderr())),
			runmain.WithExit(func(code int) {
				osExit(code)
				close(exited)
			}),
			runmain.WithFormat(cfg.FormatOptions(noColor(cfg.Color))),
			runmain.WithLogger(output.Logger),
		)
		<-sig.Done()

		if sig.Err() != nil {
			// The exit hook runs after the signal fails.
			<-exited
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "main routine succeeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
