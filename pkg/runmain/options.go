package runmain

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/daryltucker/run-main/internal/inspect"
	"github.com/daryltucker/run-main/pkg/errfmt"
)

// Options holds the hooks used by one Run call. Every field must be set;
// DefaultOptions provides a complete set.
type Options struct {
	// Exit is called with 1 after a failure has been reported. It is not
	// required to stop the program.
	Exit func(code int)
	// PrintError receives the formatted diagnostic.
	PrintError func(formatted string)
	// Inspect converts non-error failure values to text.
	Inspect func(v any) string
	// Format configures the error formatter. Its Inspect field is replaced by
	// the Inspect hook above.
	Format errfmt.Options
	Logger *slog.Logger
}

// Option overrides part of the default Options.
type Option func(*Options)

// DefaultOptions returns the process-wide defaults: os.Exit, a newline
// terminated write to stderr, and the built-in inspector. Colors are enabled
// only when stderr is a terminal.
func DefaultOptions() Options {
	return Options{
		Exit:       os.Exit,
		PrintError: WriterPrinter(os.Stderr),
		Inspect:    inspect.Value,
		Format:     errfmt.Options{NoColor: !isTerminal(os.Stderr)},
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// WriterPrinter returns a PrintError hook writing each diagnostic to w on its
// own line.
func WriterPrinter(w io.Writer) func(string) {
	return func(s string) {
		fmt.Fprintln(w, s)
	}
}

// WithExit replaces the exit hook.
func WithExit(exit func(code int)) Option {
	return func(o *Options) { o.Exit = exit }
}

// WithPrintError replaces the print hook.
func WithPrintError(printError func(formatted string)) Option {
	return func(o *Options) { o.PrintError = printError }
}

// WithInspect replaces the inspector used for non-error values.
func WithInspect(inspect func(v any) string) Option {
	return func(o *Options) { o.Inspect = inspect }
}

// WithFormat replaces the formatter options.
func WithFormat(opts errfmt.Options) Option {
	return func(o *Options) { o.Format = opts }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
