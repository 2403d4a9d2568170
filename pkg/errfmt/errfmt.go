// Package errfmt turns an arbitrary failure value into a readable,
// source-annotated diagnostic.
//
// An error renders as its summary line, then (when the failing source line
// can be read) a code preview, then the stack trace. Anything that is not an
// error is first wrapped into one whose message is
// "Non-error value was thrown: " followed by the inspected value.
package errfmt

import (
	"errors"
	"strings"

	"github.com/daryltucker/run-main/internal/inspect"
	"github.com/daryltucker/run-main/internal/pretty"
	"github.com/daryltucker/run-main/internal/preview"
	"github.com/daryltucker/run-main/pkg/failure"
)

// NonErrorPrefix starts the message of errors synthesized for non-error values.
const NonErrorPrefix = "Non-error value was thrown: "

// Renderer pretty-prints an error-shaped failure. The first line of the
// result must be the summary line.
type Renderer interface {
	Render(f failure.Failure, color bool) string
}

// Previewer extracts a source snippet for a failure, if one can be derived.
type Previewer interface {
	Preview(f failure.Failure) (string, bool)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f failure.Failure, color bool) string

// Render calls fn.
func (fn RendererFunc) Render(f failure.Failure, color bool) string { return fn(f, color) }

// PreviewerFunc adapts a function to Previewer.
type PreviewerFunc func(f failure.Failure) (string, bool)

// Preview calls fn.
func (fn PreviewerFunc) Preview(f failure.Failure) (string, bool) { return fn(f) }

// PreviewOptions sizes the default code preview.
type PreviewOptions struct {
	Disabled bool
	Before   int
	After    int
	MaxWidth int
}

// Options configures a Formatter. Zero values select the defaults.
type Options struct {
	// Inspect converts non-error values to text.
	Inspect func(any) string
	// NoColor disables colors even where the terminal supports them.
	NoColor   bool
	Preview   PreviewOptions
	Renderer  Renderer
	Previewer Previewer
}

// Formatter formats failures. It is safe for concurrent use.
type Formatter struct {
	inspect   func(any) string
	color     bool
	renderer  Renderer
	previewer Previewer
}

// New builds a Formatter, filling unset options with defaults.
func New(opts Options) *Formatter {
	f := &Formatter{
		inspect:   opts.Inspect,
		color:     !opts.NoColor,
		renderer:  opts.Renderer,
		previewer: opts.Previewer,
	}
	if f.inspect == nil {
		f.inspect = inspect.Value
	}
	if f.renderer == nil {
		f.renderer = RendererFunc(func(fl failure.Failure, color bool) string {
			return pretty.Renderer{}.Render(fl, pretty.Options{Color: color})
		})
	}
	if f.previewer == nil {
		f.previewer = defaultPreviewer(opts.Preview, f.color)
	}
	return f
}

// Format formats v with the default renderer and previewer.
func Format(v any, inspect func(any) string) string {
	return New(Options{Inspect: inspect}).Format(v)
}

// Format formats an arbitrary value.
func (f *Formatter) Format(v any) string {
	return f.FormatFailure(failure.Classify(v, nil))
}

// FormatFailure formats an already classified failure.
func (f *Formatter) FormatFailure(fl failure.Failure) string {
	if fl.Kind() != failure.NativeError {
		// The synthesized error keeps the throw site, not the formatter's.
		wrapped := failure.Classify(errors.New(NonErrorPrefix+f.inspect(fl.Value())), fl.Frames())
		return f.FormatFailure(wrapped)
	}

	rendered := f.renderer.Render(fl, f.color)
	snippet, ok := f.previewer.Preview(fl)
	if !ok {
		return rendered
	}

	// The summary is assumed to be the first line only; a multi-line message
	// places the snippet after its first line.
	summary, rest, found := strings.Cut(rendered, "\n")
	parts := []string{summary, "", snippet, ""}
	if found {
		parts = append(parts, rest)
	}
	return strings.Join(parts, "\n")
}

func defaultPreviewer(opts PreviewOptions, color bool) Previewer {
	if opts.Disabled {
		return PreviewerFunc(func(failure.Failure) (string, bool) { return "", false })
	}
	po := preview.DefaultOptions()
	if opts.Before > 0 {
		po.Before = opts.Before
	}
	if opts.After > 0 {
		po.After = opts.After
	}
	if opts.MaxWidth > 0 {
		po.MaxWidth = opts.MaxWidth
	}
	po.Color = color
	return preview.Extractor{Options: po}
}
