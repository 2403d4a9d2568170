/*
PURPOSE:
  Renders an error-shaped failure as a multi-line, optionally colorized
  diagnostic: "TypeName: message" followed by one "at" line per stack frame.

ARCHITECTURE INTEGRATION:
  - Used by: pkg/errfmt (default Renderer)
  - Consumes: pkg/failure.Failure

IMPLEMENTATION RULES:
  - The first line is always the summary line. pkg/errfmt splits on it.
  - Color is requested, not forced: fatih/color still honors NO_COLOR and
    its own terminal detection.
*/

package pretty

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daryltucker/run-main/pkg/failure"
)

// Options controls a single rendering.
type Options struct {
	Color bool
}

// Renderer is the default pretty printer.
type Renderer struct{}

// Render formats f. Other failures render as their message-less kind; callers
// are expected to wrap them into an error first.
func (Renderer) Render(f failure.Failure, opts Options) string {
	typ := color.New(color.FgRed, color.Bold)
	at := color.New(color.Faint)
	if !opts.Color {
		typ.DisableColor()
		at.DisableColor()
	}

	var b strings.Builder
	if err, ok := f.Err(); ok {
		b.WriteString(typ.Sprint(failure.TypeName(err) + ":"))
		b.WriteString(" ")
		b.WriteString(err.Error())
	} else {
		b.WriteString(typ.Sprint("Error:"))
		fmt.Fprintf(&b, " %v", f.Value())
	}

	for _, fr := range f.Frames() {
		b.WriteString("\n")
		b.WriteString(at.Sprintf("  at %s (%s:%d)", fr.Function, fr.File, fr.Line))
	}
	return b.String()
}
