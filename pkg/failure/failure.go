// Package failure classifies values caught at a program's entry point.
//
// Every caught value is tagged exactly once, at the boundary where it was
// recovered, as either a NativeError (it implements error) or Other (anything
// else). Downstream code switches on the tag instead of probing shapes.
package failure

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind tags a Failure.
type Kind int

const (
	// Other is a thrown value that is not an error.
	Other Kind = iota
	// NativeError is a thrown value implementing the error interface.
	NativeError
)

func (k Kind) String() string {
	if k == NativeError {
		return "error"
	}
	return "other"
}

// Frame is a single resolved call site.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Failure is a caught value together with the call stack that best
// describes where it came from.
type Failure struct {
	value  any
	err    error
	frames []Frame
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Classify tags v. The frames are taken from the innermost error in v's chain
// that records a stack trace; when there is none, stack (typically captured
// while recovering a panic) is used instead.
func Classify(v any, stack []Frame) Failure {
	f := Failure{value: v, frames: stack}
	if err, ok := v.(error); ok {
		f.err = err
		if st := innermostStack(err); len(st) > 0 {
			f.frames = resolve(st)
		}
	}
	return f
}

// Recovered classifies a value returned by recover. It must be called
// directly from the deferred function that called recover, while the
// panicking stack is still intact.
func Recovered(r any) Failure {
	return Classify(r, panicStack(3))
}

// PanicStack returns the stack of the panicking goroutine above the runtime's
// panic machinery. Same calling constraint as Recovered.
func PanicStack() []Frame {
	return panicStack(3)
}

func panicStack(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	return trimRuntime(afterPanic(resolve(pcs[:n])))
}

// Kind reports which variant f holds.
func (f Failure) Kind() Kind {
	if f.err != nil {
		return NativeError
	}
	return Other
}

// Value returns the original caught value, unchanged.
func (f Failure) Value() any { return f.value }

// Err returns the error for a NativeError failure.
func (f Failure) Err() (error, bool) { return f.err, f.err != nil }

// Message returns the error message, or "" for Other.
func (f Failure) Message() string {
	if f.err == nil {
		return ""
	}
	return f.err.Error()
}

// Frames returns the call stack associated with the failure, outermost call
// last. It may be empty.
func (f Failure) Frames() []Frame { return f.frames }

// WithFrames returns a copy of f carrying frames instead of its own stack.
func (f Failure) WithFrames(frames []Frame) Failure {
	f.frames = frames
	return f
}

// Location returns the first frame outside the Go runtime.
func (f Failure) Location() (Frame, bool) {
	for _, fr := range f.frames {
		if !isRuntime(fr.Function) {
			return fr, true
		}
	}
	return Frame{}, false
}

// TypeName returns the display name of err's concrete type: "Error" for the
// anonymous error types of the standard library and pkg/errors,
// "RuntimeError" for panics raised by the Go runtime, and the bare type name
// otherwise.
func TypeName(err error) string {
	var rerr runtime.Error
	if errors.As(err, &rerr) {
		return "RuntimeError"
	}
	name := fmt.Sprintf("%T", err)
	pkg, bare, ok := strings.Cut(strings.TrimLeft(name, "*"), ".")
	if !ok {
		return bare
	}
	switch pkg {
	case "errors", "fmt":
		if bare != "" && bare[0] >= 'a' && bare[0] <= 'z' {
			return "Error"
		}
	}
	return bare
}

func innermostStack(err error) []uintptr {
	var found pkgerrors.StackTrace
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			found = st.StackTrace()
		}
	}
	pcs := make([]uintptr, len(found))
	for i, fr := range found {
		pcs[i] = uintptr(fr)
	}
	return pcs
}

func resolve(pcs []uintptr) []Frame {
	if len(pcs) == 0 {
		return nil
	}
	var out []Frame
	frames := runtime.CallersFrames(pcs)
	for {
		fr, more := frames.Next()
		if fr.Function != "" || fr.File != "" {
			out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}
	return out
}

// afterPanic drops every frame up to and including runtime.gopanic.
func afterPanic(frames []Frame) []Frame {
	for i, fr := range frames {
		if fr.Function == "runtime.gopanic" {
			return frames[i+1:]
		}
	}
	return frames
}

func trimRuntime(frames []Frame) []Frame {
	for len(frames) > 0 && isRuntime(frames[0].Function) {
		frames = frames[1:]
	}
	return frames
}

func isRuntime(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, "internal/runtime/")
}
