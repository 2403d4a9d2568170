// Package runmain runs a command-line program's main routine and reports its
// failure.
//
// The routine may finish immediately or return a Deferred. Either way, a
// failure (a panic, a returned error, or a rejection) is formatted with
// errfmt, printed, and followed by a call to the exit hook with status 1.
// Run returns a Signal reflecting the routine's real outcome:
//
//	func main() {
//		<-runmain.Run(runmain.Func(run)).Done()
//	}
package runmain

import (
	"sync"

	"github.com/daryltucker/run-main/pkg/errfmt"
	"github.com/daryltucker/run-main/pkg/failure"
)

// ExitFailure is the status passed to the exit hook after a failure.
const ExitFailure = 1

// Main is a program's main routine. Its result is either a Deferred, whose
// outcome is awaited, or a plain value. A non-nil error result counts as a
// failure; any other plain value counts as success and is discarded.
type Main func() any

// Func adapts an error-returning routine.
func Func(fn func() error) Main {
	return func() any {
		if err := fn(); err != nil {
			return err
		}
		return nil
	}
}

// Run invokes main and returns its completion signal. Continuations of a
// deferred result run on whichever goroutine settles it, so the signal may
// still be pending when Run returns.
func Run(main Main, opts ...Option) *Signal {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return run(main, resolve(o))
}

// resolve restores defaults for hooks an Option cleared.
func resolve(o Options) Options {
	d := DefaultOptions()
	if o.Exit == nil {
		o.Exit = d.Exit
	}
	if o.PrintError == nil {
		o.PrintError = d.PrintError
	}
	if o.Inspect == nil {
		o.Inspect = d.Inspect
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	o.Format.Inspect = o.Inspect
	return o
}

type invocation struct {
	opts      Options
	formatter *errfmt.Formatter
	signal    *Signal
}

// outcome is the shape of a main routine's result, decided once.
type outcome struct {
	deferred Deferred
	failed   bool
	failure  failure.Failure
}

func run(main Main, o Options) *Signal {
	inv := &invocation{
		opts:      o,
		formatter: errfmt.New(o.Format),
		signal:    newSignal(),
	}

	out := invoke(main)
	switch {
	case out.failed:
		inv.fail(out.failure)
	case out.deferred != nil:
		o.Logger.Debug("main routine returned a deferred value")
		inv.await(out.deferred)
	default:
		o.Logger.Debug("main routine returned")
		inv.signal.succeed()
	}
	return inv.signal
}

func invoke(main Main) (out outcome) {
	returned := false
	defer func() {
		if !returned {
			out = outcome{failed: true, failure: failure.Recovered(recover())}
		}
	}()
	v := main()
	returned = true
	return classify(v)
}

func classify(v any) outcome {
	switch x := v.(type) {
	case nil:
		return outcome{}
	case *Promise:
		if x == nil {
			return outcome{}
		}
		return outcome{deferred: x}
	case *Signal:
		if x == nil {
			return outcome{}
		}
		return outcome{deferred: x}
	case Deferred:
		return outcome{deferred: x}
	case error:
		return outcome{failed: true, failure: failure.Classify(x, nil)}
	}
	return outcome{}
}

func (inv *invocation) await(d Deferred) {
	var once sync.Once
	d.Then(
		func(any) {
			once.Do(inv.signal.succeed)
		},
		func(reason any) {
			once.Do(func() {
				var stack []failure.Frame
				if sc, ok := d.(stackCarrier); ok {
					stack = sc.panicStack()
				}
				inv.fail(failure.Classify(reason, stack))
			})
		},
	)
}

// fail reports f, then fails the signal, then exits. The signal and exit
// steps run even if printing panics.
func (inv *invocation) fail(f failure.Failure) {
	inv.opts.Logger.Debug("main routine failed", "kind", f.Kind())
	defer inv.opts.Exit(ExitFailure)
	defer inv.signal.fail(f.Value())
	inv.opts.PrintError(inv.formatter.FormatFailure(f))
}
