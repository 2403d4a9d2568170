package runmain

import (
	"context"
	"sync"

	"github.com/daryltucker/run-main/pkg/failure"
)

// Deferred is a value whose outcome arrives later. Then registers the two
// continuations; an implementation calls at most one of them, at most once.
type Deferred interface {
	Then(onResolved, onRejected func(any))
}

// Promise is a Deferred settled by Resolve or Reject. The first settlement
// wins; later calls are ignored. The zero value is not usable, use
// NewPromise.
type Promise struct {
	mu       sync.Mutex
	done     chan struct{}
	settled  bool
	rejected bool
	value    any
	reason   any
	stack    []failure.Frame
	handlers []handlers
}

type handlers struct {
	onResolved func(any)
	onRejected func(any)
}

// NewPromise returns a pending Promise.
func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Async runs fn on its own goroutine and returns a Promise for its outcome.
// A non-nil error or a panic rejects the promise with that value.
func Async(fn func() error) *Promise {
	p := NewPromise()
	go func() {
		returned := false
		defer func() {
			if !returned {
				p.reject(recover(), failure.PanicStack())
			}
		}()
		err := fn()
		returned = true
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(nil)
	}()
	return p
}

// Resolve settles p successfully with v.
func (p *Promise) Resolve(v any) {
	p.settle(false, v, nil)
}

// Reject settles p as failed with reason.
func (p *Promise) Reject(reason any) {
	p.settle(true, reason, nil)
}

func (p *Promise) reject(reason any, stack []failure.Frame) {
	p.settle(true, reason, stack)
}

func (p *Promise) settle(rejected bool, v any, stack []failure.Frame) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return
	}
	p.settled = true
	p.rejected = rejected
	if rejected {
		p.reason = v
		p.stack = stack
	} else {
		p.value = v
	}
	hs := p.handlers
	p.handlers = nil
	close(p.done)
	p.mu.Unlock()

	for _, h := range hs {
		p.dispatch(h)
	}
}

// Then registers continuations. If p has already settled, the matching one
// runs before Then returns; otherwise it runs on the settling goroutine.
// Either argument may be nil.
func (p *Promise) Then(onResolved, onRejected func(any)) {
	h := handlers{onResolved: onResolved, onRejected: onRejected}
	p.mu.Lock()
	if !p.settled {
		p.handlers = append(p.handlers, h)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.dispatch(h)
}

func (p *Promise) dispatch(h handlers) {
	if p.rejected {
		if h.onRejected != nil {
			h.onRejected(p.reason)
		}
		return
	}
	if h.onResolved != nil {
		h.onResolved(p.value)
	}
}

// Done is closed once p settles.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await blocks until p settles or ctx is done. A rejection is returned as an
// error: the reason itself when it is one, a *ThrownValue otherwise.
func (p *Promise) Await(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
	}
	if p.rejected {
		return nil, asError(p.reason)
	}
	return p.value, nil
}

// panicStack returns the stack captured when an Async body panicked.
func (p *Promise) panicStack() []failure.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stack
}

type stackCarrier interface {
	panicStack() []failure.Frame
}
