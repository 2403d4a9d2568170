package runmain

import (
	"context"
	"fmt"
)

// Signal is the outcome of one Run call. It succeeds with no value, or fails
// with the original failure value. It settles exactly once.
//
// A Signal is itself a Deferred, so one main routine can return the signal of
// another.
type Signal struct {
	p *Promise
}

func newSignal() *Signal {
	return &Signal{p: NewPromise()}
}

func (s *Signal) succeed() {
	s.p.Resolve(nil)
}

func (s *Signal) fail(v any) {
	s.p.Reject(v)
}

// Then registers continuations. onSucceeded always receives nil.
func (s *Signal) Then(onSucceeded, onFailed func(any)) {
	s.p.Then(onSucceeded, onFailed)
}

// Done is closed once the signal settles.
func (s *Signal) Done() <-chan struct{} {
	return s.p.Done()
}

// Wait blocks until the signal settles or ctx is done. A failure is returned
// as the original error when the failure value is one, a *ThrownValue
// otherwise.
func (s *Signal) Wait(ctx context.Context) error {
	_, err := s.p.Await(ctx)
	return err
}

// Err returns the failure as an error without blocking. It is nil while the
// signal is pending and after success.
func (s *Signal) Err() error {
	v, ok := s.Failure()
	if !ok {
		return nil
	}
	return asError(v)
}

// Failure returns the original failure value without blocking.
func (s *Signal) Failure() (any, bool) {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	if !s.p.settled || !s.p.rejected {
		return nil, false
	}
	return s.p.reason, true
}

// ThrownValue carries a failure value that is not an error.
type ThrownValue struct {
	Value any
}

func (t *ThrownValue) Error() string {
	return fmt.Sprintf("non-error value was thrown: %v", t.Value)
}

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &ThrownValue{Value: v}
}
