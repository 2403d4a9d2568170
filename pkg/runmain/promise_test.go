package runmain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromiseSettlesOnce(t *testing.T) {
	p := NewPromise()
	var resolved, rejected []any
	p.Then(func(v any) { resolved = append(resolved, v) }, func(v any) { rejected = append(rejected, v) })

	p.Resolve("first")
	p.Reject("ignored")
	p.Resolve("ignored")

	assert.Equal(t, []any{"first"}, resolved)
	assert.Empty(t, rejected)

	v, err := p.Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestPromiseThenAfterSettle(t *testing.T) {
	p := NewPromise()
	p.Reject(7)

	var got any
	p.Then(nil, func(v any) { got = v })
	assert.Equal(t, 7, got)

	_, err := p.Await(context.Background())
	var thrown *ThrownValue
	require.ErrorAs(t, err, &thrown)
	assert.Equal(t, 7, thrown.Value)
}

func TestPromiseAwaitHonorsContext(t *testing.T) {
	p := NewPromise()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsync(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Async(func() error { return boom }).Await(context.Background())
		assert.Same(t, boom, err)
	})

	t.Run("panic keeps stack", func(t *testing.T) {
		p := Async(func() error { panic("kaboom") })
		<-p.Done()

		stack := p.panicStack()
		require.NotEmpty(t, stack)
		assert.Contains(t, stack[0].Function, "TestAsync")
		assert.NotContains(t, stack[0].Function, "runtime.")
	})

	t.Run("success", func(t *testing.T) {
		v, err := Async(func() error { return nil }).Await(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestSignalErrBeforeSettle(t *testing.T) {
	s := newSignal()
	assert.NoError(t, s.Err())
	_, failed := s.Failure()
	assert.False(t, failed)

	s.fail("x")
	s.succeed()

	assert.EqualError(t, s.Err(), "non-error value was thrown: x")
}
