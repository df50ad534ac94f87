// Package future provides pending results that can be memoized as-is.
//
// A memoize.Cache stores whatever its function returns. When that is a
// *Future, a second call with the same key observes the same pending future
// instead of starting another computation, which gives at-most-one
// computation in flight per key.
package future

import (
	"context"
	"errors"
	"fmt"
)

// ErrPanicked wraps a panic raised by a future's computation.
var ErrPanicked = errors.New("future computation panicked")

// Future is the pending result of an asynchronous computation.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn in its own goroutine and returns its Future.
// fn runs with a context that keeps ctx's values but not its cancellation:
// once started, a computation cannot be retracted.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	return start(ctx, fn, nil)
}

// Resolved returns an already completed Future.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}

func start[T any](
	ctx context.Context,
	fn func(context.Context) (T, error),
	beforeDone func(*Future[T]),
) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	ready := make(chan struct{})
	go func() {
		close(ready)
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanicked, r)
			}
			if beforeDone != nil {
				beforeDone(f)
			}
		}()
		f.value, f.err = fn(context.WithoutCancel(ctx))
	}()
	<-ready
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future completes or ctx is done.
// Cancelling ctx abandons the wait, not the computation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}
}

// Result returns the outcome without blocking. ok is false while pending.
func (f *Future[T]) Result() (value T, err error, ok bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		return *new(T), nil, false
	}
}
