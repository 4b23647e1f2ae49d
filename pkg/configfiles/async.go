package configfiles

import "context"

// Async is an owned handle to the result of an asynchronous load. It is safe
// to poll and wait from multiple goroutines; exactly one producer completes
// it, exactly once.
//
// A Group replaces its handles wholesale on every LoadFiles call, so a
// superseded load only ever completes its own orphaned handle and can never
// race with the slots of a newer generation.
type Async[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newAsync[T any]() *Async[T] {
	return &Async[T]{done: make(chan struct{})}
}

// Ready returns an already-completed handle holding val.
func Ready[T any](val T) *Async[T] {
	a := newAsync[T]()
	a.complete(val, nil)
	return a
}

// complete publishes the result. Must be called exactly once.
func (a *Async[T]) complete(val T, err error) {
	a.val = val
	a.err = err
	close(a.done)
}

// IsReady reports whether the result is available, without blocking.
func (a *Async[T]) IsReady() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// TryGet returns the result if it is available. The second return is false
// while the load is still in flight.
func (a *Async[T]) TryGet() (T, bool) {
	select {
	case <-a.done:
		return a.val, true
	default:
		var zero T
		return zero, false
	}
}

// Get blocks until the result is available or ctx is done.
func (a *Async[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-a.done:
		return a.val, a.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Err returns the error the load completed with, or nil if it has not
// completed yet. A failed load still publishes a default-constructed value.
func (a *Async[T]) Err() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}
