// Package future provides a minimal promise/future primitive used to
// represent the lifespan protocol's startup-complete and
// shutdown-complete suspension points: a value that some other
// goroutine will eventually set, and that callers can await with a
// context for cancellation.
//
// Unlike a general-purpose task scheduler, a Future here is never
// itself responsible for running work; it is only ever Set once by
// the code that drives the lifespan handler chain, and awaited by the
// supervisor.
package future

import (
	"context"
	"errors"
	"sync"
)

// ErrNotSet is returned by TryGet when the future has not completed.
var ErrNotSet = errors.New("future: result not set")

// Future is a write-once container for a value and/or error, safe for
// concurrent use: one goroutine calls Set, any number of others call
// Get/GetWithContext/TryGet.
type Future[V any] struct {
	once  sync.Once
	done  chan struct{}
	value V
	err   error
}

// New returns an unset Future.
func New[V any]() *Future[V] {
	return &Future[V]{done: make(chan struct{})}
}

// Set completes the future with value and err. Only the first call
// has any effect; later calls are no-ops, matching the lifespan
// protocol's "send exactly one ...complete/...failed event" shape.
func (f *Future[V]) Set(value V, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done returns a channel that is closed once the future is set.
func (f *Future[V]) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether Set has already been called.
func (f *Future[V]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the future is set and returns its value and error.
func (f *Future[V]) Get() (V, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext blocks until the future is set or ctx is done,
// whichever happens first. If ctx is done first, ctx.Err() is
// returned alongside the zero value.
func (f *Future[V]) GetWithContext(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// TryGet returns the future's value and error without blocking. The
// final bool reports whether the future had already been set; when
// false, value and err are the zero value and ErrNotSet.
func (f *Future[V]) TryGet() (V, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero V
		return zero, ErrNotSet, false
	}
}
