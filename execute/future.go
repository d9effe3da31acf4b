package execute

import (
	"context"
)

// Future is the result of a unit of work which completes exactly once.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{
		done: make(chan struct{}),
	}
}

func (f *Future) complete(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel which is closed when the work has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the result of the work; it must only be called after Done is closed.
func (f *Future) Err() error {
	return f.err
}

// Wait waits for the work to complete, or for ctx to be done, whichever happens first. The
// work is not interrupted if ctx is done first.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
