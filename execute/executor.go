package execute

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/leftmike/setsession/sql"
)

// Executor runs units of work asynchronously.
type Executor interface {
	Execute(fn func())
}

// GoExecutor runs each unit of work in its own goroutine.
type GoExecutor struct{}

func (_ GoExecutor) Execute(fn func()) {
	go fn()
}

// PoolExecutor runs at most a fixed number of units of work at the same time.
type PoolExecutor struct {
	sem *semaphore.Weighted
}

func NewPoolExecutor(n int64) *PoolExecutor {
	if n <= 0 {
		panic(fmt.Sprintf("execute: pool size must be positive: %d", n))
	}
	return &PoolExecutor{
		sem: semaphore.NewWeighted(n),
	}
}

func (pe *PoolExecutor) Execute(fn func()) {
	go func() {
		// Acquire can only fail if the context is done.
		pe.sem.Acquire(context.Background(), 1)
		defer pe.sem.Release(1)

		fn()
	}()
}

// Submit runs fn on exec and returns a Future for its result. If fn panics, the Future
// completes with an error instead.
func Submit(exec Executor, fn func() error) *Future {
	f := newFuture()
	exec.Execute(
		func() {
			var err error
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("execute: unit of work panicked")
					err = sql.Errorf(sql.UnknownError, "internal error: %v", r)
				}
				f.complete(err)
			}()

			err = fn()
		})
	return f
}
