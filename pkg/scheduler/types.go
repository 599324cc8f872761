package scheduler

import (
	"context"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		input:  input,
		cancel: cancel,
	}
}

func (f *Future[T]) C() chan T {
	return f.input
}

func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the future resolves or ctx is done. When ctx ends first
// the work is stopped and ctx's error is returned.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-f.input:
		return v, nil
	case <-ctx.Done():
		f.cancel()
		var zero T
		return zero, ctx.Err()
	}
}
