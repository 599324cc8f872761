package scheduler

import (
	"context"
	"fmt"
	"sync"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type workRequest[T any] struct {
	fn  Work[T]
	c   chan Result[T]
	ctx context.Context
}

type worker[T any] struct {
	idle chan struct{}
	wg   *sync.WaitGroup
}

func (w worker[T]) Work(r workRequest[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		w.idle <- struct{}{}
		w.wg.Done()
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[T]{Data: v, Err: err}
}

// Scheduler runs Work on a fixed pool of workers. Work submitted while every
// worker is busy waits in FIFO order.
type Scheduler[T any] struct {
	workers    *queue[worker[T]]
	workQueue  *queue[workRequest[T]]
	close      chan struct{}
	idle       chan struct{}
	done       chan struct{}
	work       chan workRequest[T]
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

// NewScheduler starts a scheduler with nbWorkers workers. A value below 1 is
// treated as 1.
func NewScheduler[T any](nbWorkers int) *Scheduler[T] {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		workers:    &queue[worker[T]]{},
		workQueue:  &queue[workRequest[T]]{},
		close:      make(chan struct{}),
		idle:       make(chan struct{}, nbWorkers),
		done:       make(chan struct{}),
		work:       make(chan workRequest[T]),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(worker[T]{idle: s.idle, wg: &s.wg})
	}
	go s.run()
	return s
}

func (s *Scheduler[T]) AddWork(w Work[T]) *Future[Result[T]] {
	c := make(chan Result[T], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case <-s.mainCtx.Done():
		// closing: the work never runs
		c <- Result[T]{Err: context.Canceled}
	case s.work <- workRequest[T]{w, c, ctx}:
	}

	return NewFuture(c, cancel)
}

// Close cancels all work, waits for in-flight work and fails queued work
// with context.Canceled. It is idempotent.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.done
	})
}

func (s *Scheduler[T]) run() {
	defer close(s.done)
	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			s.dispatch()
		case <-s.idle:
			s.workers.Push(worker[T]{idle: s.idle, wg: &s.wg})
			s.dispatch()
		case <-s.close:
			for s.workQueue.Len() > 0 {
				s.workQueue.Pop().c <- Result[T]{Err: context.Canceled}
			}
			s.wg.Wait()
			return
		}
	}
}

// dispatch drains the workQueue as much as possible
// based on available workers. Work cancelled while queued is not started.
func (s *Scheduler[T]) dispatch() {
	for s.workers.Len() > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		if err := r.ctx.Err(); err != nil {
			r.c <- Result[T]{Err: err}
			continue
		}
		w := s.workers.Pop()
		s.wg.Add(1)
		go w.Work(r)
	}
}
