package scheduler_test

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler[any]

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler[any](1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})

		It("should carry typed results", func() {
			typed := scheduler.NewScheduler[int](1)
			defer typed.Close()

			future := typed.AddWork(func(ctx context.Context) (int, error) {
				return 42, nil
			})

			result, err := future.Wait(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(42))
		})

		It("should treat a non-positive worker count as one worker", func() {
			s = scheduler.NewScheduler[any](0)

			result, err := s.AddWork(func(ctx context.Context) (any, error) {
				return "ok", nil
			}).Wait(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal("ok"))
		})
	})

	Describe("Run work", func() {
		It("should execute multiple work items", func() {
			s = scheduler.NewScheduler[any](2)

			results := make(chan int, 3)
			for i := range 3 {
				s.AddWork(func(ctx context.Context) (any, error) {
					results <- i
					return i, nil
				})
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})

		// Given a scheduler with a single worker
		// When several items are submitted
		// Then they run one at a time in submission order
		It("should run work sequentially in order with one worker", func() {
			// Arrange
			s = scheduler.NewScheduler[any](1)
			var (
				mu      sync.Mutex
				order   []int
				running int
				maxSeen int
			)

			// Act
			futures := make([]*scheduler.Future[scheduler.Result[any]], 0, 5)
			for i := range 5 {
				futures = append(futures, s.AddWork(func(ctx context.Context) (any, error) {
					mu.Lock()
					running++
					maxSeen = max(maxSeen, running)
					order = append(order, i)
					mu.Unlock()

					time.Sleep(10 * time.Millisecond)

					mu.Lock()
					running--
					mu.Unlock()
					return i, nil
				}))
			}
			for _, f := range futures {
				_, err := f.Wait(context.Background())
				Expect(err).NotTo(HaveOccurred())
			}

			// Assert
			mu.Lock()
			defer mu.Unlock()
			Expect(order).To(Equal([]int{0, 1, 2, 3, 4}))
			Expect(maxSeen).To(Equal(1))
		})

		It("should report work errors in the result", func() {
			s = scheduler.NewScheduler[any](1)
			boom := errors.New("boom")

			result, err := s.AddWork(func(ctx context.Context) (any, error) {
				return nil, boom
			}).Wait(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Err).To(MatchError(boom))
		})

		It("should recover from panics and keep the worker", func() {
			s = scheduler.NewScheduler[any](1)

			panicked, err := s.AddWork(func(ctx context.Context) (any, error) {
				panic("bad check")
			}).Wait(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(panicked.Err).To(MatchError(ContainSubstring("worker panicked")))

			next, err := s.AddWork(func(ctx context.Context) (any, error) {
				return "still alive", nil
			}).Wait(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Data).To(Equal("still alive"))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler[any](1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			future := s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should stop the work when Wait's context ends first", func() {
			s = scheduler.NewScheduler[any](1)

			stopped := make(chan struct{})
			future := s.AddWork(func(ctx context.Context) (any, error) {
				<-ctx.Done()
				close(stopped)
				return nil, ctx.Err()
			})

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			_, err := future.Wait(ctx)

			Expect(err).To(MatchError(context.DeadlineExceeded))
			Eventually(stopped, time.Second).Should(BeClosed())
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler[any](1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler[any](4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler[any](1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should fail queued work with canceled on Close", func() {
			// Arrange
			s = scheduler.NewScheduler[any](1)
			started := make(chan struct{})
			s.AddWork(func(ctx context.Context) (any, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			})
			Eventually(started, time.Second).Should(BeClosed())
			queued := s.AddWork(func(ctx context.Context) (any, error) {
				return "never", nil
			})

			// Act
			s.Close()
			s = nil // prevent AfterEach from closing again

			// Assert
			var result scheduler.Result[any]
			Eventually(queued.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler[any](1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			}

			s.AddWork(work)
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})
})
