// Package task models the simulated asynchronous operations of this
// system (sign-in, checkout processing). A task resolves exactly once
// after a fixed delay and has no cancellation path: a caller that
// stops waiting simply abandons the result.
package task

import "time"

type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Run starts fn after the given delay and returns immediately.
func Run[T any](delay time.Duration, fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		t.val, t.err = fn()
		close(t.done)
	}()
	return t
}

// Await blocks until the task resolves.
func (t *Task[T]) Await() (T, error) {
	<-t.done
	return t.val, t.err
}

// Done closes once the task has resolved.
func (t *Task[T]) Done() <-chan struct{} { return t.done }
