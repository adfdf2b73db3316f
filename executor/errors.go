package executor

import "errors"

var (
	// ErrQueueFull is returned by Submit when the bounded queue is full.
	ErrQueueFull = errors.New("executor: queue full")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("executor: pool closed")

	// ErrTaskPanicked wraps the value recovered from a panicking task.
	ErrTaskPanicked = errors.New("executor: task panicked")

	// ErrCancelled is the error of a future whose task was cancelled.
	ErrCancelled = errors.New("executor: task cancelled")
)
