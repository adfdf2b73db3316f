package executor

import (
	"context"
	"sync/atomic"
)

const (
	statePending int32 = iota
	stateRunning
	stateDone
	stateCancelled
)

// Future is the pending result of a submitted task.
type Future struct {
	seq      uint64
	priority float64

	state  atomic.Int32
	done   chan struct{}
	result any
	err    error

	cancel context.CancelFunc
}

func newFuture(seq uint64, priority float64, cancel context.CancelFunc) *Future {
	return &Future{
		seq:      seq,
		priority: priority,
		done:     make(chan struct{}),
		cancel:   cancel,
	}
}

// Seq returns the submission sequence number of the task.
func (f *Future) Seq() uint64 { return f.seq }

// Priority returns the task priority.
func (f *Future) Priority() float64 { return f.priority }

// Done returns a channel closed once the future has a result.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the task completes or ctx is done. A ctx error does not
// cancel the task.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel cancels the task if it has not completed yet. A queued task never
// runs; a running task sees its context cancelled and its outcome is
// discarded. It reports whether the call cancelled the task.
func (f *Future) Cancel() bool {
	for {
		s := f.state.Load()
		if s == stateDone || s == stateCancelled {
			return false
		}
		if f.state.CompareAndSwap(s, stateCancelled) {
			f.cancel()
			f.err = ErrCancelled
			close(f.done)
			return true
		}
	}
}

// Cancelled reports whether the task was cancelled.
func (f *Future) Cancelled() bool { return f.state.Load() == stateCancelled }

// start moves a pending future to running.
func (f *Future) start() bool {
	return f.state.CompareAndSwap(statePending, stateRunning)
}

// complete publishes the outcome unless the future was cancelled meanwhile.
func (f *Future) complete(result any, err error) bool {
	if !f.state.CompareAndSwap(stateRunning, stateDone) {
		return false
	}
	f.result, f.err = result, err
	f.cancel()
	close(f.done)
	return true
}
