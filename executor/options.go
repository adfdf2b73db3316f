package executor

import (
	"runtime"

	"github.com/hupe1980/flop"
	"golang.org/x/time/rate"
)

// Options configures a Pool.
type Options struct {
	// Workers is the number of goroutines executing tasks.
	// Values below 1 use runtime.GOMAXPROCS(0).
	Workers int

	// QueueCapacity bounds the number of tasks waiting to run.
	// 0 means unbounded.
	QueueCapacity int

	// RateLimit limits how many tasks start per second.
	// 0 means unlimited.
	RateLimit rate.Limit

	// Burst is the rate limiter bucket size. Values below 1 use 1.
	Burst int

	// Logger receives task outcomes. Nil discards them.
	Logger *flop.Logger

	// Metrics receives task and callback measurements. Nil discards them.
	Metrics flop.MetricsCollector
}

// DefaultOptions are the options used by New before applying optFns.
var DefaultOptions = Options{
	Workers:       runtime.GOMAXPROCS(0),
	QueueCapacity: 0,
	RateLimit:     0,
	Burst:         1,
}

// TaskOption configures a single submission.
type TaskOption func(*task)

// WithPriority sets the task priority. Higher runs first.
func WithPriority(p float64) TaskOption {
	return func(t *task) {
		t.priority = p
	}
}

// WithCallback sets a function invoked with the task outcome once it
// completes, unless the task was cancelled.
func WithCallback(fn func(result any, err error)) TaskOption {
	return func(t *task) {
		t.callback = fn
	}
}
