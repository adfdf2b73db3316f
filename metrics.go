package flop

import (
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
)

// MetricsCollector defines an interface for collecting executor metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package metrics for a ready-made adapter).
type MetricsCollector interface {
	// RecordTask is called after each task body returns.
	// wait is the time spent queued, run the time spent executing,
	// err is nil if successful.
	RecordTask(wait, run time.Duration, err error)

	// RecordRejected is called when a submission is refused.
	RecordRejected()

	// RecordCallback is called after a completion callback ran.
	RecordCallback(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTask(time.Duration, time.Duration, error) {}
func (NoopMetricsCollector) RecordRejected()                                {}
func (NoopMetricsCollector) RecordCallback(error)                           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
//
// Counters written by different workers are padded onto separate cache lines.
type BasicMetricsCollector struct {
	TaskCount      atomic.Int64
	_              cpu.CacheLinePad
	TaskErrors     atomic.Int64
	_              cpu.CacheLinePad
	WaitTotalNanos atomic.Int64
	_              cpu.CacheLinePad
	RunTotalNanos  atomic.Int64
	_              cpu.CacheLinePad
	Rejected       atomic.Int64
	_              cpu.CacheLinePad
	Callbacks      atomic.Int64
	CallbackErrors atomic.Int64
}

// RecordTask implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTask(wait, run time.Duration, err error) {
	b.TaskCount.Add(1)
	b.WaitTotalNanos.Add(wait.Nanoseconds())
	b.RunTotalNanos.Add(run.Nanoseconds())
	if err != nil {
		b.TaskErrors.Add(1)
	}
}

// RecordRejected implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRejected() {
	b.Rejected.Add(1)
}

// RecordCallback implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCallback(err error) {
	b.Callbacks.Add(1)
	if err != nil {
		b.CallbackErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TaskCount:      b.TaskCount.Load(),
		TaskErrors:     b.TaskErrors.Load(),
		WaitAvgNanos:   avg(b.WaitTotalNanos.Load(), b.TaskCount.Load()),
		RunAvgNanos:    avg(b.RunTotalNanos.Load(), b.TaskCount.Load()),
		Rejected:       b.Rejected.Load(),
		Callbacks:      b.Callbacks.Load(),
		CallbackErrors: b.CallbackErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TaskCount      int64
	TaskErrors     int64
	WaitAvgNanos   int64
	RunAvgNanos    int64
	Rejected       int64
	Callbacks      int64
	CallbackErrors int64
}
