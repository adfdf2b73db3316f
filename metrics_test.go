package flop

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector
	assert.Equal(t, BasicMetricsStats{}, m.GetStats())

	m.RecordTask(2*time.Millisecond, 4*time.Millisecond, nil)
	m.RecordTask(4*time.Millisecond, 8*time.Millisecond, errors.New("boom"))
	m.RecordRejected()
	m.RecordCallback(nil)
	m.RecordCallback(errors.New("boom"))

	assert.Equal(t, BasicMetricsStats{
		TaskCount:      2,
		TaskErrors:     1,
		WaitAvgNanos:   (3 * time.Millisecond).Nanoseconds(),
		RunAvgNanos:    (6 * time.Millisecond).Nanoseconds(),
		Rejected:       1,
		Callbacks:      2,
		CallbackErrors: 1,
	}, m.GetStats())
}

func TestBasicMetricsCollectorConcurrent(t *testing.T) {
	var m BasicMetricsCollector
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				m.RecordTask(time.Microsecond, time.Microsecond, nil)
			}
		}()
	}
	wg.Wait()

	stats := m.GetStats()
	assert.Equal(t, int64(8000), stats.TaskCount)
	assert.Equal(t, int64(1000), stats.WaitAvgNanos)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordTask(0, 0, nil)
	m.RecordRejected()
	m.RecordCallback(nil)
}
