package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/flop/executor"
	"github.com/hupe1980/flop/metrics"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %q not gathered", name)
	return nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewPrometheus(reg, "flop")
	require.NoError(t, err)

	m.RecordTask(time.Millisecond, 2*time.Millisecond, nil)
	m.RecordTask(0, time.Millisecond, nil)
	m.RecordTask(0, time.Millisecond, errors.New("boom"))
	m.RecordRejected()
	m.RecordCallback(nil)
	m.RecordCallback(errors.New("boom"))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.Rejected()))

	tasks := family(t, reg, "flop_tasks_total")
	require.Equal(t, dto.MetricType_COUNTER, tasks.GetType())
	byStatus := map[string]float64{}
	for _, metric := range tasks.GetMetric() {
		byStatus[label(metric, "status")] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"success": 2, "error": 1}, byStatus)

	wait := family(t, reg, "flop_task_wait_seconds")
	require.Len(t, wait.GetMetric(), 1)
	h := wait.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(3), h.GetSampleCount())
	assert.InDelta(t, 0.001, h.GetSampleSum(), 1e-12)

	run := family(t, reg, "flop_task_run_seconds")
	assert.Len(t, run.GetMetric(), 2)

	assert.Equal(t, 2, promtest.CollectAndCount(reg, "flop_callbacks_total"))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewPrometheus(reg, "flop")
	require.NoError(t, err)

	_, err = metrics.NewPrometheus(reg, "flop")
	var are prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &are)

	assert.Panics(t, func() { metrics.MustNewPrometheus(reg, "flop") })

	other, err := metrics.NewPrometheus(reg, "other")
	require.NoError(t, err)
	assert.NotNil(t, other)
}

func TestQueueDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNewPrometheus(reg, "flop")

	depth := 7
	require.NoError(t, m.RegisterQueueDepth(func() int { return depth }))
	assert.Error(t, m.RegisterQueueDepth(func() int { return 0 }))

	g := family(t, reg, "flop_queue_depth")
	assert.Equal(t, 7.0, g.GetMetric()[0].GetGauge().GetValue())

	depth = 3
	g = family(t, reg, "flop_queue_depth")
	assert.Equal(t, 3.0, g.GetMetric()[0].GetGauge().GetValue())
}

func TestExecutorIntegration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNewPrometheus(reg, "flop")

	pool := executor.New(func(o *executor.Options) {
		o.Workers = 2
		o.Metrics = m
	})
	require.NoError(t, m.RegisterQueueDepth(pool.Queued))

	boom := errors.New("boom")
	var futures []*executor.Future
	for i := range 10 {
		f, err := pool.Submit(context.Background(), func(context.Context) (any, error) {
			if i%5 == 0 {
				return nil, boom
			}
			return i, nil
		}, executor.WithCallback(func(any, error) {}))
		require.NoError(t, err)
		futures = append(futures, f)
	}
	for _, f := range futures {
		_, _ = f.Wait(context.Background())
	}
	require.NoError(t, pool.Close(context.Background()))

	assert.Equal(t, 8.0, promtest.ToFloat64(m.Tasks("success")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.Tasks("error")))
	assert.Equal(t, 10.0, promtest.ToFloat64(m.Callbacks("success")))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.Rejected()))

	g := family(t, reg, "flop_queue_depth")
	assert.Equal(t, 0.0, g.GetMetric()[0].GetGauge().GetValue())
}
