package metrics

import (
	"time"

	"github.com/hupe1980/flop"
	"github.com/prometheus/client_golang/prometheus"
)

// Compile time check.
var _ flop.MetricsCollector = (*Prometheus)(nil)

// Prometheus implements flop.MetricsCollector with Prometheus collectors.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string

	taskWait  prometheus.Histogram
	taskRun   *prometheus.HistogramVec
	tasks     *prometheus.CounterVec
	rejected  prometheus.Counter
	callbacks *prometheus.CounterVec
}

// NewPrometheus creates the collectors under namespace and registers them
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		reg:       reg,
		namespace: namespace,
		taskWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_wait_seconds",
			Help:      "Time tasks spent queued before starting",
			Buckets:   prometheus.DefBuckets,
		}),
		taskRun: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_run_seconds",
			Help:      "Execution time of tasks",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Total tasks executed",
		}, []string{"status"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_rejected_total",
			Help:      "Total submissions refused by a full or closed queue",
		}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_total",
			Help:      "Total completion callbacks invoked",
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{p.taskWait, p.taskRun, p.tasks, p.rejected, p.callbacks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNewPrometheus is NewPrometheus that panics on registration errors.
func MustNewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	p, err := NewPrometheus(reg, namespace)
	if err != nil {
		panic(err)
	}
	return p
}

// RegisterQueueDepth exports fn as a gauge of queued tasks.
// Registering a second depth gauge with the same registry fails.
func (p *Prometheus) RegisterQueueDepth(fn func() int) error {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: p.namespace,
		Name:      "queue_depth",
		Help:      "Tasks waiting to run",
	}, func() float64 { return float64(fn()) })
	return p.reg.Register(g)
}

// RecordTask implements flop.MetricsCollector.
func (p *Prometheus) RecordTask(wait, run time.Duration, err error) {
	s := status(err)
	p.taskWait.Observe(wait.Seconds())
	p.taskRun.WithLabelValues(s).Observe(run.Seconds())
	p.tasks.WithLabelValues(s).Inc()
}

// RecordRejected implements flop.MetricsCollector.
func (p *Prometheus) RecordRejected() {
	p.rejected.Inc()
}

// RecordCallback implements flop.MetricsCollector.
func (p *Prometheus) RecordCallback(err error) {
	p.callbacks.WithLabelValues(status(err)).Inc()
}

// Tasks returns the task counter for status, "success" or "error".
func (p *Prometheus) Tasks(status string) prometheus.Counter {
	return p.tasks.WithLabelValues(status)
}

// Callbacks returns the callback counter for status, "success" or "error".
func (p *Prometheus) Callbacks(status string) prometheus.Counter {
	return p.callbacks.WithLabelValues(status)
}

// Rejected returns the rejection counter.
func (p *Prometheus) Rejected() prometheus.Counter { return p.rejected }

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
