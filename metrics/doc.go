// Package metrics adapts flop.MetricsCollector to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	m, err := metrics.NewPrometheus(reg, "flop")
//	pool := executor.New(func(o *executor.Options) { o.Metrics = m })
//	_ = m.RegisterQueueDepth(pool.Queued)
package metrics
