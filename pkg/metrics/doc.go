// Package metrics exposes Prometheus counters for authentication attempts,
// submitted secrets and HTTP request latency.
//
//	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
//	m.AuthAttempt(metrics.MethodLocal, metrics.OutcomeSuccess)
//
// A nil *Metrics is valid and records nothing.
package metrics
