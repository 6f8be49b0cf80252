// Package observability turns converter lifecycle hooks into Prometheus metrics
// and structured log lines.
//
// Both are plain domain.LifecycleHooks values, so they compose with Merge:
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
//	conv := riggen.New(riggen.WithLifecycleHooks(hooks))
package observability
