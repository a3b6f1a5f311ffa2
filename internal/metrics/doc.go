// Package metrics provides observability hooks for version analyses.
//
// It implements the Null Object pattern: components receive a Recorder
// through dependency injection and default to NoopRecorder, so metrics
// collection needs no nil checks at call sites. When Prometheus is enabled
// in the configuration, the daemon swaps in a PrometheusRecorder backed by
// its own registry and serves it on /metrics.
package metrics
