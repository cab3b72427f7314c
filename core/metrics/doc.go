// Package metrics defines the observability contract of the grid model.
// A MetricsSink receives NetworkStats; sinks that also implement
// SnapshotRecorder or BoundRecorder receive the snapshot series and the
// derived per bus bounds. Sinks are built from configuration through the
// factory registry and combined with NewMultiSink when several are set.
package metrics
