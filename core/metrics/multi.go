package metrics

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordNetworkStats forwards the summary to all sinks, returning the first error encountered.
func (m *MultiSink) RecordNetworkStats(s NetworkStats) error {
	for _, sink := range m.Sinks {
		if err := sink.RecordNetworkStats(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordSnapshots forwards series to the sinks that support them.
func (m *MultiSink) RecordSnapshots(points []SnapshotPoint) error {
	for _, sink := range m.Sinks {
		if rec, ok := sink.(SnapshotRecorder); ok {
			if err := rec.RecordSnapshots(points); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBusBounds forwards bounds to the sinks that support them.
func (m *MultiSink) RecordBusBounds(bounds []BusBound) error {
	for _, sink := range m.Sinks {
		if rec, ok := sink.(BoundRecorder); ok {
			if err := rec.RecordBusBounds(bounds); err != nil {
				return err
			}
		}
	}
	return nil
}

// Closer is implemented by sinks holding a connection.
type Closer interface {
	Close()
}

// Close closes every sink implementing Closer.
func (m *MultiSink) Close() {
	for _, sink := range m.Sinks {
		if c, ok := sink.(Closer); ok {
			c.Close()
		}
	}
}
