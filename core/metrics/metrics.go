package metrics

import "time"

// NetworkStats is a point in time summary of a grid.
type NetworkStats struct {
	Network               string
	ID                    string
	Vertices              int
	Edges                 int
	Generators            int
	Loads                 int
	VerticesWithGenerator int
	VerticesWithLoad      int
	Timestamps            int
	Islands               int
	BoundType             string
	Time                  time.Time
}

// MetricsSink records network summaries for observability purposes.
type MetricsSink interface {
	RecordNetworkStats(s NetworkStats) error
}

// SnapshotKind tells generator series from load series.
type SnapshotKind string

const (
	KindGenerator SnapshotKind = "generator"
	KindLoad      SnapshotKind = "load"
)

// SnapshotPoint is one value of a generator or load series.
type SnapshotPoint struct {
	Network   string
	Kind      SnapshotKind
	ID        int
	Name      string
	Bus       string
	Position  int
	Timestamp string
	// Time is the parsed timestamp label, zero when the label is not a date.
	Time  time.Time
	Value float64
}

// SnapshotRecorder records snapshot series.
type SnapshotRecorder interface {
	RecordSnapshots(points []SnapshotPoint) error
}

// BusBound is the derived generation and load interval of one bus.
type BusBound struct {
	Network       string
	VertexID      int
	Bus           string
	Position      int
	GenerationMin float64
	GenerationMax float64
	LoadMin       float64
	LoadMax       float64
}

// BoundRecorder records derived bus bounds.
type BoundRecorder interface {
	RecordBusBounds(bounds []BusBound) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordNetworkStats(NetworkStats) error { return nil }
func (NopSink) RecordSnapshots([]SnapshotPoint) error { return nil }
func (NopSink) RecordBusBounds([]BusBound) error      { return nil }
