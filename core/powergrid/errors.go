package powergrid

import (
	"errors"

	"github.com/kilianp07/gridmodel/core/graph"
)

var (
	// ErrVertexNotFound is returned when a bus identifier is not live.
	ErrVertexNotFound = graph.ErrVertexNotFound
	// ErrGeneratorNotFound is returned when a generator identifier is not live.
	ErrGeneratorNotFound = errors.New("generator not found")
	// ErrLoadNotFound is returned when a load identifier is not live.
	ErrLoadNotFound = errors.New("load not found")
	// ErrNotAssociated is returned when a generator or load is not attached to the given bus.
	ErrNotAssociated = errors.New("not associated with vertex")
	// ErrEmptyTimestamp is returned when a snapshot timestamp label is empty.
	ErrEmptyTimestamp = errors.New("empty timestamp")
	// ErrSnapshotOverflow is returned when a series would outgrow the timestamps.
	ErrSnapshotOverflow = errors.New("snapshot series longer than timestamps")
)
