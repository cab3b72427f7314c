package powergrid

import (
	"fmt"
	"iter"

	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/internal/assert"
)

// AddSnapshotTimestamp appends a timestamp label. Its position is the number
// of labels added before it.
func (n *PowerGrid) AddSnapshotTimestamp(ts string) error {
	if ts == "" {
		return ErrEmptyTimestamp
	}
	n.timestamps = append(n.timestamps, ts)
	return nil
}

// PositionOf returns the position of the first label equal to ts or
// consts.None. The lookup is a linear scan.
func (n *PowerGrid) PositionOf(ts string) int {
	for i, t := range n.timestamps {
		if t == ts {
			return i
		}
	}
	return consts.None
}

// TimestampAt returns the label at position.
func (n *PowerGrid) TimestampAt(position int) string {
	assert.Usage(position >= 0 && position < len(n.timestamps), "timestamp position %d out of range [0,%d)", position, len(n.timestamps))
	return n.timestamps[position]
}

// NumberOfTimestamps returns the number of registered labels.
func (n *PowerGrid) NumberOfTimestamps() int { return len(n.timestamps) }

// Timestamps returns a copy of the registered labels.
func (n *PowerGrid) Timestamps() []string { return append([]string(nil), n.timestamps...) }

// AddSnapshotWeighting appends the weight of the next timestamp position.
func (n *PowerGrid) AddSnapshotWeighting(w float64) {
	n.snapshotWeights = append(n.snapshotWeights, w)
}

// WeightingAt returns the weight at position or consts.NoneReal.
func (n *PowerGrid) WeightingAt(position int) float64 {
	n.mustPosition(position)
	if position >= len(n.snapshotWeights) {
		return consts.NoneReal
	}
	return n.snapshotWeights[position]
}

// AddGeneratorRealPowerSnapshotAt appends a per unit real power value to the
// series of a generator.
func (n *PowerGrid) AddGeneratorRealPowerSnapshotAt(generatorID int, value float64) error {
	if !n.HasGenerator(generatorID) {
		return fmt.Errorf("add snapshot for generator %d: %w", generatorID, ErrGeneratorNotFound)
	}
	n.generatorRealPowerSnapshots = grow(n.generatorRealPowerSnapshots, len(n.generators)-1)
	series := n.generatorRealPowerSnapshots[generatorID]
	if len(series) >= len(n.timestamps) {
		return fmt.Errorf("add snapshot for generator %d at position %d: %w", generatorID, len(series), ErrSnapshotOverflow)
	}
	n.generatorRealPowerSnapshots[generatorID] = append(series, value)
	return nil
}

// GeneratorRealPowerSnapshotAt returns the real power of a generator at a
// timestamp position, or consts.NoneReal when the series does not cover it.
func (n *PowerGrid) GeneratorRealPowerSnapshotAt(generatorID, position int) float64 {
	assert.Usage(n.HasGenerator(generatorID), "generator %d does not exist", generatorID)
	n.mustPosition(position)
	return seriesValue(n.generatorRealPowerSnapshots, generatorID, position)
}

// GeneratorRealPowerSnapshotAtTimestamp resolves ts with PositionOf first.
func (n *PowerGrid) GeneratorRealPowerSnapshotAtTimestamp(generatorID int, ts string) float64 {
	pos := n.PositionOf(ts)
	if pos == consts.None {
		assert.Usage(n.HasGenerator(generatorID), "generator %d does not exist", generatorID)
		return consts.NoneReal
	}
	return n.GeneratorRealPowerSnapshotAt(generatorID, pos)
}

// GeneratorReactivePowerSnapshotAt returns the static reactive power of the
// generator. Reactive series are not tracked, so position is only validated.
func (n *PowerGrid) GeneratorReactivePowerSnapshotAt(generatorID, position int) float64 {
	n.mustPosition(position)
	return n.GeneratorAt(generatorID).ReactivePower
}

// GeneratorRealPowerSnapshotsAt returns one value per generator identifier at
// position. Removed generators and uncovered positions yield consts.NoneReal.
func (n *PowerGrid) GeneratorRealPowerSnapshotsAt(position int) []float64 {
	n.mustPosition(position)
	out := make([]float64, len(n.generators))
	for id := range out {
		if !n.generatorExists[id] {
			out[id] = consts.NoneReal
			continue
		}
		out[id] = seriesValue(n.generatorRealPowerSnapshots, id, position)
	}
	return out
}

// AddLoadSnapshotAt appends a per unit real power value to the series of a load.
func (n *PowerGrid) AddLoadSnapshotAt(loadID int, value float64) error {
	if !n.HasLoad(loadID) {
		return fmt.Errorf("add snapshot for load %d: %w", loadID, ErrLoadNotFound)
	}
	n.loadSnapshots = grow(n.loadSnapshots, len(n.loads)-1)
	series := n.loadSnapshots[loadID]
	if len(series) >= len(n.timestamps) {
		return fmt.Errorf("add snapshot for load %d at position %d: %w", loadID, len(series), ErrSnapshotOverflow)
	}
	n.loadSnapshots[loadID] = append(series, value)
	return nil
}

// LoadSnapshotOf returns the real power of a load at a timestamp position, or
// consts.NoneReal when the series does not cover it.
func (n *PowerGrid) LoadSnapshotOf(loadID, position int) float64 {
	assert.Usage(n.HasLoad(loadID), "load %d does not exist", loadID)
	n.mustPosition(position)
	return seriesValue(n.loadSnapshots, loadID, position)
}

// LoadSnapshotOfTimestamp resolves ts with PositionOf first.
func (n *PowerGrid) LoadSnapshotOfTimestamp(loadID int, ts string) float64 {
	pos := n.PositionOf(ts)
	if pos == consts.None {
		assert.Usage(n.HasLoad(loadID), "load %d does not exist", loadID)
		return consts.NoneReal
	}
	return n.LoadSnapshotOf(loadID, pos)
}

// LoadSnapshotsAt returns the values of every load at a bus for position, in
// the order of LoadIDsAt.
func (n *PowerGrid) LoadSnapshotsAt(vertexID, position int) []float64 {
	n.mustPosition(position)
	var out []float64
	for id := range n.loadsAt(vertexID) {
		out = append(out, seriesValue(n.loadSnapshots, id, position))
	}
	return out
}

func seriesValue(series [][]float64, id, position int) float64 {
	if id >= len(series) || position >= len(series[id]) {
		return consts.NoneReal
	}
	return series[id][position]
}

func seriesOf(series [][]float64, id int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if id >= len(series) {
			return
		}
		for pos, v := range series[id] {
			if !yield(pos, v) {
				return
			}
		}
	}
}
