package powergrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/traverse"
)

func TestTimestamps(t *testing.T) {
	n := New("t")
	assert.ErrorIs(t, n.AddSnapshotTimestamp(""), ErrEmptyTimestamp)
	require.NoError(t, n.AddSnapshotTimestamp("2024-01-01 00:00"))
	require.NoError(t, n.AddSnapshotTimestamp("2024-01-01 01:00"))
	require.NoError(t, n.AddSnapshotTimestamp("2024-01-01 00:00"))

	assert.Equal(t, 3, n.NumberOfTimestamps())
	assert.Equal(t, 1, n.PositionOf("2024-01-01 01:00"))
	assert.Equal(t, 0, n.PositionOf("2024-01-01 00:00"))
	assert.Equal(t, consts.None, n.PositionOf("missing"))
	assert.Equal(t, "2024-01-01 01:00", n.TimestampAt(1))
	assert.Panics(t, func() { n.TimestampAt(3) })
}

func TestWeighting(t *testing.T) {
	n := New("t")
	n.AddSnapshotWeighting(0.5)
	assert.Equal(t, 0.5, n.WeightingAt(0))
	assert.Equal(t, consts.NoneReal, n.WeightingAt(1))
	assert.Panics(t, func() { n.WeightingAt(-1) })
}

func TestGeneratorSnapshots(t *testing.T) {
	n := New("t")
	v := n.AddVertex(bus("a"))
	g0, _ := n.AddGeneratorAt(v, generator("g0", 0, 1))
	g1, _ := n.AddGeneratorAt(v, generator("g1", 0, 1))
	require.NoError(t, n.AddSnapshotTimestamp("t0"))

	require.NoError(t, n.AddGeneratorRealPowerSnapshotAt(g1, 0.7))
	assert.ErrorIs(t, n.AddGeneratorRealPowerSnapshotAt(g1, 0.8), ErrSnapshotOverflow)
	assert.ErrorIs(t, n.AddGeneratorRealPowerSnapshotAt(9, 0.8), ErrGeneratorNotFound)

	assert.Equal(t, 0.7, n.GeneratorRealPowerSnapshotAt(g1, 0))
	assert.Equal(t, 0.7, n.GeneratorRealPowerSnapshotAtTimestamp(g1, "t0"))
	assert.Equal(t, consts.NoneReal, n.GeneratorRealPowerSnapshotAt(g0, 0))
	assert.Equal(t, consts.NoneReal, n.GeneratorRealPowerSnapshotAtTimestamp(g1, "t9"))
	assert.Equal(t, []float64{consts.NoneReal, 0.7}, n.GeneratorRealPowerSnapshotsAt(0))

	require.NoError(t, n.RemoveGeneratorAt(v, g1))
	assert.Equal(t, []float64{consts.NoneReal, consts.NoneReal}, n.GeneratorRealPowerSnapshotsAt(0))
}

func TestLoadSnapshots(t *testing.T) {
	n := New("t")
	v := n.AddVertex(bus("a"))
	l, _ := n.AddLoadAt(v, load("l", 0, 1))
	for _, ts := range []string{"t0", "t1", "t2"} {
		require.NoError(t, n.AddSnapshotTimestamp(ts))
	}
	for _, val := range []float64{0.1, 0.2, 0.3} {
		require.NoError(t, n.AddLoadSnapshotAt(l, val))
	}

	assert.Equal(t, 0.2, n.LoadSnapshotOf(l, 1))
	assert.Equal(t, 0.3, n.LoadSnapshotOfTimestamp(l, "t2"))
	assert.Equal(t, []float64{0.3}, n.LoadSnapshotsAt(v, 2))

	var got []float64
	n.ForAllLoadSnapshots(l, traverse.Breakable, func(pos int, val float64) bool {
		got = append(got, val)
		return pos < 1
	})
	assert.Equal(t, []float64{0.1, 0.2}, got)
}
