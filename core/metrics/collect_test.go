package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
)

func sampleGrid(t *testing.T) *powergrid.PowerGrid {
	t.Helper()
	n := powergrid.New("sample")
	a := model.NewVertexProperties()
	a.Name = "a"
	b := model.NewVertexProperties()
	b.Name = "b"
	va := n.AddVertex(a)
	vb := n.AddVertex(b)
	_, err := n.AddEdge(va, vb, model.NewEdgeProperties())
	require.NoError(t, err)

	g := model.NewGeneratorProperties()
	g.Name = "g"
	g.RealPowerBound = bound.Must(0.0, 2.0)
	gid, err := n.AddGeneratorAt(va, g)
	require.NoError(t, err)
	l := model.NewLoadProperties()
	l.Name = "l"
	l.RealPowerLoadBound = bound.Must(0.0, 1.0)
	lid, err := n.AddLoadAt(vb, l)
	require.NoError(t, err)

	require.NoError(t, n.AddSnapshotTimestamp("2024-05-01 00:00"))
	require.NoError(t, n.AddSnapshotTimestamp("peak"))
	require.NoError(t, n.AddGeneratorRealPowerSnapshotAt(gid, 1.2))
	require.NoError(t, n.AddLoadSnapshotAt(lid, 0.4))
	require.NoError(t, n.AddLoadSnapshotAt(lid, 0.9))
	n.MakeBounded()
	return n
}

func TestCollectNetworkStats(t *testing.T) {
	n := sampleGrid(t)
	now := time.Unix(100, 0)
	s := CollectNetworkStats(n, now)
	assert.Equal(t, "sample", s.Network)
	assert.Equal(t, n.ID().String(), s.ID)
	assert.Equal(t, 2, s.Vertices)
	assert.Equal(t, 1, s.Islands)
	assert.Equal(t, "bounded", s.BoundType)
	assert.Equal(t, now, s.Time)
}

func TestCollectSnapshots(t *testing.T) {
	pts := CollectSnapshots(sampleGrid(t))
	require.Len(t, pts, 3)
	assert.Equal(t, KindGenerator, pts[0].Kind)
	assert.Equal(t, "a", pts[0].Bus)
	assert.Equal(t, 1.2, pts[0].Value)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), pts[0].Time)
	assert.Equal(t, KindLoad, pts[2].Kind)
	assert.Equal(t, "peak", pts[2].Timestamp)
	assert.True(t, pts[2].Time.IsZero())
}

func TestCollectBusBounds(t *testing.T) {
	bounds := CollectBusBounds(sampleGrid(t), 0)
	require.Len(t, bounds, 2)
	assert.Equal(t, 2.0, bounds[0].GenerationMax)
	assert.Equal(t, 0.0, bounds[1].GenerationMax)
	assert.Equal(t, 1.0, bounds[1].LoadMax)
}
