package metrics

import (
	"time"

	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
	"github.com/kilianp07/gridmodel/core/traverse"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp interprets a snapshot label as a date. It returns the zero
// time when no known layout matches.
func ParseTimestamp(label string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CollectNetworkStats summarises grid at now.
func CollectNetworkStats(grid *powergrid.PowerGrid, now time.Time) NetworkStats {
	s := grid.Stats()
	return NetworkStats{
		Network:               grid.Name(),
		ID:                    grid.ID().String(),
		Vertices:              s.Vertices,
		Edges:                 s.Edges,
		Generators:            s.Generators,
		Loads:                 s.Loads,
		VerticesWithGenerator: s.VerticesWithGenerator,
		VerticesWithLoad:      s.VerticesWithLoad,
		Timestamps:            s.Timestamps,
		Islands:               s.Islands,
		BoundType:             grid.NetworkBoundType().String(),
		Time:                  now,
	}
}

// CollectSnapshots flattens every generator and load series of grid.
func CollectSnapshots(grid *powergrid.PowerGrid) []SnapshotPoint {
	var out []SnapshotPoint
	point := func(kind SnapshotKind, id int, name string, bus string) traverse.Visitor[int, float64] {
		return func(pos int, v float64) bool {
			ts := grid.TimestampAt(pos)
			out = append(out, SnapshotPoint{
				Network:   grid.Name(),
				Kind:      kind,
				ID:        id,
				Name:      name,
				Bus:       bus,
				Position:  pos,
				Timestamp: ts,
				Time:      ParseTimestamp(ts),
				Value:     v,
			})
			return true
		}
	}
	grid.ForAllVertexIDsWithGenerator(traverse.Sequential, func(vid int, v *model.VertexProperties) bool {
		grid.ForAllGeneratorsAt(vid, traverse.Sequential, func(gid int, g *model.GeneratorProperties) bool {
			grid.ForAllRealPowerGeneratorSnapshots(gid, traverse.Sequential, point(KindGenerator, gid, g.Name, v.Name))
			return true
		})
		return true
	})
	grid.ForAllVertexIDsWithLoad(traverse.Sequential, func(vid int, v *model.VertexProperties) bool {
		grid.ForAllLoadsAt(vid, traverse.Sequential, func(lid int, l *model.LoadProperties) bool {
			grid.ForAllLoadSnapshots(lid, traverse.Sequential, point(KindLoad, lid, l.Name, v.Name))
			return true
		})
		return true
	})
	return out
}

// CollectBusBounds derives the generation and load bounds of every bus at
// position under the current bound policies.
func CollectBusBounds(grid *powergrid.PowerGrid, position int) []BusBound {
	var out []BusBound
	grid.ForAllVertices(traverse.Sequential, func(id int, v *model.VertexProperties) bool {
		gen := grid.TotalRealPowerGenerationBoundAt(id, position)
		load := grid.TotalRealPowerLoadBoundAt(id, position)
		out = append(out, BusBound{
			Network:       grid.Name(),
			VertexID:      id,
			Bus:           v.Name,
			Position:      position,
			GenerationMin: gen.Minimum(),
			GenerationMax: gen.Maximum(),
			LoadMin:       load.Minimum(),
			LoadMax:       load.Maximum(),
		})
		return true
	})
	return out
}
