package export

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
	"github.com/kilianp07/gridmodel/core/traverse"
)

// GeoJSON builds a feature collection with buses as Point features at (X, Y)
// and branches as LineString features between their endpoints. Infinite
// voltage limits and ratings are omitted from the properties.
func GeoJSON(grid *powergrid.PowerGrid) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{"name": grid.Name()}

	points := map[int]orb.Point{}
	grid.ForAllVertices(traverse.Sequential, func(id int, v *model.VertexProperties) bool {
		points[id] = orb.Point{v.X, v.Y}
		f := geojson.NewFeature(points[id])
		f.Properties = geojson.Properties{
			"id":         id,
			"name":       v.Name,
			"kind":       "bus",
			"type":       v.Type.String(),
			"v_nom":      v.NominalVoltage,
			"status":     v.Status.String(),
			"generators": len(grid.GeneratorIDsAt(id)),
			"loads":      len(grid.LoadIDsAt(id)),
		}
		putFinite(f.Properties, "v_min", v.VoltageBound.Minimum())
		putFinite(f.Properties, "v_max", v.VoltageBound.Maximum())
		fc.Append(f)
		return true
	})
	grid.ForAllEdges(traverse.Sequential, func(id int, e *powergrid.Edge) bool {
		f := geojson.NewFeature(orb.LineString{points[e.Source()], points[e.Target()]})
		f.Properties = geojson.Properties{
			"id":     id,
			"name":   e.Properties.Name,
			"kind":   "branch",
			"type":   e.Properties.Type.String(),
			"source": e.Source(),
			"target": e.Target(),
			"active": e.Properties.IsActive(),
			"r":      e.Properties.Resistance,
			"x":      e.Properties.Reactance,
		}
		putFinite(f.Properties, "rate_a", e.Properties.ThermalLimitA)
		fc.Append(f)
		return true
	})
	return fc
}

// WriteGeoJSON encodes GeoJSON(grid) as indented JSON.
func WriteGeoJSON(w io.Writer, grid *powergrid.PowerGrid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GeoJSON(grid))
}

func putFinite(props geojson.Properties, key string, v float64) {
	if formatValue(v) != "" {
		props[key] = v
	}
}
