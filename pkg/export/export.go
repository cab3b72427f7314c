// Package export renders a power grid as CSV tables or a GeoJSON document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
	"github.com/kilianp07/gridmodel/core/traverse"
)

func writeTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteBusesCSV writes one row per live bus, prefixed with its identifier.
func WriteBusesCSV(w io.Writer, grid *powergrid.PowerGrid) error {
	var rows [][]string
	grid.ForAllVertices(traverse.Sequential, func(id int, v *model.VertexProperties) bool {
		rows = append(rows, append([]string{strconv.Itoa(id)}, v.Line()...))
		return true
	})
	return writeTable(w, append([]string{"id"}, model.VertexProperties{}.Header()...), rows)
}

// WriteBranchesCSV writes one row per live branch with its endpoints.
func WriteBranchesCSV(w io.Writer, grid *powergrid.PowerGrid) error {
	var rows [][]string
	grid.ForAllEdges(traverse.Sequential, func(id int, e *powergrid.Edge) bool {
		lead := []string{strconv.Itoa(id), strconv.Itoa(e.Source()), strconv.Itoa(e.Target())}
		rows = append(rows, append(lead, e.Properties.Line()...))
		return true
	})
	return writeTable(w, append([]string{"id", "source", "target"}, model.EdgeProperties{}.Header()...), rows)
}

// WriteGeneratorsCSV writes one row per live generator with its bus.
func WriteGeneratorsCSV(w io.Writer, grid *powergrid.PowerGrid) error {
	bus := generatorBuses(grid)
	var rows [][]string
	grid.ForAllGenerators(traverse.Sequential, func(id int, g *model.GeneratorProperties) bool {
		rows = append(rows, append([]string{strconv.Itoa(id), strconv.Itoa(bus[id])}, g.Line()...))
		return true
	})
	return writeTable(w, append([]string{"id", "bus"}, model.GeneratorProperties{}.Header()...), rows)
}

// WriteLoadsCSV writes one row per live load with its bus.
func WriteLoadsCSV(w io.Writer, grid *powergrid.PowerGrid) error {
	bus := loadBuses(grid)
	var rows [][]string
	grid.ForAllLoads(traverse.Sequential, func(id int, l *model.LoadProperties) bool {
		rows = append(rows, append([]string{strconv.Itoa(id), strconv.Itoa(bus[id])}, l.Line()...))
		return true
	})
	return writeTable(w, append([]string{"id", "bus"}, model.LoadProperties{}.Header()...), rows)
}

// WriteGeneratorSnapshotsCSV writes the real power series as a wide table:
// one row per timestamp and one column per live generator. Missing values
// are left empty.
func WriteGeneratorSnapshotsCSV(w io.Writer, grid *powergrid.PowerGrid) error {
	var ids []int
	header := []string{"timestamp"}
	grid.ForAllGenerators(traverse.Sequential, func(id int, g *model.GeneratorProperties) bool {
		ids = append(ids, id)
		header = append(header, columnName("gen", id, g.Name))
		return true
	})
	return writeSeries(w, grid, header, ids, grid.GeneratorRealPowerSnapshotAt)
}

// WriteLoadSnapshotsCSV writes the load series in the same layout as
// WriteGeneratorSnapshotsCSV.
func WriteLoadSnapshotsCSV(w io.Writer, grid *powergrid.PowerGrid) error {
	var ids []int
	header := []string{"timestamp"}
	grid.ForAllLoads(traverse.Sequential, func(id int, l *model.LoadProperties) bool {
		ids = append(ids, id)
		header = append(header, columnName("load", id, l.Name))
		return true
	})
	return writeSeries(w, grid, header, ids, grid.LoadSnapshotOf)
}

func writeSeries(w io.Writer, grid *powergrid.PowerGrid, header []string, ids []int, value func(id, position int) float64) error {
	rows := make([][]string, 0, grid.NumberOfTimestamps())
	for pos, ts := range grid.Timestamps() {
		row := make([]string, 0, len(ids)+1)
		row = append(row, ts)
		for _, id := range ids {
			row = append(row, formatValue(value(id, pos)))
		}
		rows = append(rows, row)
	}
	return writeTable(w, header, rows)
}

func columnName(prefix string, id int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s%d", prefix, id)
	}
	return name
}

func formatValue(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func generatorBuses(grid *powergrid.PowerGrid) map[int]int {
	out := map[int]int{}
	grid.ForAllVertexIDsWithGenerator(traverse.Sequential, func(vid int, _ *model.VertexProperties) bool {
		for _, id := range grid.GeneratorIDsAt(vid) {
			out[id] = vid
		}
		return true
	})
	return out
}

func loadBuses(grid *powergrid.PowerGrid) map[int]int {
	out := map[int]int{}
	grid.ForAllVertexIDsWithLoad(traverse.Sequential, func(vid int, _ *model.VertexProperties) bool {
		for _, id := range grid.LoadIDsAt(vid) {
			out[id] = vid
		}
		return true
	})
	return out
}
