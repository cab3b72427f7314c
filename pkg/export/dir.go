package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/gridmodel/core/powergrid"
)

// Format selects the output of WriteDir.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat accepts csv or geojson in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatGeoJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

type writer func(io.Writer, *powergrid.PowerGrid) error

type output struct {
	name  string
	write writer
}

// WriteDir writes grid into dir, creating it when missing, and returns the
// paths written. CSV produces one file per table, GeoJSON a single
// <name>.geojson file.
func WriteDir(dir string, f Format, grid *powergrid.PowerGrid) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var files []output
	switch f {
	case FormatCSV:
		files = []output{
			{"buses.csv", WriteBusesCSV},
			{"branches.csv", WriteBranchesCSV},
			{"generators.csv", WriteGeneratorsCSV},
			{"loads.csv", WriteLoadsCSV},
			{"generators-p_max_pu.csv", WriteGeneratorSnapshotsCSV},
			{"loads-p_set.csv", WriteLoadSnapshotsCSV},
		}
	case FormatGeoJSON:
		name := grid.Name()
		if name == "" {
			name = "grid"
		}
		files = []output{{name + ".geojson", WriteGeoJSON}}
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if err := writeFile(path, grid, file.write); err != nil {
			return paths, fmt.Errorf("write %s: %w", file.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, grid *powergrid.PowerGrid, write writer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, grid)
}
