package config

import (
	"github.com/kilianp07/gridmodel/pkg/export"
)

// ExportConfig selects the output of the export command.
type ExportConfig struct {
	Format string `json:"format"`
	Dir    string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = string(export.FormatCSV)
	}
	if c.Dir == "" {
		c.Dir = "out"
	}
}

// Validate checks the format name.
func (c ExportConfig) Validate() error {
	_, err := export.ParseFormat(c.Format)
	return err
}
