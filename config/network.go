package config

import (
	"fmt"

	"github.com/kilianp07/gridmodel/core/model"
)

// NetworkConfig selects the case to load and how to interpret it.
type NetworkConfig struct {
	// Name overrides the name found in the case file when set.
	Name string `json:"name"`
	// Case is the path of the YAML case description.
	Case    string  `json:"case"`
	BaseMVA float64 `json:"base_mva"`
	// GeneratorBound and LoadBound override the policies of the case file.
	GeneratorBound string `json:"generator_bound"`
	LoadBound      string `json:"load_bound"`
	Carrier        string `json:"carrier"`
}

// SetDefaults applies sane defaults.
func (c *NetworkConfig) SetDefaults() {
	if c.Carrier == "" {
		c.Carrier = "ac"
	}
}

// Validate checks the policy and carrier names.
func (c NetworkConfig) Validate() error {
	if c.BaseMVA < 0 {
		return fmt.Errorf("base_mva must not be negative")
	}
	if _, err := model.ParseBoundType(c.GeneratorBound); err != nil {
		return fmt.Errorf("generator_bound: %w", err)
	}
	if _, err := model.ParseBoundType(c.LoadBound); err != nil {
		return fmt.Errorf("load_bound: %w", err)
	}
	if _, err := model.ParseCarrier(c.Carrier); err != nil {
		return err
	}
	return nil
}

// Policies returns the parsed bound overrides. Empty names give BoundUnknown,
// which callers treat as "keep the case file value".
func (c NetworkConfig) Policies() (gen, load model.BoundType) {
	gen, _ = model.ParseBoundType(c.GeneratorBound)
	load, _ = model.ParseBoundType(c.LoadBound)
	return gen, load
}

// ParsedCarrier returns the configured conductance strategy.
func (c NetworkConfig) ParsedCarrier() model.Carrier {
	carrier, _ := model.ParseCarrier(c.Carrier)
	return carrier
}
