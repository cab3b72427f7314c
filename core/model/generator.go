package model

import (
	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
)

// GeneratorProperties describes one generating unit attached to a bus.
type GeneratorProperties struct {
	Name    string
	Type    GeneratorType
	Control ControlType
	X       float64
	Y       float64

	VoltageMagnitude float64
	NominalPower     float64 // MVA
	PowerSign        float64 // +1 for generation, -1 for consumption

	RealPower          float64
	RealPowerBound     bound.Bound[float64]
	ReactivePower      float64
	ReactivePowerBound bound.Bound[float64]

	NominalRealPowerBound bound.Bound[float64]
	Extendable            bool
	Committable           bool

	MarginalCost    float64
	CapitalCost     float64
	StartUpCost     float64
	ShutDownCost    float64
	MinimumUpTime   float64
	MinimumDownTime float64
	RampLimitUp     float64
	RampLimitDown   float64
	Efficiency      float64

	Status Status
}

// NewGeneratorProperties returns an active, unconstrained generator.
func NewGeneratorProperties() GeneratorProperties {
	return GeneratorProperties{
		Control:               ControlPQ,
		VoltageMagnitude:      1,
		PowerSign:             1,
		RealPowerBound:        bound.Must(0, consts.Infinity),
		ReactivePowerBound:    bound.Must(-consts.Infinity, consts.Infinity),
		NominalRealPowerBound: bound.Must(0, consts.Infinity),
		RampLimitUp:           consts.Infinity,
		RampLimitDown:         consts.Infinity,
		Efficiency:            1,
		Status:                StatusActive,
	}
}

// Reset restores the defaults of NewGeneratorProperties.
func (g *GeneratorProperties) Reset() { *g = NewGeneratorProperties() }

// IsActive reports whether the generator is in service.
func (g GeneratorProperties) IsActive() bool { return g.Status == StatusActive }

// Equal reports field-wise equality.
func (g GeneratorProperties) Equal(o GeneratorProperties) bool { return g == o }

// Header returns the column names matching Line.
func (GeneratorProperties) Header() []string {
	return []string{
		"name", "type", "control", "x", "y", "v_mag", "p_nom", "sign",
		"p", "p_min", "p_max", "q", "q_min", "q_max",
		"p_nom_min", "p_nom_max", "extendable", "committable",
		"marginal_cost", "capital_cost", "start_up_cost", "shut_down_cost",
		"min_up_time", "min_down_time", "ramp_limit_up", "ramp_limit_down",
		"efficiency", "status",
	}
}

// Line renders the generator as one table row.
func (g GeneratorProperties) Line() []string {
	return []string{
		g.Name, g.Type.String(), g.Control.String(), formatReal(g.X), formatReal(g.Y),
		formatReal(g.VoltageMagnitude), formatReal(g.NominalPower), formatReal(g.PowerSign),
		formatReal(g.RealPower), formatReal(g.RealPowerBound.Minimum()), formatReal(g.RealPowerBound.Maximum()),
		formatReal(g.ReactivePower), formatReal(g.ReactivePowerBound.Minimum()), formatReal(g.ReactivePowerBound.Maximum()),
		formatReal(g.NominalRealPowerBound.Minimum()), formatReal(g.NominalRealPowerBound.Maximum()),
		formatBool(g.Extendable), formatBool(g.Committable),
		formatReal(g.MarginalCost), formatReal(g.CapitalCost), formatReal(g.StartUpCost), formatReal(g.ShutDownCost),
		formatReal(g.MinimumUpTime), formatReal(g.MinimumDownTime), formatReal(g.RampLimitUp), formatReal(g.RampLimitDown),
		formatReal(g.Efficiency), g.Status.String(),
	}
}
