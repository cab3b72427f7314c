package model

import (
	"fmt"
	"math"

	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
)

// ElectricalComputationError reports a branch whose impedance makes the
// requested admittance undefined.
type ElectricalComputationError struct {
	Carrier    Carrier
	Branch     string
	Resistance float64
	Reactance  float64
}

func (e *ElectricalComputationError) Error() string {
	return fmt.Sprintf("%s admittance of branch %q undefined for r=%g x=%g", e.Carrier, e.Branch, e.Resistance, e.Reactance)
}

// EdgeProperties holds the electrical and expansion attributes of a branch.
// Values are in per unit unless stated otherwise.
type EdgeProperties struct {
	Name   string
	Status bool // true when the branch is switched on
	Type   EdgeType

	// ThetaBound limits the voltage angle difference across the branch.
	ThetaBound bound.Bound[float64]

	Resistance float64
	Reactance  float64
	// Conductance and Susceptance are the stored series values returned by
	// the as-given carrier.
	Conductance float64
	Susceptance float64
	// Charge is the total line charging susceptance.
	Charge float64

	ThermalLimitA float64 // long term rating
	ThermalLimitB float64 // short term rating
	ThermalLimitC float64 // emergency rating

	tapRatio              float64
	angleShift            float64
	tapRatioCosThetaShift float64
	tapRatioSinThetaShift float64

	CapitalCost                    float64
	Length                         float64 // km
	NumberOfParallelLines          int
	NominalApparentPower           float64 // MVA
	NominalVoltage                 float64 // kV
	NominalApparentPowerBound      bound.Bound[float64]
	NominalApparentPowerExtendable bool
	TerrainFactor                  float64
}

// NewEdgeProperties returns a switched-on standard branch without transformer.
func NewEdgeProperties() EdgeProperties {
	e := EdgeProperties{
		Status:                    true,
		Type:                      EdgeStandard,
		ThetaBound:                bound.Must(-consts.Infinity, consts.Infinity),
		NumberOfParallelLines:     1,
		NominalApparentPowerBound: bound.Must(0, consts.Infinity),
		TerrainFactor:             1,
	}
	e.SetTapRatio(1)
	return e
}

// Reset restores the defaults of NewEdgeProperties.
func (e *EdgeProperties) Reset() { *e = NewEdgeProperties() }

// TapRatio returns the transformer off-nominal turns ratio.
func (e EdgeProperties) TapRatio() float64 { return e.tapRatio }

// AngleShift returns the transformer phase shift in radians.
func (e EdgeProperties) AngleShift() float64 { return e.angleShift }

// TapRatioCosThetaShift returns TapRatio * cos(AngleShift).
func (e EdgeProperties) TapRatioCosThetaShift() float64 { return e.tapRatioCosThetaShift }

// TapRatioSinThetaShift returns TapRatio * sin(AngleShift).
func (e EdgeProperties) TapRatioSinThetaShift() float64 { return e.tapRatioSinThetaShift }

// SetTapRatio sets the turns ratio and refreshes the precomputed products.
func (e *EdgeProperties) SetTapRatio(ratio float64) {
	e.tapRatio = ratio
	e.refreshTap()
}

// SetAngleShift sets the phase shift and refreshes the precomputed products.
func (e *EdgeProperties) SetAngleShift(shift float64) {
	e.angleShift = shift
	e.refreshTap()
}

func (e *EdgeProperties) refreshTap() {
	e.tapRatioCosThetaShift = e.tapRatio * math.Cos(e.angleShift)
	e.tapRatioSinThetaShift = e.tapRatio * math.Sin(e.angleShift)
}

// ThermalLimit returns the long term rating.
func (e EdgeProperties) ThermalLimit() float64 { return e.ThermalLimitA }

// IsActive reports whether the branch is switched on.
func (e EdgeProperties) IsActive() bool { return e.Status }

// ConductanceFor returns the series conductance under carrier c.
func (e EdgeProperties) ConductanceFor(c Carrier) (float64, error) {
	g, _, err := e.Admittance(c)
	return g, err
}

// SusceptanceFor returns the series susceptance under carrier c.
func (e EdgeProperties) SusceptanceFor(c Carrier) (float64, error) {
	_, b, err := e.Admittance(c)
	return b, err
}

// Admittance returns the series conductance and susceptance under carrier c.
//
//	AC:      g = r/(r²+x²), b = -x/(r²+x²); r = x = 0 is an error
//	DC:      g = 0,         b = -1/x;       x = 0 is an error
//	AsGiven: the stored Conductance and Susceptance
func (e EdgeProperties) Admittance(c Carrier) (g, b float64, err error) {
	r, x := e.Resistance, e.Reactance
	switch c {
	case CarrierAC:
		if r == 0 && x == 0 {
			return 0, 0, e.computationError(c)
		}
		den := r*r + x*x
		return r / den, -x / den, nil
	case CarrierDC:
		if x == 0 {
			return 0, 0, e.computationError(c)
		}
		return 0, -1 / x, nil
	case CarrierAsGiven:
		return e.Conductance, e.Susceptance, nil
	}
	return 0, 0, fmt.Errorf("unsupported carrier %v", c)
}

func (e EdgeProperties) computationError(c Carrier) error {
	return &ElectricalComputationError{Carrier: c, Branch: e.Name, Resistance: e.Resistance, Reactance: e.Reactance}
}

// Equal reports field-wise equality.
func (e EdgeProperties) Equal(o EdgeProperties) bool { return e == o }

// Header returns the column names matching Line.
func (EdgeProperties) Header() []string {
	return []string{
		"name", "status", "type", "theta_min", "theta_max",
		"r", "x", "g", "b", "charge",
		"rate_a", "rate_b", "rate_c", "tap_ratio", "angle_shift",
		"capital_cost", "length", "num_parallel", "s_nom", "v_nom",
		"s_nom_min", "s_nom_max", "s_nom_extendable", "terrain_factor",
	}
}

// Line renders the branch as one table row.
func (e EdgeProperties) Line() []string {
	return []string{
		e.Name, formatBool(e.Status), e.Type.String(),
		formatReal(e.ThetaBound.Minimum()), formatReal(e.ThetaBound.Maximum()),
		formatReal(e.Resistance), formatReal(e.Reactance),
		formatReal(e.Conductance), formatReal(e.Susceptance), formatReal(e.Charge),
		formatReal(e.ThermalLimitA), formatReal(e.ThermalLimitB), formatReal(e.ThermalLimitC),
		formatReal(e.tapRatio), formatReal(e.angleShift),
		formatReal(e.CapitalCost), formatReal(e.Length), formatInt(e.NumberOfParallelLines),
		formatReal(e.NominalApparentPower), formatReal(e.NominalVoltage),
		formatReal(e.NominalApparentPowerBound.Minimum()), formatReal(e.NominalApparentPowerBound.Maximum()),
		formatBool(e.NominalApparentPowerExtendable), formatReal(e.TerrainFactor),
	}
}
