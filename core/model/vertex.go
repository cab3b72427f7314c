package model

import (
	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
)

// VertexProperties holds the attributes of a bus.
type VertexProperties struct {
	Name string
	Type VertexType
	X    float64 // longitude or drawing coordinate
	Y    float64 // latitude or drawing coordinate

	ShuntSusceptance float64
	ShuntConductance float64

	NominalVoltage   float64 // kV
	VoltageAngle     float64 // snapshot angle in radians
	VoltageMagnitude float64 // snapshot magnitude in per unit
	VoltageBound     bound.Bound[float64]

	Country string
	Area    int
	Zone    int

	Control ControlType
	Carrier EnergyCarrier
	Status  Status
}

// NewVertexProperties returns an active AC PQ bus at flat voltage.
func NewVertexProperties() VertexProperties {
	return VertexProperties{
		VoltageMagnitude: 1,
		VoltageBound:     bound.Must(0, consts.Infinity),
		Control:          ControlPQ,
		Carrier:          EnergyAC,
		Status:           StatusActive,
	}
}

// Reset restores the defaults of NewVertexProperties.
func (v *VertexProperties) Reset() { *v = NewVertexProperties() }

// IsActive reports whether the bus is in service.
func (v VertexProperties) IsActive() bool { return v.Status == StatusActive }

// Equal reports field-wise equality.
func (v VertexProperties) Equal(o VertexProperties) bool { return v == o }

// Header returns the column names matching Line.
func (VertexProperties) Header() []string {
	return []string{
		"name", "type", "x", "y", "bs", "gs",
		"v_nom", "v_ang", "v_mag", "v_min", "v_max",
		"country", "area", "zone", "control", "carrier", "status",
	}
}

// Line renders the bus as one table row.
func (v VertexProperties) Line() []string {
	return []string{
		v.Name, v.Type.String(), formatReal(v.X), formatReal(v.Y),
		formatReal(v.ShuntSusceptance), formatReal(v.ShuntConductance),
		formatReal(v.NominalVoltage), formatReal(v.VoltageAngle), formatReal(v.VoltageMagnitude),
		formatReal(v.VoltageBound.Minimum()), formatReal(v.VoltageBound.Maximum()),
		v.Country, formatInt(v.Area), formatInt(v.Zone),
		v.Control.String(), v.Carrier.String(), v.Status.String(),
	}
}
