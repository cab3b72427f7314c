package model

import (
	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
)

// LoadProperties describes one consumer attached to a bus.
type LoadProperties struct {
	Name string
	Type LoadType

	RealPowerLoad          float64
	RealPowerLoadBound     bound.Bound[float64]
	ReactivePowerLoad      float64
	ReactivePowerLoadBound bound.Bound[float64]
}

// NewLoadProperties returns a load with non-negative, unlimited bounds.
func NewLoadProperties() LoadProperties {
	return LoadProperties{
		RealPowerLoadBound:     bound.Must(0, consts.Infinity),
		ReactivePowerLoadBound: bound.Must(0, consts.Infinity),
	}
}

// Reset restores the defaults of NewLoadProperties.
func (l *LoadProperties) Reset() { *l = NewLoadProperties() }

// Equal reports field-wise equality.
func (l LoadProperties) Equal(o LoadProperties) bool { return l == o }

// Header returns the column names matching Line.
func (LoadProperties) Header() []string {
	return []string{"name", "type", "p", "p_min", "p_max", "q", "q_min", "q_max"}
}

// Line renders the load as one table row.
func (l LoadProperties) Line() []string {
	return []string{
		l.Name, l.Type.String(),
		formatReal(l.RealPowerLoad), formatReal(l.RealPowerLoadBound.Minimum()), formatReal(l.RealPowerLoadBound.Maximum()),
		formatReal(l.ReactivePowerLoad), formatReal(l.ReactivePowerLoadBound.Minimum()), formatReal(l.ReactivePowerLoadBound.Maximum()),
	}
}
