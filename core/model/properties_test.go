package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/core/bound"
)

func TestVertexDefaultsAndReset(t *testing.T) {
	v := NewVertexProperties()
	assert.True(t, v.IsActive())
	assert.Equal(t, ControlPQ, v.Control)
	assert.Equal(t, EnergyAC, v.Carrier)

	v.Name = "bus 1"
	v.Status = StatusInactive
	assert.False(t, v.IsActive())
	assert.False(t, v.Equal(NewVertexProperties()))

	v.Reset()
	assert.True(t, v.Equal(NewVertexProperties()))
	assert.Len(t, v.Line(), len(v.Header()))
}

func TestGeneratorEquality(t *testing.T) {
	a := NewGeneratorProperties()
	a.Name = "g1"
	a.RealPowerBound = bound.Must(0.0, 50.0)
	b := a
	assert.True(t, a.Equal(b))
	assert.True(t, a == b)

	b.RealPowerBound = bound.Must(0.0, 51.0)
	assert.False(t, a.Equal(b))
	assert.Len(t, a.Line(), len(a.Header()))
}

func TestLoadDefaults(t *testing.T) {
	l := NewLoadProperties()
	assert.Equal(t, 0.0, l.RealPowerLoadBound.Minimum())
	assert.Len(t, l.Line(), len(l.Header()))
	l.Name = "x"
	l.Reset()
	assert.Equal(t, NewLoadProperties(), l)
}

func TestParseBoundType(t *testing.T) {
	for _, bt := range []BoundType{BoundUnknown, BoundExact, BoundBounded, BoundUnbounded, BoundPureUnbounded} {
		got, err := ParseBoundType(bt.String())
		require.NoError(t, err)
		assert.Equal(t, bt, got)
	}
	_, err := ParseBoundType("loose")
	assert.Error(t, err)
}

func TestParseCarrier(t *testing.T) {
	for _, c := range []Carrier{CarrierAC, CarrierDC, CarrierAsGiven} {
		got, err := ParseCarrier(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCarrier("hvdc")
	assert.Error(t, err)
}

func TestEnumNames(t *testing.T) {
	gt, err := ParseGeneratorType("Wind")
	require.NoError(t, err)
	assert.Equal(t, GeneratorWind, gt)
	assert.Equal(t, "wind", GeneratorWind.String())
	assert.Equal(t, "unknown", GeneratorType(99).String())

	vt, err := ParseVertexType("slack")
	require.NoError(t, err)
	assert.Equal(t, VertexSlack, vt)
	ct, err := ParseControlType("pv")
	require.NoError(t, err)
	assert.Equal(t, ControlPV, ct)
	st, err := ParseStatus("off")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, st)
	et, err := ParseEdgeType("switched")
	require.NoError(t, err)
	assert.Equal(t, EdgeSwitched, et)
	lt, err := ParseLoadType("industrial")
	require.NoError(t, err)
	assert.Equal(t, LoadIndustrial, lt)
	ec, err := ParseEnergyCarrier("DC")
	require.NoError(t, err)
	assert.Equal(t, EnergyDC, ec)
}

func TestEnumRoundTripThroughString(t *testing.T) {
	for _, v := range []VertexType{VertexUnknown, VertexLoad, VertexGenerator, VertexSlack, VertexIsolated} {
		got, err := ParseVertexType(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, c := range []ControlType{ControlUnknown, ControlPQ, ControlPV, ControlSlack} {
		got, err := ParseControlType(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	for _, st := range []Status{StatusActive, StatusInactive, StatusUnknown} {
		got, err := ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	for _, e := range []EdgeType{EdgeStandard, EdgeSwitched, EdgeControllable, EdgeUnknown} {
		got, err := ParseEdgeType(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	for i := range generatorTypeNames {
		got, err := ParseGeneratorType(GeneratorType(i).String())
		require.NoError(t, err)
		assert.Equal(t, GeneratorType(i), got)
	}
	for _, l := range []LoadType{LoadUnknown, LoadResidential, LoadCommercial, LoadIndustrial} {
		got, err := ParseLoadType(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	for _, c := range []EnergyCarrier{EnergyUnknown, EnergyAC, EnergyDC, EnergyHeat, EnergyGas} {
		got, err := ParseEnergyCarrier(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestEnumParseRejectsUnknownNames(t *testing.T) {
	for name, parse := range map[string]func(string) error{
		"vertex type":    func(s string) error { _, err := ParseVertexType(s); return err },
		"control":        func(s string) error { _, err := ParseControlType(s); return err },
		"status":         func(s string) error { _, err := ParseStatus(s); return err },
		"edge type":      func(s string) error { _, err := ParseEdgeType(s); return err },
		"generator type": func(s string) error { _, err := ParseGeneratorType(s); return err },
		"load type":      func(s string) error { _, err := ParseLoadType(s); return err },
		"energy carrier": func(s string) error { _, err := ParseEnergyCarrier(s); return err },
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, parse("actve"))
		})
	}
}
