package casefile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
)

func loadThreeBus(t *testing.T) *powergrid.PowerGrid {
	t.Helper()
	grid, err := Load(filepath.Join("testdata", "three_bus.yaml"))
	require.NoError(t, err)
	return grid
}

func TestLoadThreeBus(t *testing.T) {
	grid := loadThreeBus(t)
	assert.Equal(t, "three-bus", grid.Name())
	assert.Equal(t, 100.0, grid.BaseMVA())
	assert.True(t, grid.IsBounded())

	st := grid.Stats()
	assert.Equal(t, 3, st.Vertices)
	assert.Equal(t, 3, st.Edges)
	assert.Equal(t, 2, st.Generators)
	assert.Equal(t, 1, st.Loads)
	assert.Equal(t, 2, st.Timestamps)
	assert.Equal(t, 1, st.Islands)

	north := grid.VertexID("north")
	require.NotEqual(t, consts.None, north)
	assert.Equal(t, model.ControlSlack, grid.VertexAt(north).Control)
	assert.Equal(t, bound.Must(0.95, 1.05), grid.VertexAt(north).VoltageBound)
	assert.Equal(t, bound.Must(0.0, 50.0), grid.TotalRealPowerGenerationBoundAt(north, 0))

	east := grid.VertexID("east")
	assert.Equal(t, 0.35, grid.TotalRealPowerLoadAt(east, 1))
	assert.True(t, consts.IsInfinite(grid.TotalRealPowerLoadBoundAt(east, 0).Maximum()))

	wind := grid.GeneratorIDsAt(grid.VertexID("south"))[0]
	assert.Equal(t, consts.NoneReal, grid.GeneratorRealPowerSnapshotAt(wind, 1))

	off := grid.Graph().EdgeID(north, east)
	require.NotEqual(t, consts.None, off)
	assert.False(t, grid.EdgeAt(off).Properties.IsActive())
	assert.Equal(t, 1.05, grid.EdgeAt(off).Properties.TapRatio())
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown bus": `
name: x
buses: [{name: a}]
loads: [{name: l, bus: b}]
`,
		"duplicate bus": `
name: x
buses: [{name: a}, {name: a}]
`,
		"inverted range": `
name: x
buses: [{name: a}]
generators: [{name: g, bus: a, p_range: [5, 1]}]
`,
		"short range": `
name: x
buses: [{name: a, voltage: [1]}]
`,
		"bound type": `
name: x
generator_bound: loose
buses: [{name: a}]
`,
		"snapshot overflow": `
name: x
timestamps: [t0]
buses: [{name: a}]
loads: [{name: l, bus: a, snapshots: [1, 2]}]
`,
		"empty timestamp": `
name: x
timestamps: [""]
buses: [{name: a}]
`,
		"yaml": "name: [",
		"misspelled generator status": `
name: x
generator_bound: bounded
buses: [{name: a}]
generators: [{name: g, bus: a, status: actve, p_range: [0, 50]}]
`,
		"bus control": `
name: x
buses: [{name: a, control: pvq}]
`,
		"bus carrier": `
name: x
buses: [{name: a, carrier: steam}]
`,
		"bus type": `
name: x
buses: [{name: a, type: hub}]
`,
		"branch type": `
name: x
buses: [{name: a}, {name: b}]
branches: [{from: a, to: b, type: hvdc}]
`,
		"generator type": `
name: x
buses: [{name: a}]
generators: [{name: g, bus: a, type: fusion}]
`,
		"load type": `
name: x
buses: [{name: a}]
loads: [{name: l, bus: a, type: agricultural}]
`,
		"nominal range": `
name: x
buses: [{name: a}, {name: b}]
branches: [{from: a, to: b, x: 0.1, s_nom_range: [9, 1]}]
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("name: x\nbuses: [{name: a}]\nbranches: [{from: a, to: z}]\n"))
	assert.ErrorIs(t, err, ErrUnknownBus)
	_, err = Parse([]byte("name: x\nbuses: [{name: a}]\ngenerators: [{name: g, bus: a, p_range: [5, 1]}]\n"))
	var mismatch *bound.MismatchError
	assert.ErrorAs(t, err, &mismatch)
	_, err = Parse([]byte("name: x\ntimestamps: [t0]\nbuses: [{name: a}]\nloads: [{name: l, bus: a, snapshots: [1, 2]}]\n"))
	assert.ErrorIs(t, err, powergrid.ErrSnapshotOverflow)
}

func TestWriteRoundTrip(t *testing.T) {
	grid := loadThreeBus(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, grid))
	assert.Contains(t, buf.String(), ".inf")

	again, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, grid.Stats(), again.Stats())
	assert.Equal(t, grid.Timestamps(), again.Timestamps())
	assert.Equal(t, grid.NetworkBoundType(), again.NetworkBoundType())
	for id, v := range grid.Graph().Vertices() {
		assert.True(t, v.Properties.Equal(*again.VertexAt(id)), "bus %d", id)
	}
	for id, e := range grid.Graph().Edges() {
		assert.True(t, e.Properties.Equal(again.EdgeAt(id).Properties), "branch %d", id)
	}
	for id, g := range grid.Generators() {
		assert.Equal(t, *g, *again.GeneratorAt(id))
		assert.Equal(t, grid.GeneratorRealPowerSnapshotAt(id, 0), again.GeneratorRealPowerSnapshotAt(id, 0))
	}
	assert.Equal(t, grid.LoadsAt(grid.VertexID("east")), again.LoadsAt(again.VertexID("east")))
}

func TestFromGridNamesAnonymousBuses(t *testing.T) {
	grid := powergrid.New("anon")
	a := grid.AddVertex(model.NewVertexProperties())
	b := grid.AddVertex(model.NewVertexProperties())
	_, err := grid.AddEdge(a, b, model.NewEdgeProperties())
	require.NoError(t, err)

	c := FromGrid(grid)
	require.Len(t, c.Buses, 2)
	assert.Equal(t, "bus0", c.Buses[0].Name)
	assert.Equal(t, "bus1", c.Buses[1].Name)
	assert.Equal(t, "bus1", c.Branches[0].To)
}

func TestWriteRoundTripKeepsEveryField(t *testing.T) {
	grid := powergrid.New("full", powergrid.WithBaseMVA(250))
	grid.MakePureUnbounded()
	require.NoError(t, grid.AddSnapshotTimestamp("t0"))
	grid.AddSnapshotWeighting(2)

	bus := model.NewVertexProperties()
	bus.Name = "a"
	bus.Type = model.VertexGenerator
	bus.X, bus.Y = 1.5, -2.5
	bus.ShuntSusceptance, bus.ShuntConductance = 0.3, 0.01
	bus.NominalVoltage = 220
	bus.VoltageAngle = 0.1
	bus.VoltageMagnitude = 0
	bus.VoltageBound = bound.Must(0.9, 1.1)
	bus.Country, bus.Area, bus.Zone = "FR", 2, 3
	bus.Control = model.ControlUnknown
	bus.Carrier = model.EnergyHeat
	bus.Status = model.StatusInactive
	a := grid.AddVertex(bus)
	other := model.NewVertexProperties()
	other.Name = "b"
	b := grid.AddVertex(other)

	edge := model.NewEdgeProperties()
	edge.Name = "a-b"
	edge.Type = model.EdgeControllable
	edge.Status = false
	edge.ThetaBound = bound.Must(-0.4, 0.4)
	edge.Resistance, edge.Reactance = 0.02, 0.2
	edge.Conductance, edge.Susceptance = 0.5, -5
	edge.Charge = 0.03
	edge.ThermalLimitA, edge.ThermalLimitB, edge.ThermalLimitC = 100, 120, 150
	edge.SetTapRatio(0)
	edge.SetAngleShift(0.05)
	edge.CapitalCost = 7
	edge.Length = 12
	edge.NumberOfParallelLines = 2
	edge.NominalApparentPower = 500
	edge.NominalVoltage = 380
	edge.NominalApparentPowerBound = bound.Must(100, 900)
	edge.NominalApparentPowerExtendable = true
	edge.TerrainFactor = 1.3
	_, err := grid.AddEdge(a, b, edge)
	require.NoError(t, err)

	gen := model.NewGeneratorProperties()
	gen.Name = "g"
	gen.Type = model.GeneratorStorage
	gen.Control = model.ControlPV
	gen.X, gen.Y = 3, 4
	gen.VoltageMagnitude = 1.02
	gen.NominalPower = 80
	gen.PowerSign = -1
	gen.RealPower = 0.5
	gen.RealPowerBound = bound.Must(-10, 40)
	gen.ReactivePower = 0.2
	gen.ReactivePowerBound = bound.Must(-5, 5)
	gen.NominalRealPowerBound = bound.Must(10, 200)
	gen.Extendable, gen.Committable = true, true
	gen.MarginalCost, gen.CapitalCost = 42, 99
	gen.StartUpCost, gen.ShutDownCost = 5, 6
	gen.MinimumUpTime, gen.MinimumDownTime = 2, 3
	gen.RampLimitUp, gen.RampLimitDown = 10, 0
	gen.Efficiency = 0.4
	gen.Status = model.StatusInactive
	gid, err := grid.AddGeneratorAt(a, gen)
	require.NoError(t, err)
	require.NoError(t, grid.AddGeneratorRealPowerSnapshotAt(gid, 0.7))

	load := model.NewLoadProperties()
	load.Name = "l"
	load.Type = model.LoadCommercial
	load.RealPowerLoad, load.ReactivePowerLoad = 0.4, 0.1
	load.RealPowerLoadBound = bound.Must(0.1, 0.9)
	load.ReactivePowerLoadBound = bound.Must(0, 0.2)
	lid, err := grid.AddLoadAt(b, load)
	require.NoError(t, err)
	require.NoError(t, grid.AddLoadSnapshotAt(lid, 0.45))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, grid))
	again, err := Parse(buf.Bytes())
	require.NoError(t, err, buf.String())

	assert.Equal(t, 250.0, again.BaseMVA())
	assert.True(t, again.IsPureUnbounded())
	assert.Equal(t, 2.0, again.WeightingAt(0))
	assert.Equal(t, bus, *again.VertexAt(a))
	assert.Equal(t, other, *again.VertexAt(b))
	assert.Equal(t, edge, again.EdgeAt(0).Properties)
	assert.Equal(t, gen, *again.GeneratorAt(gid))
	assert.Equal(t, load, *again.LoadAt(lid))
	assert.Equal(t, 0.7, again.GeneratorRealPowerSnapshotAt(gid, 0))
	assert.Equal(t, 0.45, again.LoadSnapshotOf(lid, 0))
}
