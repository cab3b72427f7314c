package casefile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
	"github.com/kilianp07/gridmodel/core/traverse"
)

var (
	defaultVertex    = model.NewVertexProperties()
	defaultEdge      = model.NewEdgeProperties()
	defaultGenerator = model.NewGeneratorProperties()
)

// FromGrid describes grid as a Case. Buses without a name, or whose name is
// already taken, are named after their identifier so references stay unique.
func FromGrid(grid *powergrid.PowerGrid) *Case {
	c := &Case{
		Name:       grid.Name(),
		BaseMVA:    grid.BaseMVA(),
		Timestamps: grid.Timestamps(),
	}
	if t := grid.GeneratorBoundType(); t != model.BoundUnknown {
		c.GeneratorBound = t.String()
	}
	if t := grid.LoadBoundType(); t != model.BoundUnknown {
		c.LoadBound = t.String()
	}
	for pos := 0; grid.WeightingAt(pos) != consts.NoneReal; pos++ {
		c.Weights = append(c.Weights, grid.WeightingAt(pos))
	}

	names := map[int]string{}
	taken := map[string]bool{}
	grid.ForAllVertices(traverse.Sequential, func(id int, v *model.VertexProperties) bool {
		name := v.Name
		if name == "" || taken[name] {
			name = fmt.Sprintf("bus%d", id)
		}
		taken[name] = true
		names[id] = name
		c.Buses = append(c.Buses, busDef(name, *v))
		return true
	})
	grid.ForAllEdges(traverse.Sequential, func(_ int, e *powergrid.Edge) bool {
		c.Branches = append(c.Branches, branchDef(names[e.Source()], names[e.Target()], e.Properties))
		return true
	})

	genBus := map[int]string{}
	loadBus := map[int]string{}
	for vid, name := range names {
		for _, id := range grid.GeneratorIDsAt(vid) {
			genBus[id] = name
		}
		for _, id := range grid.LoadIDsAt(vid) {
			loadBus[id] = name
		}
	}
	grid.ForAllGenerators(traverse.Sequential, func(id int, g *model.GeneratorProperties) bool {
		def := generatorDef(genBus[id], *g)
		grid.ForAllRealPowerGeneratorSnapshots(id, traverse.Sequential, func(_ int, v float64) bool {
			def.Snapshots = append(def.Snapshots, v)
			return true
		})
		c.Generators = append(c.Generators, def)
		return true
	})
	grid.ForAllLoads(traverse.Sequential, func(id int, l *model.LoadProperties) bool {
		def := LoadDef{
			Name:          l.Name,
			Bus:           loadBus[id],
			Type:          l.Type.String(),
			RealPower:     l.RealPowerLoad,
			RealRange:     rangeOf(l.RealPowerLoadBound),
			ReactivePower: l.ReactivePowerLoad,
			ReactiveRange: rangeOf(l.ReactivePowerLoadBound),
		}
		grid.ForAllLoadSnapshots(id, traverse.Sequential, func(_ int, v float64) bool {
			def.Snapshots = append(def.Snapshots, v)
			return true
		})
		c.Loads = append(c.Loads, def)
		return true
	})
	return c
}

// Write encodes grid as a YAML case.
func Write(w io.Writer, grid *powergrid.PowerGrid) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromGrid(grid)); err != nil {
		return err
	}
	return enc.Close()
}

func rangeOf(b bound.Bound[float64]) Range { return Range{b.Minimum(), b.Maximum()} }

// unlessDefault returns nil when v equals the model default def, so the
// field is left out of the document.
func unlessDefault[T comparable](v, def T) *T {
	if v == def {
		return nil
	}
	return &v
}

func busDef(name string, v model.VertexProperties) BusDef {
	return BusDef{
		Name:             name,
		Type:             v.Type.String(),
		X:                v.X,
		Y:                v.Y,
		NominalVoltage:   v.NominalVoltage,
		VoltageMagnitude: unlessDefault(v.VoltageMagnitude, defaultVertex.VoltageMagnitude),
		VoltageAngle:     v.VoltageAngle,
		Voltage:          rangeOf(v.VoltageBound),
		ShuntConductance: v.ShuntConductance,
		ShuntSusceptance: v.ShuntSusceptance,
		Country:          v.Country,
		Area:             v.Area,
		Zone:             v.Zone,
		Control:          v.Control.String(),
		Carrier:          v.Carrier.String(),
		Status:           v.Status.String(),
	}
}

func branchDef(from, to string, e model.EdgeProperties) BranchDef {
	status := e.Status
	return BranchDef{
		Name:        e.Name,
		From:        from,
		To:          to,
		Type:        e.Type.String(),
		Status:      &status,
		Resistance:  e.Resistance,
		Reactance:   e.Reactance,
		Conductance: e.Conductance,
		Susceptance: e.Susceptance,
		Charge:      e.Charge,
		RateA:       e.ThermalLimitA,
		RateB:       e.ThermalLimitB,
		RateC:       e.ThermalLimitC,
		TapRatio:    unlessDefault(e.TapRatio(), defaultEdge.TapRatio()),
		AngleShift:  e.AngleShift(),
		Angle:       rangeOf(e.ThetaBound),
		Length:      e.Length,
		Parallel:    unlessDefault(e.NumberOfParallelLines, defaultEdge.NumberOfParallelLines),
		CapitalCost: e.CapitalCost,

		NominalApparentPower: e.NominalApparentPower,
		NominalVoltage:       e.NominalVoltage,
		NominalPowerRange:    rangeOf(e.NominalApparentPowerBound),
		Extendable:           e.NominalApparentPowerExtendable,
		TerrainFactor:        unlessDefault(e.TerrainFactor, defaultEdge.TerrainFactor),
	}
}

func generatorDef(bus string, g model.GeneratorProperties) GeneratorDef {
	return GeneratorDef{
		Name:          g.Name,
		Bus:           bus,
		Type:          g.Type.String(),
		Control:       g.Control.String(),
		Status:        g.Status.String(),
		X:             g.X,
		Y:             g.Y,
		VoltageMag:    unlessDefault(g.VoltageMagnitude, defaultGenerator.VoltageMagnitude),
		PowerSign:     unlessDefault(g.PowerSign, defaultGenerator.PowerSign),
		RealPower:     g.RealPower,
		RealRange:     rangeOf(g.RealPowerBound),
		ReactivePower: g.ReactivePower,
		ReactiveRange: rangeOf(g.ReactivePowerBound),
		NominalPower:  g.NominalPower,
		NominalRange:  rangeOf(g.NominalRealPowerBound),
		Extendable:    g.Extendable,
		Committable:   g.Committable,
		MarginalCost:  g.MarginalCost,
		CapitalCost:   g.CapitalCost,
		StartUpCost:   g.StartUpCost,
		ShutDownCost:  g.ShutDownCost,
		MinUpTime:     g.MinimumUpTime,
		MinDownTime:   g.MinimumDownTime,
		RampUp:        unlessDefault(g.RampLimitUp, defaultGenerator.RampLimitUp),
		RampDown:      unlessDefault(g.RampLimitDown, defaultGenerator.RampLimitDown),
		Efficiency:    unlessDefault(g.Efficiency, defaultGenerator.Efficiency),
	}
}
