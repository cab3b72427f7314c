// Package casefile reads network cases described in YAML. Buses are
// referenced by name; generator and load snapshot series follow the case
// timestamps position by position.
package casefile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
)

// ErrUnknownBus is returned when a branch, generator or load names a bus
// that the case does not define.
var ErrUnknownBus = errors.New("unknown bus")

// Range is a [min, max] pair. YAML accepts .inf and -.inf.
type Range []float64

// BusDef describes a bus. Optional pointer fields keep their model default
// when omitted.
type BusDef struct {
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type,omitempty"`
	X                float64  `yaml:"x,omitempty"`
	Y                float64  `yaml:"y,omitempty"`
	NominalVoltage   float64  `yaml:"nominal_voltage,omitempty"`
	VoltageMagnitude *float64 `yaml:"vm,omitempty"`
	VoltageAngle     float64  `yaml:"va,omitempty"`
	Voltage          Range    `yaml:"voltage,omitempty"`
	ShuntConductance float64  `yaml:"gs,omitempty"`
	ShuntSusceptance float64  `yaml:"bs,omitempty"`
	Country          string   `yaml:"country,omitempty"`
	Area             int      `yaml:"area,omitempty"`
	Zone             int      `yaml:"zone,omitempty"`
	Control          string   `yaml:"control,omitempty"`
	Carrier          string   `yaml:"carrier,omitempty"`
	Status           string   `yaml:"status,omitempty"`
}

// BranchDef describes a branch between two named buses.
type BranchDef struct {
	Name        string   `yaml:"name,omitempty"`
	From        string   `yaml:"from"`
	To          string   `yaml:"to"`
	Type        string   `yaml:"type,omitempty"`
	Status      *bool    `yaml:"status,omitempty"`
	Resistance  float64  `yaml:"r,omitempty"`
	Reactance   float64  `yaml:"x,omitempty"`
	Conductance float64  `yaml:"g,omitempty"`
	Susceptance float64  `yaml:"b,omitempty"`
	Charge      float64  `yaml:"charge,omitempty"`
	RateA       float64  `yaml:"rate_a,omitempty"`
	RateB       float64  `yaml:"rate_b,omitempty"`
	RateC       float64  `yaml:"rate_c,omitempty"`
	TapRatio    *float64 `yaml:"tap,omitempty"`
	AngleShift  float64  `yaml:"shift,omitempty"`
	Angle       Range    `yaml:"angle,omitempty"`
	Length      float64  `yaml:"length,omitempty"`
	Parallel    *int     `yaml:"parallel,omitempty"`
	CapitalCost float64  `yaml:"capital_cost,omitempty"`

	NominalApparentPower float64  `yaml:"s_nom,omitempty"`
	NominalVoltage       float64  `yaml:"v_nom,omitempty"`
	NominalPowerRange    Range    `yaml:"s_nom_range,omitempty"`
	Extendable           bool     `yaml:"s_nom_extendable,omitempty"`
	TerrainFactor        *float64 `yaml:"terrain_factor,omitempty"`
}

// GeneratorDef describes a generator attached to a named bus. Snapshots hold
// the per unit real power at each case timestamp.
type GeneratorDef struct {
	Name          string    `yaml:"name"`
	Bus           string    `yaml:"bus"`
	Type          string    `yaml:"type,omitempty"`
	Control       string    `yaml:"control,omitempty"`
	Status        string    `yaml:"status,omitempty"`
	X             float64   `yaml:"x,omitempty"`
	Y             float64   `yaml:"y,omitempty"`
	VoltageMag    *float64  `yaml:"vm,omitempty"`
	PowerSign     *float64  `yaml:"sign,omitempty"`
	RealPower     float64   `yaml:"p,omitempty"`
	RealRange     Range     `yaml:"p_range,omitempty"`
	ReactivePower float64   `yaml:"q,omitempty"`
	ReactiveRange Range     `yaml:"q_range,omitempty"`
	NominalPower  float64   `yaml:"nominal_power,omitempty"`
	NominalRange  Range     `yaml:"p_nom_range,omitempty"`
	Extendable    bool      `yaml:"extendable,omitempty"`
	Committable   bool      `yaml:"committable,omitempty"`
	MarginalCost  float64   `yaml:"marginal_cost,omitempty"`
	CapitalCost   float64   `yaml:"capital_cost,omitempty"`
	StartUpCost   float64   `yaml:"start_up_cost,omitempty"`
	ShutDownCost  float64   `yaml:"shut_down_cost,omitempty"`
	MinUpTime     float64   `yaml:"min_up_time,omitempty"`
	MinDownTime   float64   `yaml:"min_down_time,omitempty"`
	RampUp        *float64  `yaml:"ramp_limit_up,omitempty"`
	RampDown      *float64  `yaml:"ramp_limit_down,omitempty"`
	Efficiency    *float64  `yaml:"efficiency,omitempty"`
	Snapshots     []float64 `yaml:"snapshots,omitempty"`
}

// LoadDef describes a load attached to a named bus.
type LoadDef struct {
	Name          string    `yaml:"name"`
	Bus           string    `yaml:"bus"`
	Type          string    `yaml:"type,omitempty"`
	RealPower     float64   `yaml:"p,omitempty"`
	RealRange     Range     `yaml:"p_range,omitempty"`
	ReactivePower float64   `yaml:"q,omitempty"`
	ReactiveRange Range     `yaml:"q_range,omitempty"`
	Snapshots     []float64 `yaml:"snapshots,omitempty"`
}

// Case is the YAML document.
type Case struct {
	Name           string         `yaml:"name"`
	BaseMVA        float64        `yaml:"base_mva,omitempty"`
	GeneratorBound string         `yaml:"generator_bound,omitempty"`
	LoadBound      string         `yaml:"load_bound,omitempty"`
	Timestamps     []string       `yaml:"timestamps,omitempty"`
	Weights        []float64      `yaml:"weights,omitempty"`
	Buses          []BusDef       `yaml:"buses"`
	Branches       []BranchDef    `yaml:"branches,omitempty"`
	Generators     []GeneratorDef `yaml:"generators,omitempty"`
	Loads          []LoadDef      `yaml:"loads,omitempty"`
}

// Load reads and builds the case stored at path.
func Load(path string, opts ...powergrid.Option) (*powergrid.PowerGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// Parse builds a grid from YAML data. Options are applied before the case
// values, so a base_mva in the document wins over WithBaseMVA.
func Parse(data []byte, opts ...powergrid.Option) (*powergrid.PowerGrid, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode case: %w", err)
	}
	return c.Build(opts...)
}

// Build turns the document into a grid.
func (c *Case) Build(opts ...powergrid.Option) (*powergrid.PowerGrid, error) {
	grid := powergrid.New(c.Name, opts...)
	if c.BaseMVA != 0 {
		grid.SetBaseMVA(c.BaseMVA)
	}
	if err := c.applyBoundTypes(grid); err != nil {
		return nil, err
	}
	for _, ts := range c.Timestamps {
		if err := grid.AddSnapshotTimestamp(ts); err != nil {
			return nil, err
		}
	}
	for _, w := range c.Weights {
		grid.AddSnapshotWeighting(w)
	}

	buses := make(map[string]int, len(c.Buses))
	for _, b := range c.Buses {
		if _, dup := buses[b.Name]; dup {
			return nil, fmt.Errorf("bus %q defined twice", b.Name)
		}
		props, err := b.properties()
		if err != nil {
			return nil, fmt.Errorf("bus %q: %w", b.Name, err)
		}
		buses[b.Name] = grid.AddVertex(props)
	}
	lookup := func(name string) (int, error) {
		id, ok := buses[name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrUnknownBus, name)
		}
		return id, nil
	}

	for i, br := range c.Branches {
		from, err := lookup(br.From)
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		to, err := lookup(br.To)
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		props, err := br.properties()
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		if _, err := grid.AddEdge(from, to, props); err != nil {
			return nil, err
		}
	}

	for _, g := range c.Generators {
		vid, err := lookup(g.Bus)
		if err != nil {
			return nil, fmt.Errorf("generator %q: %w", g.Name, err)
		}
		props, err := g.properties()
		if err != nil {
			return nil, fmt.Errorf("generator %q: %w", g.Name, err)
		}
		id, err := grid.AddGeneratorAt(vid, props)
		if err != nil {
			return nil, err
		}
		for _, v := range g.Snapshots {
			if err := grid.AddGeneratorRealPowerSnapshotAt(id, v); err != nil {
				return nil, fmt.Errorf("generator %q: %w", g.Name, err)
			}
		}
	}

	for _, l := range c.Loads {
		vid, err := lookup(l.Bus)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", l.Name, err)
		}
		props, err := l.properties()
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", l.Name, err)
		}
		id, err := grid.AddLoadAt(vid, props)
		if err != nil {
			return nil, err
		}
		for _, v := range l.Snapshots {
			if err := grid.AddLoadSnapshotAt(id, v); err != nil {
				return nil, fmt.Errorf("load %q: %w", l.Name, err)
			}
		}
	}
	return grid, nil
}

func (c *Case) applyBoundTypes(grid *powergrid.PowerGrid) error {
	if c.GeneratorBound != "" {
		t, err := model.ParseBoundType(c.GeneratorBound)
		if err != nil {
			return err
		}
		grid.SetGeneratorBoundType(t)
	}
	if c.LoadBound != "" {
		t, err := model.ParseBoundType(c.LoadBound)
		if err != nil {
			return err
		}
		grid.SetLoadBoundType(t)
	}
	return nil
}

// apply overwrites dst when the range is present.
func (r Range) apply(dst *bound.Bound[float64]) error {
	if len(r) == 0 {
		return nil
	}
	if len(r) != 2 {
		return fmt.Errorf("range needs 2 values, got %d", len(r))
	}
	return dst.Range(r[0], r[1])
}

// valueOr returns *p when set and def otherwise.
func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func (b BusDef) properties() (model.VertexProperties, error) {
	var err error
	v := model.NewVertexProperties()
	v.Name = b.Name
	if v.Type, err = model.ParseVertexType(b.Type); err != nil {
		return v, err
	}
	v.X, v.Y = b.X, b.Y
	v.NominalVoltage = b.NominalVoltage
	v.VoltageMagnitude = valueOr(b.VoltageMagnitude, v.VoltageMagnitude)
	v.VoltageAngle = b.VoltageAngle
	v.ShuntConductance = b.ShuntConductance
	v.ShuntSusceptance = b.ShuntSusceptance
	v.Country, v.Area, v.Zone = b.Country, b.Area, b.Zone
	if b.Control != "" {
		if v.Control, err = model.ParseControlType(b.Control); err != nil {
			return v, err
		}
	}
	if b.Carrier != "" {
		if v.Carrier, err = model.ParseEnergyCarrier(b.Carrier); err != nil {
			return v, err
		}
	}
	if v.Status, err = model.ParseStatus(b.Status); err != nil {
		return v, err
	}
	return v, b.Voltage.apply(&v.VoltageBound)
}

func (b BranchDef) properties() (model.EdgeProperties, error) {
	var err error
	e := model.NewEdgeProperties()
	e.Name = b.Name
	if e.Type, err = model.ParseEdgeType(b.Type); err != nil {
		return e, err
	}
	e.Status = valueOr(b.Status, e.Status)
	e.Resistance, e.Reactance = b.Resistance, b.Reactance
	e.Conductance, e.Susceptance = b.Conductance, b.Susceptance
	e.Charge = b.Charge
	e.ThermalLimitA, e.ThermalLimitB, e.ThermalLimitC = b.RateA, b.RateB, b.RateC
	e.SetTapRatio(valueOr(b.TapRatio, e.TapRatio()))
	e.SetAngleShift(b.AngleShift)
	e.Length = b.Length
	e.NumberOfParallelLines = valueOr(b.Parallel, e.NumberOfParallelLines)
	e.CapitalCost = b.CapitalCost
	e.NominalApparentPower = b.NominalApparentPower
	e.NominalVoltage = b.NominalVoltage
	e.NominalApparentPowerExtendable = b.Extendable
	e.TerrainFactor = valueOr(b.TerrainFactor, e.TerrainFactor)
	if err := b.NominalPowerRange.apply(&e.NominalApparentPowerBound); err != nil {
		return e, err
	}
	return e, b.Angle.apply(&e.ThetaBound)
}

func (g GeneratorDef) properties() (model.GeneratorProperties, error) {
	var err error
	p := model.NewGeneratorProperties()
	p.Name = g.Name
	if p.Type, err = model.ParseGeneratorType(g.Type); err != nil {
		return p, err
	}
	if g.Control != "" {
		if p.Control, err = model.ParseControlType(g.Control); err != nil {
			return p, err
		}
	}
	if p.Status, err = model.ParseStatus(g.Status); err != nil {
		return p, err
	}
	p.X, p.Y = g.X, g.Y
	p.VoltageMagnitude = valueOr(g.VoltageMag, p.VoltageMagnitude)
	p.PowerSign = valueOr(g.PowerSign, p.PowerSign)
	p.RealPower, p.ReactivePower = g.RealPower, g.ReactivePower
	p.NominalPower = g.NominalPower
	p.Extendable, p.Committable = g.Extendable, g.Committable
	p.MarginalCost, p.CapitalCost = g.MarginalCost, g.CapitalCost
	p.StartUpCost, p.ShutDownCost = g.StartUpCost, g.ShutDownCost
	p.MinimumUpTime, p.MinimumDownTime = g.MinUpTime, g.MinDownTime
	p.RampLimitUp = valueOr(g.RampUp, p.RampLimitUp)
	p.RampLimitDown = valueOr(g.RampDown, p.RampLimitDown)
	p.Efficiency = valueOr(g.Efficiency, p.Efficiency)
	if err := g.RealRange.apply(&p.RealPowerBound); err != nil {
		return p, err
	}
	if err := g.NominalRange.apply(&p.NominalRealPowerBound); err != nil {
		return p, err
	}
	return p, g.ReactiveRange.apply(&p.ReactivePowerBound)
}

func (l LoadDef) properties() (model.LoadProperties, error) {
	var err error
	p := model.NewLoadProperties()
	p.Name = l.Name
	if p.Type, err = model.ParseLoadType(l.Type); err != nil {
		return p, err
	}
	p.RealPowerLoad, p.ReactivePowerLoad = l.RealPower, l.ReactivePower
	if err := l.RealRange.apply(&p.RealPowerLoadBound); err != nil {
		return p, err
	}
	return p, l.ReactiveRange.apply(&p.ReactivePowerLoadBound)
}
