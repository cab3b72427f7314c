package model

import (
	"fmt"
	"strings"
)

// BoundType selects how aggregated generation or load bounds are derived.
type BoundType int

const (
	BoundUnknown BoundType = iota
	BoundExact
	BoundBounded
	BoundUnbounded
	BoundPureUnbounded
)

// String returns the configuration name of the bound type.
func (t BoundType) String() string {
	switch t {
	case BoundExact:
		return "exact"
	case BoundBounded:
		return "bounded"
	case BoundUnbounded:
		return "unbounded"
	case BoundPureUnbounded:
		return "pureunbounded"
	default:
		return "unknown"
	}
}

// ParseBoundType converts a configuration name into a BoundType.
func ParseBoundType(s string) (BoundType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return BoundUnknown, nil
	case "exact":
		return BoundExact, nil
	case "bounded":
		return BoundBounded, nil
	case "unbounded":
		return BoundUnbounded, nil
	case "pureunbounded", "pure_unbounded":
		return BoundPureUnbounded, nil
	}
	return BoundUnknown, fmt.Errorf("unknown bound type %q", s)
}

// Carrier is the strategy tag used when deriving branch conductance and
// susceptance. It is chosen per call, never stored on the branch.
type Carrier int

const (
	// CarrierAC uses the full series admittance of the branch.
	CarrierAC Carrier = iota
	// CarrierDC uses the DC approximation: g = 0, b = -1/x.
	CarrierDC
	// CarrierAsGiven returns the stored conductance and susceptance unchanged.
	CarrierAsGiven
)

func (c Carrier) String() string {
	switch c {
	case CarrierAC:
		return "ac"
	case CarrierDC:
		return "dc"
	case CarrierAsGiven:
		return "asgiven"
	default:
		return fmt.Sprintf("Carrier(%d)", int(c))
	}
}

// ParseCarrier converts a configuration name into a Carrier.
func ParseCarrier(s string) (Carrier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ac":
		return CarrierAC, nil
	case "dc":
		return CarrierDC, nil
	case "asgiven", "as_given":
		return CarrierAsGiven, nil
	}
	return CarrierAC, fmt.Errorf("unknown carrier %q", s)
}

// EnergyCarrier is the energy form transported by a bus.
type EnergyCarrier int

const (
	EnergyUnknown EnergyCarrier = iota
	EnergyAC
	EnergyDC
	EnergyHeat
	EnergyGas
)

func (e EnergyCarrier) String() string {
	switch e {
	case EnergyAC:
		return "AC"
	case EnergyDC:
		return "DC"
	case EnergyHeat:
		return "heat"
	case EnergyGas:
		return "gas"
	default:
		return "unknown"
	}
}

// ParseEnergyCarrier converts a name into an EnergyCarrier. An empty name
// means unknown.
func ParseEnergyCarrier(s string) (EnergyCarrier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return EnergyUnknown, nil
	case "ac":
		return EnergyAC, nil
	case "dc":
		return EnergyDC, nil
	case "heat":
		return EnergyHeat, nil
	case "gas":
		return EnergyGas, nil
	}
	return EnergyUnknown, fmt.Errorf("unknown energy carrier %q", s)
}

// ControlType is the control strategy of a bus or generator.
type ControlType int

const (
	ControlUnknown ControlType = iota
	ControlPQ
	ControlPV
	ControlSlack
)

func (c ControlType) String() string {
	switch c {
	case ControlPQ:
		return "PQ"
	case ControlPV:
		return "PV"
	case ControlSlack:
		return "Slack"
	default:
		return "unknown"
	}
}

// ParseControlType converts a name into a ControlType.
func ParseControlType(s string) (ControlType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return ControlUnknown, nil
	case "pq":
		return ControlPQ, nil
	case "pv":
		return ControlPV, nil
	case "slack":
		return ControlSlack, nil
	}
	return ControlUnknown, fmt.Errorf("unknown control type %q", s)
}

// VertexType is the IEEE role of a bus.
type VertexType int

const (
	VertexUnknown VertexType = iota
	VertexLoad
	VertexGenerator
	VertexSlack
	VertexIsolated
)

func (t VertexType) String() string {
	switch t {
	case VertexLoad:
		return "load"
	case VertexGenerator:
		return "generator"
	case VertexSlack:
		return "slack"
	case VertexIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// ParseVertexType converts a name into a VertexType.
func ParseVertexType(s string) (VertexType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return VertexUnknown, nil
	case "load", "pq":
		return VertexLoad, nil
	case "generator", "pv":
		return VertexGenerator, nil
	case "slack":
		return VertexSlack, nil
	case "isolated":
		return VertexIsolated, nil
	}
	return VertexUnknown, fmt.Errorf("unknown vertex type %q", s)
}

// Status is the operational state of a bus or generator.
type Status int

const (
	StatusActive Status = iota
	StatusInactive
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// ParseStatus converts a name into a Status. An empty name means active.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active", "on":
		return StatusActive, nil
	case "inactive", "off":
		return StatusInactive, nil
	case "unknown":
		return StatusUnknown, nil
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", s)
}

// EdgeType is the electrical kind of a branch.
type EdgeType int

const (
	EdgeStandard EdgeType = iota
	EdgeSwitched
	EdgeControllable
	EdgeUnknown
)

func (t EdgeType) String() string {
	switch t {
	case EdgeStandard:
		return "standard"
	case EdgeSwitched:
		return "switched"
	case EdgeControllable:
		return "controllable"
	default:
		return "unknown"
	}
}

// ParseEdgeType converts a name into an EdgeType. An empty name means standard.
func ParseEdgeType(s string) (EdgeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return EdgeStandard, nil
	case "switched":
		return EdgeSwitched, nil
	case "controllable":
		return EdgeControllable, nil
	case "unknown":
		return EdgeUnknown, nil
	}
	return EdgeUnknown, fmt.Errorf("unknown edge type %q", s)
}

// GeneratorType is the primary energy source of a generator.
type GeneratorType int

const (
	GeneratorUnknown GeneratorType = iota
	GeneratorCoal
	GeneratorGas
	GeneratorOil
	GeneratorNuclear
	GeneratorHydro
	GeneratorWind
	GeneratorSolar
	GeneratorBiomass
	GeneratorGeothermal
	GeneratorStorage
)

var generatorTypeNames = [...]string{
	GeneratorUnknown:    "unknown",
	GeneratorCoal:       "coal",
	GeneratorGas:        "gas",
	GeneratorOil:        "oil",
	GeneratorNuclear:    "nuclear",
	GeneratorHydro:      "hydro",
	GeneratorWind:       "wind",
	GeneratorSolar:      "solar",
	GeneratorBiomass:    "biomass",
	GeneratorGeothermal: "geothermal",
	GeneratorStorage:    "storage",
}

func (t GeneratorType) String() string {
	if t < 0 || int(t) >= len(generatorTypeNames) {
		return "unknown"
	}
	return generatorTypeNames[t]
}

// ParseGeneratorType converts a name into a GeneratorType. An empty name
// means unknown.
func ParseGeneratorType(s string) (GeneratorType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return GeneratorUnknown, nil
	}
	for i, n := range generatorTypeNames {
		if n == s {
			return GeneratorType(i), nil
		}
	}
	return GeneratorUnknown, fmt.Errorf("unknown generator type %q", s)
}

// LoadType is the consumer category of a load.
type LoadType int

const (
	LoadUnknown LoadType = iota
	LoadResidential
	LoadCommercial
	LoadIndustrial
)

func (t LoadType) String() string {
	switch t {
	case LoadResidential:
		return "residential"
	case LoadCommercial:
		return "commercial"
	case LoadIndustrial:
		return "industrial"
	default:
		return "unknown"
	}
}

// ParseLoadType converts a name into a LoadType.
func ParseLoadType(s string) (LoadType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return LoadUnknown, nil
	case "residential":
		return LoadResidential, nil
	case "commercial":
		return LoadCommercial, nil
	case "industrial":
		return LoadIndustrial, nil
	}
	return LoadUnknown, fmt.Errorf("unknown load type %q", s)
}
