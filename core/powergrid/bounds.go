package powergrid

import (
	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/traverse"
	"github.com/kilianp07/gridmodel/internal/assert"
)

// GeneratorBoundType returns the policy applied to generation bounds.
func (n *PowerGrid) GeneratorBoundType() model.BoundType { return n.generatorBoundType }

// SetGeneratorBoundType replaces the policy applied to generation bounds.
func (n *PowerGrid) SetGeneratorBoundType(t model.BoundType) { n.generatorBoundType = t }

// LoadBoundType returns the policy applied to load bounds.
func (n *PowerGrid) LoadBoundType() model.BoundType { return n.loadBoundType }

// SetLoadBoundType replaces the policy applied to load bounds.
func (n *PowerGrid) SetLoadBoundType(t model.BoundType) { n.loadBoundType = t }

// MakeBounded uses the stored bounds for generation and load.
func (n *PowerGrid) MakeBounded() {
	n.generatorBoundType = model.BoundBounded
	n.loadBoundType = model.BoundBounded
}

// MakeUnbounded relaxes generation and load to [0, inf].
func (n *PowerGrid) MakeUnbounded() {
	n.generatorBoundType = model.BoundUnbounded
	n.loadBoundType = model.BoundUnbounded
}

// MakePureUnbounded relaxes generation to [0, inf] while loads at generator
// buses keep their summed maxima.
func (n *PowerGrid) MakePureUnbounded() {
	n.generatorBoundType = model.BoundUnbounded
	n.loadBoundType = model.BoundPureUnbounded
}

// MakeExact pins generation and load to their snapshot values.
func (n *PowerGrid) MakeExact() {
	n.generatorBoundType = model.BoundExact
	n.loadBoundType = model.BoundExact
}

// NetworkBoundType combines the generator and load policies.
func (n *PowerGrid) NetworkBoundType() model.BoundType {
	gen, load := n.generatorBoundType, n.loadBoundType
	switch {
	case gen == model.BoundExact && load == model.BoundExact:
		return model.BoundExact
	case gen == model.BoundBounded && load == model.BoundBounded:
		return model.BoundBounded
	case gen == model.BoundUnbounded && load == model.BoundUnbounded:
		return model.BoundUnbounded
	case (gen == model.BoundUnbounded || gen == model.BoundPureUnbounded) && load == model.BoundPureUnbounded:
		return model.BoundPureUnbounded
	}
	return model.BoundUnknown
}

// IsExact reports whether the network bound type is exact.
func (n *PowerGrid) IsExact() bool { return n.NetworkBoundType() == model.BoundExact }

// IsBounded reports whether the network bound type is bounded.
func (n *PowerGrid) IsBounded() bool { return n.NetworkBoundType() == model.BoundBounded }

// IsUnbounded reports whether the network bound type is unbounded.
func (n *PowerGrid) IsUnbounded() bool { return n.NetworkBoundType() == model.BoundUnbounded }

// IsPureUnbounded reports whether the network bound type is pure unbounded.
func (n *PowerGrid) IsPureUnbounded() bool { return n.NetworkBoundType() == model.BoundPureUnbounded }

var unboundedPower = bound.Must(0, consts.Infinity)

// TotalRealPowerGenerationBoundAt derives the real generation bound of a bus
// under the generator policy. Buses without generators and an unknown policy
// yield [0,0].
func (n *PowerGrid) TotalRealPowerGenerationBoundAt(vertexID, position int) bound.Bound[float64] {
	return n.generationBoundAt(vertexID, position,
		func(g *model.GeneratorProperties) bound.Bound[float64] { return g.RealPowerBound },
		n.TotalRealPowerGenerationAt)
}

// TotalReactivePowerGenerationBoundAt derives the reactive generation bound of
// a bus under the generator policy.
func (n *PowerGrid) TotalReactivePowerGenerationBoundAt(vertexID, position int) bound.Bound[float64] {
	return n.generationBoundAt(vertexID, position,
		func(g *model.GeneratorProperties) bound.Bound[float64] { return g.ReactivePowerBound },
		n.TotalReactivePowerGenerationAt)
}

func (n *PowerGrid) generationBoundAt(
	vertexID, position int,
	limits func(*model.GeneratorProperties) bound.Bound[float64],
	total func(vertexID, position int) float64,
) bound.Bound[float64] {
	if !n.HasGeneratorAt(vertexID) {
		return bound.Bound[float64]{}
	}
	switch n.generatorBoundType {
	case model.BoundUnbounded, model.BoundPureUnbounded:
		return unboundedPower
	case model.BoundBounded:
		var lo, hi float64
		for _, g := range n.generatorsAt(vertexID) {
			if !g.IsActive() {
				continue
			}
			b := limits(g)
			lo += b.Minimum()
			hi += b.Maximum()
		}
		return interval(lo, hi)
	case model.BoundExact:
		return bound.Exact(total(vertexID, position))
	}
	return bound.Bound[float64]{}
}

// TotalRealPowerGenerationAt sums the real power snapshots of the active
// generators at a bus. A missing snapshot saturates the sum at infinity.
func (n *PowerGrid) TotalRealPowerGenerationAt(vertexID, position int) float64 {
	n.mustPosition(position)
	var total float64
	for id, g := range n.generatorsAt(vertexID) {
		if g.IsActive() {
			total = consts.AddSaturating(total, n.GeneratorRealPowerSnapshotAt(id, position))
		}
	}
	return total
}

// TotalReactivePowerGenerationAt sums the reactive power of the active
// generators at a bus.
func (n *PowerGrid) TotalReactivePowerGenerationAt(vertexID, position int) float64 {
	n.mustPosition(position)
	var total float64
	for id, g := range n.generatorsAt(vertexID) {
		if g.IsActive() {
			total = consts.AddSaturating(total, n.GeneratorReactivePowerSnapshotAt(id, position))
		}
	}
	return total
}

// TotalRealPowerLoadBoundAt derives the real load bound of a bus under the
// load policy. Unknown policies fall through to the bounded derivation.
func (n *PowerGrid) TotalRealPowerLoadBoundAt(vertexID, position int) bound.Bound[float64] {
	switch n.loadBoundType {
	case model.BoundPureUnbounded:
		if !n.HasGeneratorAt(vertexID) {
			return unboundedPower
		}
		var hi float64
		for _, l := range n.loadsAt(vertexID) {
			hi = consts.AddSaturating(hi, l.RealPowerLoadBound.Maximum())
		}
		return interval(0, hi)
	case model.BoundUnbounded:
		return unboundedPower
	case model.BoundExact:
		return bound.Exact(n.TotalRealPowerLoadAt(vertexID, position))
	}
	var lo, hi float64
	for _, l := range n.loadsAt(vertexID) {
		lo = consts.AddSaturating(lo, l.RealPowerLoadBound.Minimum())
		hi = consts.AddSaturating(hi, l.RealPowerLoadBound.Maximum())
	}
	return interval(lo, hi)
}

// TotalRealPowerLoadAt sums the load snapshots of a bus at position. The sum
// stops at the first infinite value and returns infinity.
func (n *PowerGrid) TotalRealPowerLoadAt(vertexID, position int) float64 {
	total, _ := n.realPowerLoadSum(vertexID, position)
	return total
}

// realPowerLoadSum also reports how many snapshots were read.
func (n *PowerGrid) realPowerLoadSum(vertexID, position int) (total float64, read int) {
	n.mustPosition(position)
	if !n.HasLoadAt(vertexID) {
		return 0, 0
	}
	traverse.Run(traverse.Breakable, n.loadsAt(vertexID), func(id int, _ *model.LoadProperties) bool {
		read++
		v := n.LoadSnapshotOf(id, position)
		if consts.IsInfinite(v) {
			total = consts.Infinity
			return false
		}
		total += v
		return true
	})
	return total, read
}

// TotalReactivePowerLoadAt sums the static reactive power of the loads at a
// bus. Reactive load has no snapshot series.
func (n *PowerGrid) TotalReactivePowerLoadAt(vertexID int) float64 {
	var total float64
	for _, l := range n.loadsAt(vertexID) {
		total = consts.AddSaturating(total, l.ReactivePowerLoad)
	}
	return total
}

// TotalReactivePowerLoadBoundAt derives the reactive load bound of a bus from
// the static reactive fields of its loads.
func (n *PowerGrid) TotalReactivePowerLoadBoundAt(vertexID int) bound.Bound[float64] {
	switch n.loadBoundType {
	case model.BoundUnbounded, model.BoundPureUnbounded:
		return unboundedPower
	case model.BoundExact:
		return bound.Exact(n.TotalReactivePowerLoadAt(vertexID))
	}
	var lo, hi float64
	for _, l := range n.loadsAt(vertexID) {
		lo = consts.AddSaturating(lo, l.ReactivePowerLoadBound.Minimum())
		hi = consts.AddSaturating(hi, l.ReactivePowerLoadBound.Maximum())
	}
	return interval(lo, hi)
}

// interval builds a bound from sums of valid bounds. Addition is monotone so
// lo <= hi holds.
func interval(lo, hi float64) bound.Bound[float64] {
	b, err := bound.New(lo, hi)
	assert.Essential(err == nil, "summed bound inverted: %v", err)
	return b
}
