package powergrid

import (
	"fmt"
	"iter"

	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/internal/assert"
)

// AddGeneratorAt registers a generator at a bus and returns its identifier.
// Identifiers of removed generators are not reused.
func (n *PowerGrid) AddGeneratorAt(vertexID int, props model.GeneratorProperties) (int, error) {
	if !n.graph.VertexExists(vertexID) {
		return consts.None, fmt.Errorf("add generator %q at %d: %w", props.Name, vertexID, ErrVertexNotFound)
	}
	id := len(n.generators)
	n.generators = append(n.generators, props)
	n.generatorExists = append(n.generatorExists, true)
	n.generatorsAtVertex = grow(n.generatorsAtVertex, vertexID)
	n.generatorsAtVertex[vertexID] = append(n.generatorsAtVertex[vertexID], id)
	n.numberOfGenerators++
	n.log.Debugw("generator added", map[string]any{"generator_id": id, "vertex_id": vertexID, "name": props.Name})
	return id, nil
}

// RemoveGeneratorAt detaches and removes a generator. The order of the
// remaining generators at the bus is not preserved.
func (n *PowerGrid) RemoveGeneratorAt(vertexID, generatorID int) error {
	if !n.graph.VertexExists(vertexID) {
		return fmt.Errorf("remove generator %d at %d: %w", generatorID, vertexID, ErrVertexNotFound)
	}
	if !n.HasGenerator(generatorID) {
		return fmt.Errorf("remove generator %d at %d: %w", generatorID, vertexID, ErrGeneratorNotFound)
	}
	if vertexID >= len(n.generatorsAtVertex) {
		return fmt.Errorf("remove generator %d at %d: %w", generatorID, vertexID, ErrNotAssociated)
	}
	ids, ok := removeSwap(n.generatorsAtVertex[vertexID], generatorID)
	if !ok {
		return fmt.Errorf("remove generator %d at %d: %w", generatorID, vertexID, ErrNotAssociated)
	}
	n.generatorsAtVertex[vertexID] = ids
	n.generatorExists[generatorID] = false
	n.numberOfGenerators--
	n.log.Debugw("generator removed", map[string]any{"generator_id": generatorID, "vertex_id": vertexID})
	return nil
}

// HasGenerator reports whether generatorID names a live generator.
func (n *PowerGrid) HasGenerator(generatorID int) bool {
	return generatorID >= 0 && generatorID < len(n.generatorExists) && n.generatorExists[generatorID]
}

// HasGeneratorProps reports whether a live generator equals props.
func (n *PowerGrid) HasGeneratorProps(props model.GeneratorProperties) bool {
	return n.GeneratorID(props) != consts.None
}

// HasGeneratorAt reports whether at least one generator is attached to the bus.
func (n *PowerGrid) HasGeneratorAt(vertexID int) bool {
	n.mustVertex(vertexID)
	return vertexID < len(n.generatorsAtVertex) && len(n.generatorsAtVertex[vertexID]) > 0
}

// GeneratorID returns the first live match: a linear scan of the registry in
// identifier order that skips removed generators and compares properties
// structurally. It returns consts.None when nothing matches.
func (n *PowerGrid) GeneratorID(props model.GeneratorProperties) int {
	for id, g := range n.Generators() {
		if *g == props {
			return id
		}
	}
	return consts.None
}

// GeneratorAt returns the generator for in-place updates.
func (n *PowerGrid) GeneratorAt(generatorID int) *model.GeneratorProperties {
	assert.Usage(n.HasGenerator(generatorID), "generator %d does not exist", generatorID)
	return &n.generators[generatorID]
}

// GeneratorIDsAt returns a copy of the generator identifiers attached to a bus.
func (n *PowerGrid) GeneratorIDsAt(vertexID int) []int {
	n.mustVertex(vertexID)
	if vertexID >= len(n.generatorsAtVertex) {
		return nil
	}
	return append([]int(nil), n.generatorsAtVertex[vertexID]...)
}

// GeneratorsAt returns copies of the generators attached to a bus.
func (n *PowerGrid) GeneratorsAt(vertexID int) []model.GeneratorProperties {
	var out []model.GeneratorProperties
	for _, g := range n.generatorsAt(vertexID) {
		out = append(out, *g)
	}
	return out
}

// NumberOfGenerators returns the number of live generators.
func (n *PowerGrid) NumberOfGenerators() int { return n.numberOfGenerators }

// Generators iterates the live generators in identifier order.
func (n *PowerGrid) Generators() iter.Seq2[int, *model.GeneratorProperties] {
	return func(yield func(int, *model.GeneratorProperties) bool) {
		for id := range n.generators {
			if !n.generatorExists[id] {
				continue
			}
			if !yield(id, &n.generators[id]) {
				return
			}
		}
	}
}

func (n *PowerGrid) generatorsAt(vertexID int) iter.Seq2[int, *model.GeneratorProperties] {
	n.mustVertex(vertexID)
	return func(yield func(int, *model.GeneratorProperties) bool) {
		if vertexID >= len(n.generatorsAtVertex) {
			return
		}
		for _, id := range n.generatorsAtVertex[vertexID] {
			assert.Essential(n.HasGenerator(id), "dangling generator %d at vertex %d", id, vertexID)
			if !yield(id, &n.generators[id]) {
				return
			}
		}
	}
}

func (n *PowerGrid) verticesWithGenerator() iter.Seq2[int, *model.VertexProperties] {
	return func(yield func(int, *model.VertexProperties) bool) {
		for id, ids := range n.generatorsAtVertex {
			if len(ids) == 0 || !n.graph.VertexExists(id) {
				continue
			}
			if !yield(id, n.VertexAt(id)) {
				return
			}
		}
	}
}

func (n *PowerGrid) generatorTuples() iter.Seq2[int, []model.GeneratorProperties] {
	return func(yield func(int, []model.GeneratorProperties) bool) {
		for id := range n.verticesWithGenerator() {
			if !yield(id, n.GeneratorsAt(id)) {
				return
			}
		}
	}
}
