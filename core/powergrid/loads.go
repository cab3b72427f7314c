package powergrid

import (
	"fmt"
	"iter"

	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/internal/assert"
)

// AddLoadAt registers a load at a bus and returns its identifier.
func (n *PowerGrid) AddLoadAt(vertexID int, props model.LoadProperties) (int, error) {
	if !n.graph.VertexExists(vertexID) {
		return consts.None, fmt.Errorf("add load %q at %d: %w", props.Name, vertexID, ErrVertexNotFound)
	}
	id := len(n.loads)
	n.loads = append(n.loads, props)
	n.loadExists = append(n.loadExists, true)
	n.loadsAtVertex = grow(n.loadsAtVertex, vertexID)
	n.loadsAtVertex[vertexID] = append(n.loadsAtVertex[vertexID], id)
	n.numberOfLoads++
	n.log.Debugw("load added", map[string]any{"load_id": id, "vertex_id": vertexID, "name": props.Name})
	return id, nil
}

// RemoveLoadAt detaches and removes a load. Sibling loads at the bus may be
// reordered.
func (n *PowerGrid) RemoveLoadAt(vertexID, loadID int) error {
	if !n.graph.VertexExists(vertexID) {
		return fmt.Errorf("remove load %d at %d: %w", loadID, vertexID, ErrVertexNotFound)
	}
	if !n.HasLoad(loadID) {
		return fmt.Errorf("remove load %d at %d: %w", loadID, vertexID, ErrLoadNotFound)
	}
	if vertexID >= len(n.loadsAtVertex) {
		return fmt.Errorf("remove load %d at %d: %w", loadID, vertexID, ErrNotAssociated)
	}
	ids, ok := removeSwap(n.loadsAtVertex[vertexID], loadID)
	if !ok {
		return fmt.Errorf("remove load %d at %d: %w", loadID, vertexID, ErrNotAssociated)
	}
	n.loadsAtVertex[vertexID] = ids
	n.loadExists[loadID] = false
	n.numberOfLoads--
	n.log.Debugw("load removed", map[string]any{"load_id": loadID, "vertex_id": vertexID})
	return nil
}

// HasLoad reports whether loadID names a live load.
func (n *PowerGrid) HasLoad(loadID int) bool {
	return loadID >= 0 && loadID < len(n.loadExists) && n.loadExists[loadID]
}

// HasLoadProps reports whether a live load equals props.
func (n *PowerGrid) HasLoadProps(props model.LoadProperties) bool {
	return n.LoadID(props) != consts.None
}

// HasLoadAt reports whether at least one load is attached to the bus.
func (n *PowerGrid) HasLoadAt(vertexID int) bool {
	n.mustVertex(vertexID)
	return vertexID < len(n.loadsAtVertex) && len(n.loadsAtVertex[vertexID]) > 0
}

// LoadID returns the first live match: a linear scan of the registry in
// identifier order that skips removed loads and compares properties
// structurally. It returns consts.None when nothing matches.
func (n *PowerGrid) LoadID(props model.LoadProperties) int {
	for id, l := range n.Loads() {
		if *l == props {
			return id
		}
	}
	return consts.None
}

// LoadAt returns the load for in-place updates.
func (n *PowerGrid) LoadAt(loadID int) *model.LoadProperties {
	assert.Usage(n.HasLoad(loadID), "load %d does not exist", loadID)
	return &n.loads[loadID]
}

// LoadIDsAt returns a copy of the load identifiers attached to a bus.
func (n *PowerGrid) LoadIDsAt(vertexID int) []int {
	n.mustVertex(vertexID)
	if vertexID >= len(n.loadsAtVertex) {
		return nil
	}
	return append([]int(nil), n.loadsAtVertex[vertexID]...)
}

// LoadsAt returns copies of the loads attached to a bus.
func (n *PowerGrid) LoadsAt(vertexID int) []model.LoadProperties {
	var out []model.LoadProperties
	for _, l := range n.loadsAt(vertexID) {
		out = append(out, *l)
	}
	return out
}

// NumberOfLoads returns the number of live loads.
func (n *PowerGrid) NumberOfLoads() int { return n.numberOfLoads }

// Loads iterates the live loads in identifier order.
func (n *PowerGrid) Loads() iter.Seq2[int, *model.LoadProperties] {
	return func(yield func(int, *model.LoadProperties) bool) {
		for id := range n.loads {
			if !n.loadExists[id] {
				continue
			}
			if !yield(id, &n.loads[id]) {
				return
			}
		}
	}
}

func (n *PowerGrid) loadsAt(vertexID int) iter.Seq2[int, *model.LoadProperties] {
	n.mustVertex(vertexID)
	return func(yield func(int, *model.LoadProperties) bool) {
		if vertexID >= len(n.loadsAtVertex) {
			return
		}
		for _, id := range n.loadsAtVertex[vertexID] {
			assert.Essential(n.HasLoad(id), "dangling load %d at vertex %d", id, vertexID)
			if !yield(id, &n.loads[id]) {
				return
			}
		}
	}
}

func (n *PowerGrid) verticesWithLoad() iter.Seq2[int, *model.VertexProperties] {
	return func(yield func(int, *model.VertexProperties) bool) {
		for id, ids := range n.loadsAtVertex {
			if len(ids) == 0 || !n.graph.VertexExists(id) {
				continue
			}
			if !yield(id, n.VertexAt(id)) {
				return
			}
		}
	}
}

func (n *PowerGrid) loadTuples() iter.Seq2[int, []model.LoadProperties] {
	return func(yield func(int, []model.LoadProperties) bool) {
		for id := range n.verticesWithLoad() {
			if !yield(id, n.LoadsAt(id)) {
				return
			}
		}
	}
}
