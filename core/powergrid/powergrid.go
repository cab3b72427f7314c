// Package powergrid implements the network data model: a graph of buses and
// branches, generator and load registries associated with buses, time indexed
// snapshot series and the bound policies used to derive per bus power limits.
//
// A PowerGrid is owned by one goroutine at a time. Parallel traversals only
// read the model unless the visitor synchronises its own writes.
package powergrid

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kilianp07/gridmodel/core/bound"
	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/graph"
	"github.com/kilianp07/gridmodel/core/logger"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/internal/assert"
)

// Graph is the topology container used by a PowerGrid.
type Graph = graph.Graph[model.VertexProperties, model.EdgeProperties]

// Vertex is a stored bus.
type Vertex = graph.Vertex[model.VertexProperties]

// Edge is a stored branch.
type Edge = graph.Edge[model.EdgeProperties]

// PowerGrid is the aggregate owning topology, registries and snapshots.
type PowerGrid struct {
	id         uuid.UUID
	graph      *Graph
	baseMVA    float64
	thetaBound bound.Bound[float64]

	generators         []model.GeneratorProperties
	generatorExists    []bool
	generatorsAtVertex [][]int
	numberOfGenerators int

	loads         []model.LoadProperties
	loadExists    []bool
	loadsAtVertex [][]int
	numberOfLoads int

	timestamps                  []string
	snapshotWeights             []float64
	generatorRealPowerSnapshots [][]float64
	loadSnapshots               [][]float64

	generatorBoundType model.BoundType
	loadBoundType      model.BoundType

	log logger.Logger
}

// Option configures a PowerGrid at construction.
type Option func(*PowerGrid)

// WithLogger sets the logger used for registry events.
func WithLogger(l logger.Logger) Option {
	return func(n *PowerGrid) {
		if l != nil {
			n.log = l
		}
	}
}

// WithBaseMVA sets the system base power.
func WithBaseMVA(mva float64) Option {
	return func(n *PowerGrid) { n.baseMVA = mva }
}

// WithID sets the instance identifier instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(n *PowerGrid) { n.id = id }
}

// New returns an empty grid named name. The base power defaults to 1 MVA,
// the angle difference bound to [-inf, inf] and both bound policies to unknown.
func New(name string, opts ...Option) *PowerGrid {
	n := &PowerGrid{
		id:         uuid.New(),
		graph:      graph.New[model.VertexProperties, model.EdgeProperties](name),
		baseMVA:    1,
		thetaBound: bound.Must(-consts.Infinity, consts.Infinity),
		log:        logger.Nop{},
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// ID returns the instance identifier.
func (n *PowerGrid) ID() uuid.UUID { return n.id }

// Name returns the grid name.
func (n *PowerGrid) Name() string { return n.graph.Name() }

// SetName renames the grid.
func (n *PowerGrid) SetName(name string) { n.graph.SetName(name) }

// Graph exposes the underlying topology.
func (n *PowerGrid) Graph() *Graph { return n.graph }

// BaseMVA returns the system base power.
func (n *PowerGrid) BaseMVA() float64 { return n.baseMVA }

// SetBaseMVA replaces the system base power.
func (n *PowerGrid) SetBaseMVA(mva float64) { n.baseMVA = mva }

// ThetaBound returns the global voltage angle difference bound.
func (n *PowerGrid) ThetaBound() bound.Bound[float64] { return n.thetaBound }

// SetThetaBound replaces the global voltage angle difference bound.
func (n *PowerGrid) SetThetaBound(b bound.Bound[float64]) { n.thetaBound = b }

// AddVertex adds a bus and returns its identifier.
func (n *PowerGrid) AddVertex(props model.VertexProperties) int {
	return n.graph.AddVertex(props)
}

// RemoveVertex removes a bus, its branches and every generator and load
// attached to it.
func (n *PowerGrid) RemoveVertex(vertexID int) error {
	if !n.graph.VertexExists(vertexID) {
		return fmt.Errorf("remove vertex %d: %w", vertexID, ErrVertexNotFound)
	}
	for _, id := range n.GeneratorIDsAt(vertexID) {
		if err := n.RemoveGeneratorAt(vertexID, id); err != nil {
			return err
		}
	}
	for _, id := range n.LoadIDsAt(vertexID) {
		if err := n.RemoveLoadAt(vertexID, id); err != nil {
			return err
		}
	}
	return n.graph.RemoveVertex(vertexID)
}

// VertexExists reports whether vertexID names a live bus.
func (n *PowerGrid) VertexExists(vertexID int) bool { return n.graph.VertexExists(vertexID) }

// VertexAt returns the properties of a bus for in-place updates.
func (n *PowerGrid) VertexAt(vertexID int) *model.VertexProperties {
	return &n.graph.VertexAt(vertexID).Properties
}

// VertexID returns the first live bus named name or consts.None.
func (n *PowerGrid) VertexID(name string) int {
	for id, v := range n.graph.Vertices() {
		if v.Properties.Name == name {
			return id
		}
	}
	return consts.None
}

// AddEdge adds a branch between two buses.
func (n *PowerGrid) AddEdge(source, target int, props model.EdgeProperties) (int, error) {
	return n.graph.AddEdge(source, target, props)
}

// EdgeAt returns the stored branch.
func (n *PowerGrid) EdgeAt(edgeID int) *Edge { return n.graph.EdgeAt(edgeID) }

// Islands returns the connected components formed by switched-on branches.
func (n *PowerGrid) Islands() [][]int {
	return n.graph.Islands(func(e *Edge) bool { return e.Properties.IsActive() })
}

// Stats summarises the size of the model.
type Stats struct {
	Vertices              int
	Edges                 int
	Generators            int
	Loads                 int
	VerticesWithGenerator int
	VerticesWithLoad      int
	Timestamps            int
	Islands               int
}

// Stats returns the current model size.
func (n *PowerGrid) Stats() Stats {
	s := Stats{
		Vertices:   n.graph.NumberOfVertices(),
		Edges:      n.graph.NumberOfEdges(),
		Generators: n.numberOfGenerators,
		Loads:      n.numberOfLoads,
		Timestamps: len(n.timestamps),
		Islands:    len(n.Islands()),
	}
	for range n.verticesWithGenerator() {
		s.VerticesWithGenerator++
	}
	for range n.verticesWithLoad() {
		s.VerticesWithLoad++
	}
	return s
}

func (n *PowerGrid) mustVertex(vertexID int) {
	assert.Usage(n.graph.VertexExists(vertexID), "vertex %d does not exist", vertexID)
}

func (n *PowerGrid) mustPosition(position int) {
	assert.Usage(position >= 0, "negative timestamp position %d", position)
}

// grow extends lists so that index is addressable.
func grow[T any](lists [][]T, index int) [][]T {
	if index < len(lists) {
		return lists
	}
	return append(lists, make([][]T, index+1-len(lists))...)
}

// removeSwap deletes id from ids by swapping it with the last element. It
// reports false when id is absent.
func removeSwap(ids []int, id int) ([]int, bool) {
	for i, v := range ids {
		if v == id {
			last := len(ids) - 1
			ids[i] = ids[last]
			return ids[:last], true
		}
	}
	return ids, false
}
