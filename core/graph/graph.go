// Package graph provides the directed multigraph container behind a power
// grid. Vertices and edges get dense integer identifiers that stay valid for
// the life of the graph: removal only clears a liveness flag and identifiers
// are never reused.
package graph

import (
	"errors"
	"fmt"
	"iter"

	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/traverse"
	"github.com/kilianp07/gridmodel/internal/assert"
)

var (
	// ErrVertexNotFound is returned when an operation references a missing vertex.
	ErrVertexNotFound = errors.New("vertex not found")
	// ErrEdgeNotFound is returned when an operation references a missing edge.
	ErrEdgeNotFound = errors.New("edge not found")
)

// Vertex is a stored vertex and its properties.
type Vertex[V any] struct {
	id         int
	Properties V
}

// ID returns the vertex identifier.
func (v *Vertex[V]) ID() int { return v.id }

// Edge is a stored edge and its properties.
type Edge[E any] struct {
	id         int
	source     int
	target     int
	Properties E
}

// ID returns the edge identifier.
func (e *Edge[E]) ID() int { return e.id }

// Source returns the tail vertex identifier.
func (e *Edge[E]) Source() int { return e.source }

// Target returns the head vertex identifier.
func (e *Edge[E]) Target() int { return e.target }

// Other returns the endpoint opposite to vertexID.
func (e *Edge[E]) Other(vertexID int) int {
	if e.source == vertexID {
		return e.target
	}
	return e.source
}

// Graph stores vertices with properties V and edges with properties E.
type Graph[V, E any] struct {
	name string

	vertices     []Vertex[V]
	vertexExists []bool
	liveVertices int

	edges      []Edge[E]
	edgeExists []bool
	liveEdges  int

	inEdges  [][]int
	outEdges [][]int
}

// New returns an empty graph.
func New[V, E any](name string) *Graph[V, E] {
	return &Graph[V, E]{name: name}
}

// Name returns the graph name.
func (g *Graph[V, E]) Name() string { return g.name }

// SetName renames the graph.
func (g *Graph[V, E]) SetName(name string) { g.name = name }

// AddVertex stores a new vertex and returns its identifier.
func (g *Graph[V, E]) AddVertex(props V) int {
	id := len(g.vertices)
	g.vertices = append(g.vertices, Vertex[V]{id: id, Properties: props})
	g.vertexExists = append(g.vertexExists, true)
	g.inEdges = append(g.inEdges, nil)
	g.outEdges = append(g.outEdges, nil)
	g.liveVertices++
	return id
}

// RemoveVertex removes the vertex and every edge incident to it.
func (g *Graph[V, E]) RemoveVertex(id int) error {
	if !g.VertexExists(id) {
		return fmt.Errorf("remove vertex %d: %w", id, ErrVertexNotFound)
	}
	for _, eid := range g.InEdgeIDsAt(id) {
		if err := g.RemoveEdge(eid); err != nil {
			return err
		}
	}
	for _, eid := range g.OutEdgeIDsAt(id) {
		if err := g.RemoveEdge(eid); err != nil {
			return err
		}
	}
	g.vertexExists[id] = false
	g.liveVertices--
	return nil
}

// AddEdge stores a new edge from source to target and returns its identifier.
func (g *Graph[V, E]) AddEdge(source, target int, props E) (int, error) {
	if !g.VertexExists(source) {
		return consts.None, fmt.Errorf("add edge: source %d: %w", source, ErrVertexNotFound)
	}
	if !g.VertexExists(target) {
		return consts.None, fmt.Errorf("add edge: target %d: %w", target, ErrVertexNotFound)
	}
	id := len(g.edges)
	g.edges = append(g.edges, Edge[E]{id: id, source: source, target: target, Properties: props})
	g.edgeExists = append(g.edgeExists, true)
	g.outEdges[source] = append(g.outEdges[source], id)
	g.inEdges[target] = append(g.inEdges[target], id)
	g.liveEdges++
	return id, nil
}

// RemoveEdge removes the edge from the graph.
func (g *Graph[V, E]) RemoveEdge(id int) error {
	if !g.EdgeExists(id) {
		return fmt.Errorf("remove edge %d: %w", id, ErrEdgeNotFound)
	}
	e := g.edges[id]
	g.outEdges[e.source] = removeID(g.outEdges[e.source], id)
	g.inEdges[e.target] = removeID(g.inEdges[e.target], id)
	g.edgeExists[id] = false
	g.liveEdges--
	return nil
}

// removeID deletes id by swapping it with the last element.
func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			last := len(ids) - 1
			ids[i] = ids[last]
			return ids[:last]
		}
	}
	assert.Essential(false, "edge %d missing from incidence list", id)
	return ids
}

// VertexExists reports whether id names a live vertex.
func (g *Graph[V, E]) VertexExists(id int) bool {
	return id >= 0 && id < len(g.vertexExists) && g.vertexExists[id]
}

// EdgeExists reports whether id names a live edge.
func (g *Graph[V, E]) EdgeExists(id int) bool {
	return id >= 0 && id < len(g.edgeExists) && g.edgeExists[id]
}

// VertexAt returns the stored vertex. It panics if the vertex does not exist.
func (g *Graph[V, E]) VertexAt(id int) *Vertex[V] {
	assert.Usage(g.VertexExists(id), "vertex %d does not exist", id)
	return &g.vertices[id]
}

// EdgeAt returns the stored edge. It panics if the edge does not exist.
func (g *Graph[V, E]) EdgeAt(id int) *Edge[E] {
	assert.Usage(g.EdgeExists(id), "edge %d does not exist", id)
	return &g.edges[id]
}

// NumberOfVertices returns the number of live vertices.
func (g *Graph[V, E]) NumberOfVertices() int { return g.liveVertices }

// NumberOfEdges returns the number of live edges.
func (g *Graph[V, E]) NumberOfEdges() int { return g.liveEdges }

// VertexCapacity returns one past the largest vertex identifier ever issued.
func (g *Graph[V, E]) VertexCapacity() int { return len(g.vertices) }

// VertexIDs returns the live vertex identifiers in ascending order.
func (g *Graph[V, E]) VertexIDs() []int {
	ids := make([]int, 0, g.liveVertices)
	for id := range g.Vertices() {
		ids = append(ids, id)
	}
	return ids
}

// EdgeIDs returns the live edge identifiers in ascending order.
func (g *Graph[V, E]) EdgeIDs() []int {
	ids := make([]int, 0, g.liveEdges)
	for id := range g.Edges() {
		ids = append(ids, id)
	}
	return ids
}

// EdgeID returns the first live edge from source to target or consts.None.
func (g *Graph[V, E]) EdgeID(source, target int) int {
	if !g.VertexExists(source) {
		return consts.None
	}
	for _, eid := range g.outEdges[source] {
		if g.edges[eid].target == target {
			return eid
		}
	}
	return consts.None
}

// InEdgeIDsAt returns a copy of the identifiers of edges ending at id.
func (g *Graph[V, E]) InEdgeIDsAt(id int) []int {
	assert.Usage(g.VertexExists(id), "vertex %d does not exist", id)
	return append([]int(nil), g.inEdges[id]...)
}

// OutEdgeIDsAt returns a copy of the identifiers of edges starting at id.
func (g *Graph[V, E]) OutEdgeIDsAt(id int) []int {
	assert.Usage(g.VertexExists(id), "vertex %d does not exist", id)
	return append([]int(nil), g.outEdges[id]...)
}

// NeighboursOf returns the distinct vertices adjacent to id in either direction.
func (g *Graph[V, E]) NeighboursOf(id int) []int {
	assert.Usage(g.VertexExists(id), "vertex %d does not exist", id)
	seen := make(map[int]bool)
	var out []int
	visit := func(eids []int) {
		for _, eid := range eids {
			n := g.edges[eid].Other(id)
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	visit(g.outEdges[id])
	visit(g.inEdges[id])
	return out
}

// DegreeAt returns the number of edges incident to id.
func (g *Graph[V, E]) DegreeAt(id int) int {
	assert.Usage(g.VertexExists(id), "vertex %d does not exist", id)
	return len(g.inEdges[id]) + len(g.outEdges[id])
}

// MinDegree returns the smallest degree and a vertex attaining it. The vertex
// is consts.None for an empty graph.
func (g *Graph[V, E]) MinDegree() (degree, vertexID int) {
	vertexID = consts.None
	for id := range g.Vertices() {
		d := g.DegreeAt(id)
		if vertexID == consts.None || d < degree {
			degree, vertexID = d, id
		}
	}
	return degree, vertexID
}

// MaxDegree returns the largest degree and a vertex attaining it.
func (g *Graph[V, E]) MaxDegree() (degree, vertexID int) {
	vertexID = consts.None
	for id := range g.Vertices() {
		d := g.DegreeAt(id)
		if vertexID == consts.None || d > degree {
			degree, vertexID = d, id
		}
	}
	return degree, vertexID
}

// Vertices iterates the live vertices in identifier order.
func (g *Graph[V, E]) Vertices() iter.Seq2[int, *Vertex[V]] {
	return func(yield func(int, *Vertex[V]) bool) {
		for id := range g.vertices {
			if !g.vertexExists[id] {
				continue
			}
			if !yield(id, &g.vertices[id]) {
				return
			}
		}
	}
}

// Edges iterates the live edges in identifier order.
func (g *Graph[V, E]) Edges() iter.Seq2[int, *Edge[E]] {
	return func(yield func(int, *Edge[E]) bool) {
		for id := range g.edges {
			if !g.edgeExists[id] {
				continue
			}
			if !yield(id, &g.edges[id]) {
				return
			}
		}
	}
}

// ForAllVertices visits the live vertices under policy p.
func (g *Graph[V, E]) ForAllVertices(p traverse.Policy, fn traverse.Visitor[int, *Vertex[V]]) {
	traverse.Run(p, g.Vertices(), fn)
}

// ForAllEdges visits the live edges under policy p.
func (g *Graph[V, E]) ForAllEdges(p traverse.Policy, fn traverse.Visitor[int, *Edge[E]]) {
	traverse.Run(p, g.Edges(), fn)
}
