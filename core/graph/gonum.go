package graph

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Undirected exports the topology as a gonum simple graph. Node IDs equal
// vertex identifiers. Parallel edges collapse and self loops are dropped.
// When keep is non-nil only the edges it accepts are exported.
func (g *Graph[V, E]) Undirected(keep func(*Edge[E]) bool) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for id := range g.Vertices() {
		ug.AddNode(simple.Node(int64(id)))
	}
	for _, e := range g.Edges() {
		if e.source == e.target {
			continue
		}
		if keep != nil && !keep(e) {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(int64(e.source)), T: simple.Node(int64(e.target))})
	}
	return ug
}

// Islands returns the connected components of the graph. Each component is
// sorted and components are ordered by their smallest vertex.
func (g *Graph[V, E]) Islands(keep func(*Edge[E]) bool) [][]int {
	comps := topo.ConnectedComponents(g.Undirected(keep))
	out := make([][]int, 0, len(comps))
	for _, c := range comps {
		ids := make([]int, len(c))
		for i, n := range c {
			ids[i] = int(n.ID())
		}
		slices.Sort(ids)
		out = append(out, ids)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}
