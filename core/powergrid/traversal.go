package powergrid

import (
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/traverse"
	"github.com/kilianp07/gridmodel/internal/assert"
)

// ForAllGenerators visits every live generator.
func (n *PowerGrid) ForAllGenerators(p traverse.Policy, fn traverse.Visitor[int, *model.GeneratorProperties]) {
	traverse.Run(p, n.Generators(), fn)
}

// ForAllGeneratorsAt visits the generators attached to a bus.
func (n *PowerGrid) ForAllGeneratorsAt(vertexID int, p traverse.Policy, fn traverse.Visitor[int, *model.GeneratorProperties]) {
	traverse.Run(p, n.generatorsAt(vertexID), fn)
}

// ForAllVertexIDsWithGenerator visits the buses holding at least one generator.
func (n *PowerGrid) ForAllVertexIDsWithGenerator(p traverse.Policy, fn traverse.Visitor[int, *model.VertexProperties]) {
	traverse.Run(p, n.verticesWithGenerator(), fn)
}

// ForAllGeneratorTuples visits each generator bus with copies of its generators.
func (n *PowerGrid) ForAllGeneratorTuples(p traverse.Policy, fn traverse.Visitor[int, []model.GeneratorProperties]) {
	traverse.Run(p, n.generatorTuples(), fn)
}

// ForAllRealPowerGeneratorSnapshots visits the (position, value) pairs of a
// generator series.
func (n *PowerGrid) ForAllRealPowerGeneratorSnapshots(generatorID int, p traverse.Policy, fn traverse.Visitor[int, float64]) {
	assert.Usage(n.HasGenerator(generatorID), "generator %d does not exist", generatorID)
	traverse.Run(p, seriesOf(n.generatorRealPowerSnapshots, generatorID), fn)
}

// ForAllLoads visits every live load.
func (n *PowerGrid) ForAllLoads(p traverse.Policy, fn traverse.Visitor[int, *model.LoadProperties]) {
	traverse.Run(p, n.Loads(), fn)
}

// ForAllLoadsAt visits the loads attached to a bus.
func (n *PowerGrid) ForAllLoadsAt(vertexID int, p traverse.Policy, fn traverse.Visitor[int, *model.LoadProperties]) {
	traverse.Run(p, n.loadsAt(vertexID), fn)
}

// ForAllVertexIDsWithLoad visits the buses holding at least one load.
func (n *PowerGrid) ForAllVertexIDsWithLoad(p traverse.Policy, fn traverse.Visitor[int, *model.VertexProperties]) {
	traverse.Run(p, n.verticesWithLoad(), fn)
}

// ForAllLoadTuples visits each load bus with copies of its loads.
func (n *PowerGrid) ForAllLoadTuples(p traverse.Policy, fn traverse.Visitor[int, []model.LoadProperties]) {
	traverse.Run(p, n.loadTuples(), fn)
}

// ForAllLoadSnapshots visits the (position, value) pairs of a load series.
func (n *PowerGrid) ForAllLoadSnapshots(loadID int, p traverse.Policy, fn traverse.Visitor[int, float64]) {
	assert.Usage(n.HasLoad(loadID), "load %d does not exist", loadID)
	traverse.Run(p, seriesOf(n.loadSnapshots, loadID), fn)
}

// ForAllVertices visits every live bus.
func (n *PowerGrid) ForAllVertices(p traverse.Policy, fn traverse.Visitor[int, *model.VertexProperties]) {
	n.graph.ForAllVertices(p, func(id int, v *Vertex) bool { return fn(id, &v.Properties) })
}

// ForAllEdges visits every live branch.
func (n *PowerGrid) ForAllEdges(p traverse.Policy, fn traverse.Visitor[int, *Edge]) {
	n.graph.ForAllEdges(p, fn)
}
