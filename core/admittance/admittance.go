// Package admittance assembles the nodal admittance matrix of a power grid.
package admittance

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/gridmodel/core/consts"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
)

// Matrix is Y = G + jB indexed by live vertices in ascending identifier order.
type Matrix struct {
	Carrier model.Carrier
	G       *mat.Dense
	B       *mat.Dense

	order []int
	index map[int]int
}

// Build stamps every switched-on branch of grid with the pi model and adds the
// bus shunts. Line charging and shunts are ignored under the DC carrier.
func Build(grid *powergrid.PowerGrid, c model.Carrier) (*Matrix, error) {
	order := grid.Graph().VertexIDs()
	m := &Matrix{Carrier: c, order: order, index: make(map[int]int, len(order))}
	for i, id := range order {
		m.index[id] = i
	}
	size := len(order)
	if size == 0 {
		return m, nil
	}
	m.G = mat.NewDense(size, size, nil)
	m.B = mat.NewDense(size, size, nil)

	for id, e := range grid.Graph().Edges() {
		if !e.Properties.IsActive() || e.Source() == e.Target() {
			continue
		}
		if err := m.stampBranch(e.Source(), e.Target(), e.Properties); err != nil {
			return nil, fmt.Errorf("branch %d: %w", id, err)
		}
	}
	if c != model.CarrierDC {
		for id, v := range grid.Graph().Vertices() {
			if !v.Properties.IsActive() {
				continue
			}
			m.add(id, id, complex(v.Properties.ShuntConductance, v.Properties.ShuntSusceptance))
		}
	}
	return m, nil
}

func (m *Matrix) stampBranch(from, to int, e model.EdgeProperties) error {
	g, b, err := e.Admittance(m.Carrier)
	if err != nil {
		return err
	}
	series := complex(g, b)
	var charge float64
	if m.Carrier == model.CarrierAC {
		charge = e.Charge
	}
	tap := e.TapRatio()
	if tap == 0 {
		tap = 1
	}
	shift := cmplx.Exp(complex(0, e.AngleShift()))

	ytt := series + complex(0, charge/2)
	yff := ytt / complex(tap*tap, 0)
	yft := -series / (complex(tap, 0) * cmplx.Conj(shift))
	ytf := -series / (complex(tap, 0) * shift)

	m.add(from, from, yff)
	m.add(to, to, ytt)
	m.add(from, to, yft)
	m.add(to, from, ytf)
	return nil
}

func (m *Matrix) add(row, col int, y complex128) {
	i, j := m.index[row], m.index[col]
	m.G.Set(i, j, m.G.At(i, j)+real(y))
	m.B.Set(i, j, m.B.At(i, j)+imag(y))
}

// Order returns the vertex identifier of each matrix row.
func (m *Matrix) Order() []int { return append([]int(nil), m.order...) }

// Dims returns the number of rows.
func (m *Matrix) Dims() int { return len(m.order) }

// Index returns the row of vertexID or consts.None.
func (m *Matrix) Index(vertexID int) int {
	i, ok := m.index[vertexID]
	if !ok {
		return consts.None
	}
	return i
}

// At returns the admittance between two vertices, zero when either is absent.
func (m *Matrix) At(from, to int) complex128 {
	i, j := m.Index(from), m.Index(to)
	if i == consts.None || j == consts.None {
		return 0
	}
	return complex(m.G.At(i, j), m.B.At(i, j))
}

// IsSymmetric reports whether both parts equal their transpose within tol.
// Phase shifting transformers break symmetry.
func (m *Matrix) IsSymmetric(tol float64) bool {
	if m.Dims() == 0 {
		return true
	}
	return mat.EqualApprox(m.G, m.G.T(), tol) && mat.EqualApprox(m.B, m.B.T(), tol)
}
