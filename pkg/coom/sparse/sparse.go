// Package sparse implements the symmetric sparse accumulator backing
// co-occurrence matrices. Storage is proportional to the number of
// distinct co-occurring pairs, never to the square of the dimension.
package sparse

import (
	"fmt"
	"sort"

	"github.com/cogstats/coom/pkg/coom/internalerr"
)

// cellKey identifies an unordered off-diagonal cell (i < j).
type cellKey struct {
	I, J int
}

// Matrix is a mutable sparse symmetric float64 matrix of fixed
// dimension. Each unordered pair is stored once under its canonical
// (min,max) key; reads at (i,j) and (j,i) therefore always agree.
type Matrix struct {
	dim   int
	cells map[cellKey]float64
}

// Cell is one non-zero entry in canonical form (I < J).
type Cell struct {
	I, J   int
	Weight float64
}

// NewMatrix creates a zero matrix of the given dimension.
func NewMatrix(dim int) *Matrix {
	if dim < 0 {
		panic(fmt.Sprintf("sparse: negative dimension %d", dim))
	}
	return &Matrix{
		dim:   dim,
		cells: make(map[cellKey]float64),
	}
}

// Add accumulates w at (i,j) and, by canonical-key storage, at (j,i).
// The diagonal is not representable: i == j panics, as do out-of-range
// indices, matching slice semantics.
func (m *Matrix) Add(i, j int, w float64) {
	m.check(i, j)
	if i == j {
		panic(fmt.Sprintf("sparse: diagonal write at (%d,%d)", i, j))
	}
	if i > j {
		i, j = j, i
	}
	m.cells[cellKey{I: i, J: j}] += w
}

// AddMatrix sums another matrix of the same dimension into this one.
func (m *Matrix) AddMatrix(other *Matrix) error {
	if other.dim != m.dim {
		return fmt.Errorf("sum %dx%d into %dx%d: %w", other.dim, other.dim, m.dim, m.dim, internalerr.ErrDimensionMismatch)
	}
	for k, w := range other.cells {
		m.cells[k] += w
	}
	return nil
}

// At returns the weight at (i,j). The diagonal is always zero.
func (m *Matrix) At(i, j int) float64 {
	m.check(i, j)
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return m.cells[cellKey{I: i, J: j}]
}

// Dim returns the matrix dimension.
func (m *Matrix) Dim() int {
	return m.dim
}

// NNZ returns the number of distinct unordered pairs with stored weight.
func (m *Matrix) NNZ() int {
	return len(m.cells)
}

// Cells returns all stored entries as canonical coordinate triples,
// sorted by (I, J). This is the exportable compressed layout.
func (m *Matrix) Cells() []Cell {
	out := make([]Cell, 0, len(m.cells))
	for k, w := range m.cells {
		out = append(out, Cell{I: k.I, J: k.J, Weight: w})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// Row returns the non-zero entries of row i as a column→weight map.
func (m *Matrix) Row(i int) map[int]float64 {
	if i < 0 || i >= m.dim {
		panic(fmt.Sprintf("sparse: row %d out of range [0,%d)", i, m.dim))
	}
	row := make(map[int]float64)
	for k, w := range m.cells {
		switch i {
		case k.I:
			row[k.J] = w
		case k.J:
			row[k.I] = w
		}
	}
	return row
}

// Dense materializes the full matrix. Intended for tests and small
// previews only; real vocabularies stay sparse.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, m.dim)
	for i := range out {
		out[i] = make([]float64, m.dim)
	}
	for k, w := range m.cells {
		out[k.I][k.J] = w
		out[k.J][k.I] = w
	}
	return out
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := NewMatrix(m.dim)
	for k, w := range m.cells {
		c.cells[k] = w
	}
	return c
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.dim || j < 0 || j >= m.dim {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range for dimension %d", i, j, m.dim))
	}
}
