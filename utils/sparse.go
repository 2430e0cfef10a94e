package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is a mutable sparse builder. Operators are accumulated here and
// converted to CSR once, at the end of discretisation.
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (m DOK) {
	m = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, v float64) DOK {
	m.M.Set(i, j, v)
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{m.M.ToCSR()}
}

// CSR is a read-only compressed sparse row operator. It carries no
// per-run state, so one CSR may be shared across concurrent
// integration runs.
type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

// MulVec computes out = M*x.
func (m CSR) MulVec(x, out []float64) {
	nr, nc := m.Dims()
	if len(x) != nc || len(out) != nr {
		err := fmt.Errorf("CSR MulVec dimension mismatch: M is %dx%d, len(x) = %d, len(out) = %d",
			nr, nc, len(x), len(out))
		panic(err)
	}
	for i := range out {
		out[i] = 0
	}
	m.M.DoNonZero(func(i, j int, v float64) {
		out[i] += v * x[j]
	})
}

// RepeatBlockDiag returns the block diagonal matrix with k copies of m
// on the diagonal, i.e. kron(I_k, m). Used to replicate a 1-D operator
// across the positions of a product mesh.
func (m CSR) RepeatBlockDiag(k int) CSR {
	nr, nc := m.Dims()
	d := NewDOK(k*nr, k*nc)
	m.DoNonZero(func(i, j int, v float64) {
		for b := 0; b < k; b++ {
			d.Set(b*nr+i, b*nc+j, v)
		}
	})
	return d.ToCSR()
}
