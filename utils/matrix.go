package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (m Matrix) {
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		m = Matrix{mat.NewDense(nr, nc, dataO[0])}
	} else {
		m = Matrix{mat.NewDense(nr, nc, make([]float64, nr*nc))}
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }

func (m Matrix) Row(i int) (v Vector) {
	_, nc := m.Dims()
	v = NewVector(nc)
	copy(v.Data(), m.M.RawRowView(i))
	return
}

func (m Matrix) SetRow(i int, data []float64) Matrix {
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Max() (max float64) {
	data := m.Data()
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}
