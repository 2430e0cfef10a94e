package utils

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	if len(dataO) != 0 {
		v = Vector{mat.NewVecDense(n, dataO[0])}
	} else {
		v = Vector{mat.NewVecDense(n, make([]float64, n))}
	}
	return
}

// NewVectorLinspace builds n evenly spaced values spanning [a, b]
// inclusive of both endpoints.
func NewVectorLinspace(a, b float64, n int) (v Vector) {
	v = NewVector(n)
	data := v.Data()
	h := (b - a) / float64(n-1)
	for i := range data {
		data[i] = a + float64(i)*h
	}
	data[n-1] = b
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) Data() []float64          { return v.V.RawVector().Data }

// Chainable (extended) methods
func (v Vector) Copy() (r Vector) {
	r = NewVector(v.Len())
	copy(r.Data(), v.Data())
	return
}

func (v Vector) Scale(a float64) Vector {
	data := v.Data()
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector {
	data := v.Data()
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Add(w Vector) Vector {
	v.V.AddVec(v.V, w.V)
	return v
}

func (v Vector) Subtract(w Vector) Vector {
	v.V.SubVec(v.V, w.V)
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	data := v.Data()
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

// Concat returns a new vector holding v followed by w. Neither
// receiver is modified.
func (v Vector) Concat(w Vector) (r Vector) {
	r = NewVector(v.Len() + w.Len())
	copy(r.Data(), v.Data())
	copy(r.Data()[v.Len():], w.Data())
	return
}

func (v Vector) Min() (min float64) {
	data := v.Data()
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	data := v.Data()
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}
