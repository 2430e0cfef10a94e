package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorLinspace(t *testing.T) {
	v := NewVectorLinspace(0, 1, 5)
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, 0.0, v.AtVec(0))
	assert.Equal(t, 1.0, v.AtVec(4))
	assert.InDelta(t, 0.25, v.AtVec(1), 1.e-15)
}

func TestVectorConcat(t *testing.T) {
	v := NewVector(2, []float64{1, 2})
	w := NewVector(3, []float64{3, 4, 5})
	r := v.Concat(w)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, r.Data())
	// Concat copies; mutating the result leaves the inputs alone.
	r.Scale(10)
	assert.Equal(t, []float64{1, 2}, v.Data())
}

func TestVectorChaining(t *testing.T) {
	v := NewVector(3, []float64{1, 2, 3}).Copy().Scale(2).AddScalar(1)
	assert.Equal(t, []float64{3, 5, 7}, v.Data())
	assert.Equal(t, 3.0, v.Min())
	assert.Equal(t, 7.0, v.Max())
}

func TestCSRMulVec(t *testing.T) {
	m := NewDOK(2, 3).
		Set(0, 0, 1).
		Set(0, 2, 2).
		Set(1, 1, -1).ToCSR()
	out := make([]float64, 2)
	m.MulVec([]float64{1, 2, 3}, out)
	assert.Equal(t, []float64{7, -2}, out)
	assert.Panics(t, func() {
		m.MulVec([]float64{1, 2}, out)
	})
}

func TestRepeatBlockDiag(t *testing.T) {
	m := NewDOK(1, 2).Set(0, 0, 1).Set(0, 1, -1).ToCSR().RepeatBlockDiag(3)
	nr, nc := m.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 6, nc)
	out := make([]float64, 3)
	m.MulVec([]float64{1, 2, 10, 20, 100, 200}, out)
	assert.Equal(t, []float64{-1, -10, -100}, out)
}
