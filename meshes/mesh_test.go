package meshes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubMesh(t *testing.T) {
	sm, err := NewSubMesh(Cartesian, []float64{0, 0.1, 0.4, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, sm.NumCells())
	assert.Equal(t, 4, sm.Edges.Len())
	assert.True(t, near(sm.Nodes.AtVec(0), 0.05))
	assert.True(t, near(sm.Nodes.AtVec(1), 0.25))
	assert.True(t, near(sm.Nodes.AtVec(2), 0.7))

	_, err = NewSubMesh(Cartesian, []float64{0, 0.5, 0.5, 1})
	assert.Error(t, err)
	_, err = NewSubMesh(Cartesian, []float64{1})
	assert.Error(t, err)
}

func TestUniformSubMesh(t *testing.T) {
	sm := NewUniformSubMesh(Spherical, 0, 1, 10)
	assert.Equal(t, 10, sm.NumCells())
	assert.True(t, near(sm.Edges.AtVec(0), 0))
	assert.True(t, near(sm.Edges.AtVec(10), 1))
	assert.True(t, near(sm.Nodes.AtVec(0), 0.05))
	assert.Equal(t, Spherical, sm.Coord)
}

func TestCombine(t *testing.T) {
	m := NewCellMesh(10)
	combined, err := m.Combine(WholeCell...)
	require.NoError(t, err)
	assert.Equal(t, 30, combined.NumCells())
	assert.Equal(t, 31, combined.Edges.Len())
	// The interface edge appears once, so the combined mesh has a
	// single uniform face between adjacent domains.
	edges := combined.Edges.Data()
	for i := 1; i < len(edges); i++ {
		assert.True(t, edges[i] > edges[i-1])
	}
	assert.True(t, near(edges[10], 1./3.))
	assert.True(t, near(edges[len(edges)-1], 1))

	// Single domain passthrough.
	one, err := m.Combine(Separator)
	require.NoError(t, err)
	assert.Equal(t, 10, one.NumCells())

	// Out of order and gapped requests are rejected.
	_, err = m.Combine(Separator, NegativeElectrode)
	assert.Error(t, err)
	_, err = m.Combine(NegativeElectrode, PositiveElectrode)
	assert.Error(t, err)
}

func TestCombineInterfaceMismatch(t *testing.T) {
	m := NewMesh()
	require.NoError(t, m.Add("a", NewUniformSubMesh(Cartesian, 0, 1, 4)))
	require.NoError(t, m.Add("b", NewUniformSubMesh(Cartesian, 1.1, 2, 4)))
	_, err := m.Combine("a", "b")
	assert.Error(t, err)

	m2 := NewMesh()
	require.NoError(t, m2.Add("a", NewUniformSubMesh(Cartesian, 0, 1, 4)))
	require.NoError(t, m2.Add("b", NewUniformSubMesh(Spherical, 1, 2, 4)))
	_, err = m2.Combine("a", "b")
	assert.Error(t, err)
}

func TestProduct(t *testing.T) {
	m := NewCellMesh(8)
	require.NoError(t, m.Product(NegativeParticle, NegativeElectrode))
	sm, err := m.SubMesh(NegativeParticle)
	require.NoError(t, err)
	assert.Equal(t, 8, sm.Repeats)
	assert.Equal(t, 64, sm.Points())
	assert.Equal(t, 8, sm.NumCells())

	assert.Error(t, m.Product("no such domain", NegativeElectrode))
}

func TestProductImmutable(t *testing.T) {
	m := NewCellMesh(8)
	before, err := m.SubMesh(NegativeParticle)
	require.NoError(t, err)
	require.NoError(t, m.Product(NegativeParticle, NegativeElectrode))

	// A submesh fetched before the call keeps its layout.
	assert.Equal(t, 1, before.Repeats)
	after, err := m.SubMesh(NegativeParticle)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Repeats)

	// A second layout of the same domain is rejected.
	assert.Error(t, m.Product(NegativeParticle, Separator))
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1.e-12
}
