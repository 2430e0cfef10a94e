package meshes

import (
	"fmt"

	"github.com/notargets/gocell/utils"
)

type CoordinateSystem uint8

const (
	Cartesian CoordinateSystem = iota
	Cylindrical
	Spherical
)

func (c CoordinateSystem) String() string {
	switch c {
	case Cartesian:
		return "cartesian"
	case Cylindrical:
		return "cylindrical"
	case Spherical:
		return "spherical"
	}
	return "unknown"
}

/*
SubMesh is a nonuniform 1-D finite volume mesh for one named domain.
Edges are the cell faces, nodes the cell centers; edges are strictly
increasing and there is always exactly one more edge than node.

Repeats > 1 marks a product layout: the same 1-D mesh replicated once
per cell of a secondary domain (e.g. a particle radial mesh repeated at
every electrode position). Discrete operators for such a submesh are
block diagonal with Repeats identical blocks.
*/
type SubMesh struct {
	Nodes, Edges utils.Vector
	Coord        CoordinateSystem
	Repeats      int
}

func NewSubMesh(coord CoordinateSystem, edges []float64) (*SubMesh, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("submesh requires at least 2 edges, got %d", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("submesh edges must be strictly increasing: edge[%d] = %g, edge[%d] = %g",
				i-1, edges[i-1], i, edges[i])
		}
	}
	n := len(edges) - 1
	nodes := utils.NewVector(n)
	nd := nodes.Data()
	for i := 0; i < n; i++ {
		nd[i] = 0.5 * (edges[i] + edges[i+1])
	}
	e := utils.NewVector(len(edges))
	copy(e.Data(), edges)
	return &SubMesh{Nodes: nodes, Edges: e, Coord: coord, Repeats: 1}, nil
}

// NewUniformSubMesh builds n equal cells spanning [a, b].
func NewUniformSubMesh(coord CoordinateSystem, a, b float64, n int) *SubMesh {
	sm, err := NewSubMesh(coord, utils.NewVectorLinspace(a, b, n+1).Data())
	if err != nil {
		panic(err)
	}
	return sm
}

// NumCells is the cell count of the underlying 1-D mesh, ignoring
// product replication.
func (sm *SubMesh) NumCells() int { return sm.Nodes.Len() }

// Points is the total cell-centered degrees of freedom including
// product replication.
func (sm *SubMesh) Points() int { return sm.Nodes.Len() * sm.Repeats }
