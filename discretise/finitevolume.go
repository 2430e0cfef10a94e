package discretise

import (
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
	"github.com/notargets/gocell/utils"
)

// BoundaryOps carries the discretised boundary conditions of the
// field a spatial operator acts on: one evaluator per side, with its
// condition kind. An evaluator has length 1 (uniform) or one entry
// per block of a product layout.
type BoundaryOps struct {
	LeftKind, RightKind model.ConditionKind
	Left, Right         Evaluator
}

/*
SpatialMethod converts the continuous operators over one submesh into
discrete sparse operators. The mapping from domain to method is chosen
at discretisation time; a domain with no assigned method is a
DiscretisationError.
*/
type SpatialMethod interface {
	// Gradient maps a cell-centered field (NumCells*Repeats) to a
	// face-centered field ((NumCells+1)*Repeats).
	Gradient(sm *meshes.SubMesh, bc BoundaryOps) Operator
	// Divergence maps a face-centered flux to a cell-centered
	// field.
	Divergence(sm *meshes.SubMesh) Operator
}

/*
FiniteVolume is the conservative finite volume method on a nonuniform
1-D mesh.

The gradient at an interior face is the two point difference between
the adjacent cell centers. At a boundary face the stencil uses a ghost
value synthesized from the boundary condition: a Dirichlet value sits
on the boundary itself and the one sided difference spans the true
half cell, which is second order accurate in the interior and first
order at the boundary; a Neumann flux is imposed on the face directly.

The divergence of a face flux is the net outflow over the cell,
normalized so the stencil is consistent with the pointwise divergence
at the cell center: face areas come from the coordinate system (A=1
Cartesian, A=r cylindrical, A=r² spherical; the 2pi/4pi factors
cancel) and the volume is node centered, V = A(r_node)·dr. For smooth
fluxes this is second order at every cell center, including the cell
touching a polar origin. Cartesian linear fluxes are reproduced to
machine precision.
*/
type FiniteVolume struct{}

func (fv FiniteVolume) Gradient(sm *meshes.SubMesh, bc BoundaryOps) Operator {
	var (
		n     = sm.NumCells()
		nodes = sm.Nodes.Data()
		edges = sm.Edges.Data()
		d     = utils.NewDOK(n+1, n)
		terms []BCTerm
	)
	for i := 1; i < n; i++ {
		dx := nodes[i] - nodes[i-1]
		d.Set(i, i-1, -1/dx)
		d.Set(i, i, 1/dx)
	}
	if bc.LeftKind == model.Dirichlet {
		half := nodes[0] - edges[0]
		d.Set(0, 0, 1/half)
		terms = append(terms, BCTerm{Row: 0, Coeff: -1 / half, Value: bc.Left})
	} else {
		terms = append(terms, BCTerm{Row: 0, Coeff: 1, Value: bc.Left})
	}
	if bc.RightKind == model.Dirichlet {
		half := edges[n] - nodes[n-1]
		d.Set(n, n-1, -1/half)
		terms = append(terms, BCTerm{Row: n, Coeff: 1 / half, Value: bc.Right})
	} else {
		terms = append(terms, BCTerm{Row: n, Coeff: 1, Value: bc.Right})
	}
	m := d.ToCSR()
	if sm.Repeats > 1 {
		m = m.RepeatBlockDiag(sm.Repeats)
		terms = replicateTerms(terms, sm.Repeats, n+1)
	}
	return Operator{M: m, BC: terms}
}

func (fv FiniteVolume) Divergence(sm *meshes.SubMesh) Operator {
	var (
		n     = sm.NumCells()
		nodes = sm.Nodes.Data()
		edges = sm.Edges.Data()
		d     = utils.NewDOK(n, n+1)
	)
	for i := 0; i < n; i++ {
		rl, rr := edges[i], edges[i+1]
		rn := nodes[i]
		var al, ar, v float64
		switch sm.Coord {
		case meshes.Cartesian:
			al, ar = 1, 1
			v = rr - rl
		case meshes.Cylindrical:
			al, ar = rl, rr
			v = rn * (rr - rl)
		case meshes.Spherical:
			al, ar = rl*rl, rr*rr
			v = rn * rn * (rr - rl)
		}
		d.Set(i, i, -al/v)
		d.Set(i, i+1, ar/v)
	}
	m := d.ToCSR()
	if sm.Repeats > 1 {
		m = m.RepeatBlockDiag(sm.Repeats)
	}
	return Operator{M: m}
}

// replicateTerms copies the single block boundary terms onto every
// block of a product layout. Block indexes which component of a
// position dependent boundary value each copy reads.
func replicateTerms(terms []BCTerm, repeats, rowsPerBlock int) []BCTerm {
	out := make([]BCTerm, 0, len(terms)*repeats)
	for b := 0; b < repeats; b++ {
		for _, term := range terms {
			term.Row += b * rowsPerBlock
			term.Block = b
			out = append(out, term)
		}
	}
	return out
}
