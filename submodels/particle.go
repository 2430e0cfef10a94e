package submodels

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
)

/*
FickianParticle models solid diffusion in a spherical particle:

	dc/dt = div( D grad(c) )

with a symmetry condition at the particle center and a prescribed
intercalation flux at the surface. With xResolved set, the particle
mesh is replicated across electrode positions and the surface flux
varies with position (taken from the kinetics submodel); otherwise a
single representative particle sees a uniform flux.
*/
type FickianParticle struct {
	Base
	d         float64
	c0        float64
	cMin      float64
	fluxCoeff float64
	xResolved bool
}

func NewFickianParticle(params Parameters, xResolved bool) (*FickianParticle, error) {
	s := &FickianParticle{xResolved: xResolved}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"Particle diffusivity", &s.d},
		{"Initial concentration", &s.c0},
		{"Minimum concentration cutoff", &s.cMin},
		{"Surface flux coefficient", &s.fluxCoeff},
	} {
		v, err := params.Get(p.name)
		if err != nil {
			return nil, err
		}
		*p.dst = v
	}
	return s, nil
}

func (s *FickianParticle) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	if err := vars.Set(VarConcentration,
		expression.NewVariable(VarConcentration, meshes.NegativeParticle)); err != nil {
		return nil, err
	}
	return vars, nil
}

func (s *FickianParticle) SetRHS(vars *model.VariableMap) error {
	c, err := vars.Fetch(VarConcentration)
	if err != nil {
		return err
	}
	s.AddRHS(VarConcentration, expression.Div(expression.Scale(s.d, expression.Grad(c))))
	return nil
}

func (s *FickianParticle) SetBoundaryConditions(vars *model.VariableMap) error {
	var surf expression.Symbol
	if s.xResolved {
		jn, err := vars.Fetch(VarCurrentNeg)
		if err != nil {
			return err
		}
		surf = expression.Scale(-s.fluxCoeff, jn)
	} else {
		surf = expression.NewScalar(-s.fluxCoeff)
	}
	s.AddBoundaryCondition(VarConcentration, model.BoundaryCondition{
		Left:  model.BoundarySide{Value: expression.NewScalar(0), Kind: model.Neumann},
		Right: model.BoundarySide{Value: surf, Kind: model.Neumann},
	})
	return nil
}

func (s *FickianParticle) SetInitialConditions(vars *model.VariableMap) error {
	s.AddInitialCondition(VarConcentration,
		expression.NewBroadcast(expression.NewScalar(s.c0), meshes.NegativeParticle))
	return nil
}

func (s *FickianParticle) SetEvents(vars *model.VariableMap) error {
	c, err := vars.Fetch(VarConcentration)
	if err != nil {
		return err
	}
	s.AddEvent("Minimum concentration cut-off",
		expression.Sub(expression.Min(c), expression.NewScalar(s.cMin)))
	return nil
}
