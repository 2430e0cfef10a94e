package submodels

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
)

func porosityParams(params Parameters) ([]float64, error) {
	eps := make([]float64, len(meshes.WholeCell))
	for i, name := range []string{
		"Negative electrode porosity",
		"Separator porosity",
		"Positive electrode porosity",
	} {
		v, err := params.Get(name)
		if err != nil {
			return nil, err
		}
		eps[i] = v
	}
	return eps, nil
}

/*
ConstantPorosity holds the electrode and separator porosities at their
initial values. The porosity field is a derived quantity, not an
unknown, and the porosity change is identically zero, so the submodel
contributes no equations and no events.
*/
type ConstantPorosity struct {
	Base
	eps []float64
}

func NewConstantPorosity(params Parameters) (*ConstantPorosity, error) {
	eps, err := porosityParams(params)
	if err != nil {
		return nil, err
	}
	return &ConstantPorosity{eps: eps}, nil
}

func (s *ConstantPorosity) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	if err := vars.Set(VarPorosity, expression.NewPiecewise(meshes.WholeCell, s.eps)); err != nil {
		return nil, err
	}
	if err := vars.Set(VarPorosityChange,
		expression.NewBroadcast(expression.NewScalar(0), meshes.WholeCell...)); err != nil {
		return nil, err
	}
	return vars, nil
}

/*
ReactionDrivenPorosity lets interfacial reaction products displace
pore volume: the porosity becomes a differential unknown over the
whole cell with d(eps)/dt = -deltaV * j, where j is the volumetric
interfacial current density provided by the kinetics submodel. Raises
an event when the porosity anywhere approaches zero.
*/
type ReactionDrivenPorosity struct {
	Base
	eps    []float64
	deltaV float64
}

func NewReactionDrivenPorosity(params Parameters) (*ReactionDrivenPorosity, error) {
	eps, err := porosityParams(params)
	if err != nil {
		return nil, err
	}
	deltaV, err := params.Get("Volume change factor")
	if err != nil {
		return nil, err
	}
	return &ReactionDrivenPorosity{eps: eps, deltaV: deltaV}, nil
}

func (s *ReactionDrivenPorosity) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	if err := vars.Set(VarPorosity, expression.NewVariable(VarPorosity, meshes.WholeCell...)); err != nil {
		return nil, err
	}
	return vars, nil
}

func (s *ReactionDrivenPorosity) GetCoupledVariables(vars *model.VariableMap) (*model.VariableMap, error) {
	j, err := vars.Fetch(VarCurrent)
	if err != nil {
		return nil, err
	}
	coupled := model.NewVariableMap()
	if err := coupled.Set(VarPorosityChange, expression.Scale(-s.deltaV, j)); err != nil {
		return nil, err
	}
	return coupled, nil
}

func (s *ReactionDrivenPorosity) SetRHS(vars *model.VariableMap) error {
	depsdt, err := vars.Fetch(VarPorosityChange)
	if err != nil {
		return err
	}
	s.AddRHS(VarPorosity, depsdt)
	return nil
}

func (s *ReactionDrivenPorosity) SetInitialConditions(vars *model.VariableMap) error {
	s.AddInitialCondition(VarPorosity, expression.NewPiecewise(meshes.WholeCell, s.eps))
	return nil
}

func (s *ReactionDrivenPorosity) SetEvents(vars *model.VariableMap) error {
	eps, err := vars.Fetch(VarPorosity)
	if err != nil {
		return err
	}
	s.AddEvent("Zero porosity cut-off", expression.Min(eps))
	return nil
}
