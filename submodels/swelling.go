package submodels

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
)

// NoSwelling is the canonical zero-contribution variant of the
// particle swelling mechanism: it declares the mechanism's output
// variable as identically zero and contributes nothing else, so the
// assembly engine never has to know whether swelling is enabled.
type NoSwelling struct {
	Base
}

func NewNoSwelling() *NoSwelling { return &NoSwelling{} }

func (s *NoSwelling) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	if err := vars.Set(VarRadiusChange,
		expression.NewBroadcast(expression.NewScalar(0), meshes.NegativeElectrode)); err != nil {
		return nil, err
	}
	return vars, nil
}

// IsotropicSwelling derives the particle radius change rate from the
// local interfacial current density. It defines nothing fundamental;
// its one output is a coupled variable, so it exercises the
// dependency-ordering path of the engine.
type IsotropicSwelling struct {
	Base
	omega float64
}

func NewIsotropicSwelling(params Parameters) (*IsotropicSwelling, error) {
	omega, err := params.Get("Swelling coefficient")
	if err != nil {
		return nil, err
	}
	return &IsotropicSwelling{omega: omega}, nil
}

func (s *IsotropicSwelling) GetCoupledVariables(vars *model.VariableMap) (*model.VariableMap, error) {
	jn, err := vars.Fetch(VarCurrentNeg)
	if err != nil {
		return nil, err
	}
	coupled := model.NewVariableMap()
	if err := coupled.Set(VarRadiusChange, expression.Scale(s.omega, jn)); err != nil {
		return nil, err
	}
	return coupled, nil
}
