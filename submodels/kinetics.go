package submodels

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
)

/*
UniformKinetics imposes a uniform interfacial current distribution:
current enters through the negative electrode and leaves through the
positive, with zero reaction in the separator. It is the simplest
closure for the reaction rate and the mechanism other submodels couple
to, so it sits first in the standard registry.
*/
type UniformKinetics struct {
	Base
	j float64
}

func NewUniformKinetics(params Parameters) (*UniformKinetics, error) {
	j, err := params.Get("Interfacial current density")
	if err != nil {
		return nil, err
	}
	return &UniformKinetics{j: j}, nil
}

func (s *UniformKinetics) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	if err := vars.Set(VarCurrent, expression.NewPiecewise(meshes.WholeCell, []float64{s.j, 0, -s.j})); err != nil {
		return nil, err
	}
	if err := vars.Set(VarCurrentNeg,
		expression.NewBroadcast(expression.NewScalar(s.j), meshes.NegativeElectrode)); err != nil {
		return nil, err
	}
	return vars, nil
}
