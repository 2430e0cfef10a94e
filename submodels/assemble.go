package submodels

import (
	"errors"
	"fmt"

	"github.com/notargets/gocell/model"
)

/*
Assemble collects the contributions of every submodel in registry
order into one continuous model, then checks it is structurally well
posed. Each call is independent: the engine holds no state, the shared
variable map is created here and never mutated after assembly, and the
returned model is immutable by convention.

Phase order is fixed: fundamental variables for all submodels, coupled
variables for all submodels, then the Set* phases. A DependencyError
from a coupled lookup is annotated with the submodel role that raised
it. Panics from expression construction (domain or shape mismatches)
are converted to ModelErrors naming the same role.
*/
func Assemble(name string, reg *Registry) (*model.Model, error) {
	m := model.New(name)

	for _, role := range reg.Roles() {
		s, _ := reg.Get(role)
		vars, err := capture(role, func() (*model.VariableMap, error) {
			return s.GetFundamentalVariables()
		})
		if err != nil {
			return nil, err
		}
		if err := m.Variables.Merge(vars); err != nil {
			return nil, err
		}
	}

	for _, role := range reg.Roles() {
		s, _ := reg.Get(role)
		vars, err := capture(role, func() (*model.VariableMap, error) {
			return s.GetCoupledVariables(m.Variables)
		})
		if err != nil {
			return nil, err
		}
		if err := m.Variables.Merge(vars); err != nil {
			return nil, err
		}
	}

	phases := []struct {
		name string
		call func(Submodel) error
	}{
		{"rhs", func(s Submodel) error { return s.SetRHS(m.Variables) }},
		{"algebraic", func(s Submodel) error { return s.SetAlgebraic(m.Variables) }},
		{"boundary conditions", func(s Submodel) error { return s.SetBoundaryConditions(m.Variables) }},
		{"initial conditions", func(s Submodel) error { return s.SetInitialConditions(m.Variables) }},
		{"events", func(s Submodel) error { return s.SetEvents(m.Variables) }},
	}
	for _, phase := range phases {
		for _, role := range reg.Roles() {
			s, _ := reg.Get(role)
			if _, err := capture(role, func() (*model.VariableMap, error) {
				return nil, phase.call(s)
			}); err != nil {
				return nil, fmt.Errorf("submodel %q, %s phase: %w", role, phase.name, err)
			}
		}
	}

	for _, role := range reg.Roles() {
		s, _ := reg.Get(role)
		c := s.Collections()
		for varName, rhs := range c.RHS {
			if _, ok := m.RHS[varName]; ok {
				return nil, model.Errorf("duplicate rhs equation for %q (second from submodel %q)", varName, role)
			}
			m.RHS[varName] = rhs
		}
		for varName, residual := range c.Algebraic {
			if _, ok := m.Algebraic[varName]; ok {
				return nil, model.Errorf("duplicate algebraic equation for %q (second from submodel %q)", varName, role)
			}
			m.Algebraic[varName] = residual
		}
		for varName, ic := range c.InitialConditions {
			if _, ok := m.InitialConditions[varName]; ok {
				return nil, model.Errorf("duplicate initial condition for %q (second from submodel %q)", varName, role)
			}
			m.InitialConditions[varName] = ic
		}
		for varName, bc := range c.BoundaryConditions {
			if _, ok := m.BoundaryConditions[varName]; ok {
				return nil, model.Errorf("duplicate boundary conditions for %q (second from submodel %q)", varName, role)
			}
			m.BoundaryConditions[varName] = bc
		}
		m.Events = append(m.Events, c.Events...)
	}

	if err := m.CheckWellPosed(); err != nil {
		return nil, err
	}
	return m, nil
}

// capture runs one submodel phase, converting expression construction
// panics to ModelErrors and tagging DependencyErrors with the role.
func capture(role string, f func() (*model.VariableMap, error)) (vars *model.VariableMap, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = model.Errorf("submodel %q: %s", role, e.Error())
				return
			}
			panic(r)
		}
	}()
	vars, err = f()
	var de *model.DependencyError
	if errors.As(err, &de) && de.Role == "" {
		de.Role = role
	}
	return
}
