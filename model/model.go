package model

import (
	"strings"

	"github.com/notargets/gocell/expression"
)

type ConditionKind uint8

const (
	Dirichlet ConditionKind = iota
	Neumann
)

func (k ConditionKind) String() string {
	if k == Dirichlet {
		return "Dirichlet"
	}
	return "Neumann"
}

// BoundarySide pairs a boundary value (Dirichlet) or flux (Neumann)
// with its condition kind.
type BoundarySide struct {
	Value expression.Symbol
	Kind  ConditionKind
}

// BoundaryCondition holds both sides of a variable's 1-D domain.
type BoundaryCondition struct {
	Left, Right BoundarySide
}

// Event is a scalar indicator; integration stops when it crosses zero.
type Event struct {
	Name string
	Expr expression.Symbol
}

/*
Model is the continuous model produced by submodel assembly: the union
of variables, equations, boundary conditions, initial conditions and
events across the registry. It is built once per configuration,
immutable afterwards, and consumed by the discretiser.

RHS and Algebraic are keyed by variable name. A variable keyed in RHS
is integrated in time; a variable keyed in Algebraic is constrained by
a zero residual.
*/
type Model struct {
	Name               string
	Variables          *VariableMap
	RHS                map[string]expression.Symbol
	Algebraic          map[string]expression.Symbol
	InitialConditions  map[string]expression.Symbol
	BoundaryConditions map[string]BoundaryCondition
	Events             []Event
}

func New(name string) *Model {
	return &Model{
		Name:               name,
		Variables:          NewVariableMap(),
		RHS:                make(map[string]expression.Symbol),
		Algebraic:          make(map[string]expression.Symbol),
		InitialConditions:  make(map[string]expression.Symbol),
		BoundaryConditions: make(map[string]BoundaryCondition),
	}
}

// Unknowns returns the state variables of the model in variable map
// insertion order: every Variable leaf registered in Variables.
func (m *Model) Unknowns() (vars []*expression.Variable) {
	for _, name := range m.Variables.Names() {
		s, _ := m.Variables.Get(name)
		if v, ok := s.(*expression.Variable); ok {
			vars = append(vars, v)
		}
	}
	return
}

func domainKey(domains []string) string {
	if len(domains) == 0 {
		return "(scalar)"
	}
	return strings.Join(domains, "+")
}

/*
CheckWellPosed verifies the structural balance between equations and
unknowns, per domain, by counting. This is deliberately not a rank or
dependency analysis: a model with the right counts but linearly
dependent equations passes here and fails only at solve time.

Checks, in order:
  - every equation is keyed to a registered variable (ModelError);
  - no unknown has both an rhs and an algebraic equation (ModelError);
  - every unknown has an equation (UnderdeterminedError);
  - every unknown has an initial condition whose domain matches
    (ModelError);
  - per domain, no surplus equations keyed to derived variables
    (OverdeterminedError).
*/
func (m *Model) CheckWellPosed() error {
	unknowns := make(map[string]int)
	equations := make(map[string]int)
	for _, v := range m.Unknowns() {
		unknowns[domainKey(v.Domains())]++
	}
	for _, eqns := range []map[string]expression.Symbol{m.RHS, m.Algebraic} {
		for name, eqn := range eqns {
			s, ok := m.Variables.Get(name)
			if !ok {
				return Errorf("equation for %q but no such variable is defined", name)
			}
			if len(eqn.Domains()) != 0 && domainKey(eqn.Domains()) != domainKey(s.Domains()) {
				return Errorf("equation for %q is on domain %q, variable is on %q",
					name, domainKey(eqn.Domains()), domainKey(s.Domains()))
			}
			equations[domainKey(s.Domains())]++
		}
	}
	for name := range m.RHS {
		if _, ok := m.Algebraic[name]; ok {
			return Errorf("variable %q has both an rhs and an algebraic equation", name)
		}
	}
	for _, v := range m.Unknowns() {
		if _, ok := m.RHS[v.Name]; ok {
			continue
		}
		if _, ok := m.Algebraic[v.Name]; ok {
			continue
		}
		// No equation for this unknown: report it as an
		// undercount in its own domain.
		key := domainKey(v.Domains())
		return &UnderdeterminedError{Domain: key, Equations: equations[key], Unknowns: unknowns[key]}
	}
	for _, v := range m.Unknowns() {
		ic, ok := m.InitialConditions[v.Name]
		if !ok {
			return Errorf("variable %q has no initial condition", v.Name)
		}
		if len(ic.Domains()) != 0 && domainKey(ic.Domains()) != domainKey(v.Domains()) {
			return Errorf("initial condition for %q is on domain %q, variable is on %q",
				v.Name, domainKey(ic.Domains()), domainKey(v.Domains()))
		}
	}
	// Every unknown now has exactly one equation, so the only
	// remaining per-domain imbalance is an overcount from equations
	// keyed to derived variables.
	for key, n := range equations {
		if n > unknowns[key] {
			return &OverdeterminedError{Domain: key, Equations: n, Unknowns: unknowns[key]}
		}
	}
	return nil
}
