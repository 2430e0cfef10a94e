package submodels

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/model"
)

/*
Submodel is the contract every physics fragment implements. The
assembly engine drives the methods in a fixed order across the whole
registry:

 1. GetFundamentalVariables for every submodel, accumulating the
    shared variable map;
 2. GetCoupledVariables for every submodel, in the same order, given
    the accumulated map;
 3. the Set* phases, which populate the submodel's private collections
    from the full map.

Concrete variants differ only in the expressions they produce, never
in the calling protocol. A mechanism that is switched off still
registers a variant (typically contributing zero valued expressions),
so the engine never special-cases absence.
*/
type Submodel interface {
	GetFundamentalVariables() (*model.VariableMap, error)
	GetCoupledVariables(vars *model.VariableMap) (*model.VariableMap, error)
	SetRHS(vars *model.VariableMap) error
	SetAlgebraic(vars *model.VariableMap) error
	SetBoundaryConditions(vars *model.VariableMap) error
	SetInitialConditions(vars *model.VariableMap) error
	SetEvents(vars *model.VariableMap) error
	Collections() *Collections
}

// Collections are a submodel's private equation, boundary condition
// and event stores, populated by the Set* phases and merged into the
// model by the engine.
type Collections struct {
	RHS                map[string]expression.Symbol
	Algebraic          map[string]expression.Symbol
	InitialConditions  map[string]expression.Symbol
	BoundaryConditions map[string]model.BoundaryCondition
	Events             []model.Event
}

// Base provides no-op defaults for every contract method. Concrete
// submodels embed it and override only the phases they contribute to.
type Base struct {
	c Collections
}

func (b *Base) GetFundamentalVariables() (*model.VariableMap, error) {
	return model.NewVariableMap(), nil
}

func (b *Base) GetCoupledVariables(vars *model.VariableMap) (*model.VariableMap, error) {
	return model.NewVariableMap(), nil
}

func (b *Base) SetRHS(vars *model.VariableMap) error                { return nil }
func (b *Base) SetAlgebraic(vars *model.VariableMap) error          { return nil }
func (b *Base) SetBoundaryConditions(vars *model.VariableMap) error { return nil }
func (b *Base) SetInitialConditions(vars *model.VariableMap) error  { return nil }
func (b *Base) SetEvents(vars *model.VariableMap) error             { return nil }

func (b *Base) Collections() *Collections { return &b.c }

func (b *Base) AddRHS(name string, rhs expression.Symbol) {
	if b.c.RHS == nil {
		b.c.RHS = make(map[string]expression.Symbol)
	}
	b.c.RHS[name] = rhs
}

func (b *Base) AddAlgebraic(name string, residual expression.Symbol) {
	if b.c.Algebraic == nil {
		b.c.Algebraic = make(map[string]expression.Symbol)
	}
	b.c.Algebraic[name] = residual
}

func (b *Base) AddInitialCondition(name string, ic expression.Symbol) {
	if b.c.InitialConditions == nil {
		b.c.InitialConditions = make(map[string]expression.Symbol)
	}
	b.c.InitialConditions[name] = ic
}

func (b *Base) AddBoundaryCondition(name string, bc model.BoundaryCondition) {
	if b.c.BoundaryConditions == nil {
		b.c.BoundaryConditions = make(map[string]model.BoundaryCondition)
	}
	b.c.BoundaryConditions[name] = bc
}

func (b *Base) AddEvent(name string, expr expression.Symbol) {
	b.c.Events = append(b.c.Events, model.Event{Name: name, Expr: expr})
}
