package discretise

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/model"
	"github.com/notargets/gocell/utils"
)

type boundEval struct {
	name string
	sl   Slice
	ev   Evaluator
}

// DiscreteEvent is a compiled scalar event indicator; integration
// should stop or flag when its value crosses zero.
type DiscreteEvent struct {
	Name string
	ev   Evaluator
}

func (e DiscreteEvent) Evaluate(t float64, y []float64) float64 {
	return e.ev.Evaluate(t, y)[0]
}

/*
DiscreteModel is the fully discrete system handed to an external
solver:

	M y' = f(t, y)

where the rows of f belonging to differential variables hold their
rhs, the rows belonging to algebraic variables hold the constraint
residual, and M is the diagonal mass matrix with ones on differential
rows and zeros on algebraic rows. Variable slice assignments are fixed
at discretisation time and never change. The model carries no per-run
state and is safe to share read-only across integration runs.
*/
type DiscreteModel struct {
	n         int
	order     []string
	slices    map[string]Slice
	rhs       []boundEval
	algebraic []boundEval
	events    []DiscreteEvent
	mass      utils.CSR
	y0        []float64
}

func (dm *DiscreteModel) Len() int { return dm.n }

// VariableNames returns the state layout order: differential
// variables first, then algebraic.
func (dm *DiscreteModel) VariableNames() []string { return dm.order }

func (dm *DiscreteModel) Slice(name string) (Slice, bool) {
	sl, ok := dm.slices[name]
	return sl, ok
}

// Extract returns a copy of one variable's slice of the state.
func (dm *DiscreteModel) Extract(name string, y []float64) ([]float64, error) {
	sl, ok := dm.slices[name]
	if !ok {
		return nil, model.DiscErrorf("no state slice for variable %q", name)
	}
	out := make([]float64, sl.Len())
	copy(out, y[sl.Start:sl.Stop])
	return out, nil
}

func (dm *DiscreteModel) HasAlgebraic() bool { return len(dm.algebraic) != 0 }

func (dm *DiscreteModel) MassMatrix() utils.CSR { return dm.mass }

// InitialConditions returns a fresh copy of the assembled initial
// state.
func (dm *DiscreteModel) InitialConditions() []float64 {
	y0 := make([]float64, dm.n)
	copy(y0, dm.y0)
	return y0
}

// RHS evaluates f(t, y): rhs values on differential slices, algebraic
// residuals on algebraic slices.
func (dm *DiscreteModel) RHS(t float64, y []float64) []float64 {
	out := make([]float64, dm.n)
	for _, be := range dm.rhs {
		copy(out[be.sl.Start:be.sl.Stop], be.ev.Evaluate(t, y))
	}
	for _, be := range dm.algebraic {
		copy(out[be.sl.Start:be.sl.Stop], be.ev.Evaluate(t, y))
	}
	return out
}

// Residual evaluates F(t, y, y') = M y' - f(t, y); a consistent state
// and derivative give zero.
func (dm *DiscreteModel) Residual(t float64, y, yp []float64) []float64 {
	out := make([]float64, dm.n)
	dm.mass.MulVec(yp, out)
	f := dm.RHS(t, y)
	for i := range out {
		out[i] -= f[i]
	}
	return out
}

func (dm *DiscreteModel) Events() []DiscreteEvent { return dm.events }

// EventValues evaluates every event indicator at (t, y).
func (dm *DiscreteModel) EventValues(t float64, y []float64) []float64 {
	out := make([]float64, len(dm.events))
	for i, e := range dm.events {
		out[i] = e.Evaluate(t, y)
	}
	return out
}

/*
ProcessModel discretises a continuous model over the discretiser's
mesh. The state layout places differential variables before algebraic
ones, each in variable map insertion order. Initial conditions must
not reference state variables; equations and events may reference any
registered variable.
*/
func (d *Discretiser) ProcessModel(m *model.Model) (*DiscreteModel, error) {
	if err := m.CheckWellPosed(); err != nil {
		return nil, err
	}
	d.SetBoundaryConditions(m.BoundaryConditions)

	var diffVars, algVars []*expression.Variable
	for _, v := range m.Unknowns() {
		if _, ok := m.RHS[v.Name]; ok {
			diffVars = append(diffVars, v)
		} else {
			algVars = append(algVars, v)
		}
	}
	if err := d.SetVariableSlices(append(diffVars, algVars...)); err != nil {
		return nil, err
	}

	dm := &DiscreteModel{
		n:      d.n,
		order:  d.order,
		slices: d.slices,
	}

	for _, v := range diffVars {
		ev, err := d.equationEval(m.RHS[v.Name], v)
		if err != nil {
			return nil, err
		}
		dm.rhs = append(dm.rhs, boundEval{name: v.Name, sl: d.slices[v.Name], ev: ev})
	}
	for _, v := range algVars {
		ev, err := d.equationEval(m.Algebraic[v.Name], v)
		if err != nil {
			return nil, err
		}
		dm.algebraic = append(dm.algebraic, boundEval{name: v.Name, sl: d.slices[v.Name], ev: ev})
	}

	dm.y0 = make([]float64, d.n)
	for _, v := range append(diffVars, algVars...) {
		ic := m.InitialConditions[v.Name]
		if len(expression.Variables(ic)) != 0 {
			return nil, model.DiscErrorf("initial condition for %q references state variables", v.Name)
		}
		ev, err := d.equationEval(ic, v)
		if err != nil {
			return nil, err
		}
		copy(dm.y0[d.slices[v.Name].Start:], ev.Evaluate(0, nil))
	}

	for _, event := range m.Events {
		ev, err := d.ProcessSymbol(event.Expr)
		if err != nil {
			return nil, err
		}
		if ev.Len() != 1 {
			return nil, model.DiscErrorf("event %q is not scalar valued", event.Name)
		}
		dm.events = append(dm.events, DiscreteEvent{Name: event.Name, ev: ev})
	}

	mass := utils.NewDOK(d.n, d.n)
	for _, v := range diffVars {
		sl := d.slices[v.Name]
		for i := sl.Start; i < sl.Stop; i++ {
			mass.Set(i, i, 1)
		}
	}
	dm.mass = mass.ToCSR()
	return dm, nil
}

// equationEval compiles one equation (or initial condition) and fits
// it to its variable's slice, broadcasting a scalar result over the
// slice when needed.
func (d *Discretiser) equationEval(eqn expression.Symbol, v *expression.Variable) (Evaluator, error) {
	ev, err := d.ProcessSymbol(eqn)
	if err != nil {
		return nil, err
	}
	size := d.slices[v.Name].Len()
	if ev.Len() == size {
		return ev, nil
	}
	if ev.Len() == 1 {
		return broadcastEval{child: ev, n: size}, nil
	}
	return nil, model.DiscErrorf("equation for %q has length %d, variable slice has %d",
		v.Name, ev.Len(), size)
}
