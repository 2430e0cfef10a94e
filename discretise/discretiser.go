package discretise

import (
	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
)

// Slice is a variable's fixed assignment within the flat state
// vector, half open: y[Start:Stop].
type Slice struct {
	Start, Stop int
}

func (s Slice) Len() int { return s.Stop - s.Start }

/*
Discretiser walks expression trees over a mesh, replacing every
spatial operator node with a discrete matrix operator and every
variable with a slice of the flat state vector. Symbols are memoized
by structural key, so a subexpression shared between equations is
compiled once.

A Discretiser serves one mesh/model pair. Independent configurations
discretised concurrently must each build their own.
*/
type Discretiser struct {
	mesh    *meshes.Mesh
	methods map[string]SpatialMethod
	bcs     map[string]model.BoundaryCondition
	slices  map[string]Slice
	order   []string
	n       int
	memo    map[string]Evaluator
}

func New(mesh *meshes.Mesh, methods map[string]SpatialMethod) *Discretiser {
	return &Discretiser{
		mesh:    mesh,
		methods: methods,
		bcs:     make(map[string]model.BoundaryCondition),
		slices:  make(map[string]Slice),
		memo:    make(map[string]Evaluator),
	}
}

// SetBoundaryConditions registers the boundary conditions consulted
// when discretising gradients. ProcessModel calls this itself; it is
// exported for operator level use in tests and tooling.
func (d *Discretiser) SetBoundaryConditions(bcs map[string]model.BoundaryCondition) {
	for name, bc := range bcs {
		d.bcs[name] = bc
	}
}

// SetVariableSlices fixes the state vector layout: each variable
// receives a contiguous slice, in the given order. The layout never
// changes afterwards.
func (d *Discretiser) SetVariableSlices(vars []*expression.Variable) error {
	for _, v := range vars {
		size := 1
		if len(v.Domains()) != 0 {
			sm, err := d.submesh(v.Domains())
			if err != nil {
				return err
			}
			size = sm.Points()
		}
		d.slices[v.Name] = Slice{Start: d.n, Stop: d.n + size}
		d.order = append(d.order, v.Name)
		d.n += size
	}
	return nil
}

func (d *Discretiser) submesh(domains []string) (*meshes.SubMesh, error) {
	sm, err := d.mesh.Combine(domains...)
	if err != nil {
		return nil, model.DiscErrorf("%s", err.Error())
	}
	return sm, nil
}

func (d *Discretiser) methodFor(domains []string) (SpatialMethod, error) {
	for _, domain := range domains {
		if _, ok := d.methods[domain]; !ok {
			return nil, model.DiscErrorf("domain %q has no assigned spatial method", domain)
		}
	}
	return d.methods[domains[0]], nil
}

// ProcessSymbol compiles one expression tree into an evaluator.
func (d *Discretiser) ProcessSymbol(s expression.Symbol) (Evaluator, error) {
	if ev, ok := d.memo[s.Key()]; ok {
		return ev, nil
	}
	ev, err := d.processSymbol(s)
	if err != nil {
		return nil, err
	}
	d.memo[s.Key()] = ev
	return ev, nil
}

func (d *Discretiser) processSymbol(s expression.Symbol) (Evaluator, error) {
	switch n := s.(type) {
	case *expression.Scalar:
		return constEval{vals: []float64{n.Value}}, nil

	case *expression.Time:
		return timeEval{}, nil

	case *expression.Vector:
		sm, err := d.submesh(n.Domains())
		if err != nil {
			return nil, err
		}
		want := sm.Points()
		if n.OnEdges() {
			want = (sm.NumCells() + 1) * sm.Repeats
		}
		if len(n.Values) != want {
			return nil, model.DiscErrorf("vector %q has %d entries, domain %v requires %d",
				n.Key(), len(n.Values), n.Domains(), want)
		}
		return constEval{vals: n.Values}, nil

	case *expression.Variable:
		sl, ok := d.slices[n.Name]
		if !ok {
			return nil, model.DiscErrorf("variable %q has no assigned state slice", n.Name)
		}
		return sliceEval{start: sl.Start, stop: sl.Stop}, nil

	case *expression.Broadcast:
		child, err := d.ProcessSymbol(n.Child)
		if err != nil {
			return nil, err
		}
		if child.Len() != 1 {
			return nil, model.DiscErrorf("broadcast child %q is not scalar valued", n.Child.Key())
		}
		sm, err := d.submesh(n.Domains())
		if err != nil {
			return nil, err
		}
		return broadcastEval{child: child, n: sm.Points()}, nil

	case *expression.Piecewise:
		var vals []float64
		for i, domain := range n.Domains() {
			sm, err := d.submesh([]string{domain})
			if err != nil {
				return nil, err
			}
			for k := 0; k < sm.Points(); k++ {
				vals = append(vals, n.Values[i])
			}
		}
		return constEval{vals: vals}, nil

	case *expression.Binary:
		return d.processBinary(n)

	case *expression.Function:
		child, err := d.ProcessSymbol(n.Child)
		if err != nil {
			return nil, err
		}
		return funcEval{f: n.F, child: child}, nil

	case *expression.Reduction:
		child, err := d.ProcessSymbol(n.Child)
		if err != nil {
			return nil, err
		}
		return reduceEval{min: n.IsMin(), child: child}, nil

	case *expression.Gradient:
		return d.processGradient(n)

	case *expression.Divergence:
		return d.processDivergence(n)
	}
	return nil, model.DiscErrorf("cannot discretise symbol %q", s.Key())
}

func (d *Discretiser) processBinary(n *expression.Binary) (Evaluator, error) {
	l, err := d.ProcessSymbol(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := d.ProcessSymbol(n.Right)
	if err != nil {
		return nil, err
	}
	if l.Len() != r.Len() && l.Len() != 1 && r.Len() != 1 {
		return nil, model.DiscErrorf("operands of %q have incompatible lengths %d and %d",
			n.Key(), l.Len(), r.Len())
	}
	size := l.Len()
	if r.Len() > size {
		size = r.Len()
	}
	var op func(a, b float64) float64
	switch n.Op {
	case expression.OpAdd:
		op = func(a, b float64) float64 { return a + b }
	case expression.OpSub:
		op = func(a, b float64) float64 { return a - b }
	case expression.OpMul:
		op = func(a, b float64) float64 { return a * b }
	case expression.OpDiv:
		op = func(a, b float64) float64 { return a / b }
	}
	return binEval{op: op, l: l, r: r, n: size}, nil
}

func (d *Discretiser) processGradient(n *expression.Gradient) (Evaluator, error) {
	sm, err := d.submesh(n.Domains())
	if err != nil {
		return nil, err
	}
	method, err := d.methodFor(n.Domains())
	if err != nil {
		return nil, err
	}
	bc, err := d.boundaryOps(n.Child, sm)
	if err != nil {
		return nil, err
	}
	child, err := d.ProcessSymbol(n.Child)
	if err != nil {
		return nil, err
	}
	if child.Len() != sm.Points() {
		return nil, model.DiscErrorf("grad argument %q has length %d, domain %v requires %d",
			n.Child.Key(), child.Len(), n.Domains(), sm.Points())
	}
	return method.Gradient(sm, bc).Apply(child), nil
}

func (d *Discretiser) processDivergence(n *expression.Divergence) (Evaluator, error) {
	sm, err := d.submesh(n.Domains())
	if err != nil {
		return nil, err
	}
	method, err := d.methodFor(n.Domains())
	if err != nil {
		return nil, err
	}
	child, err := d.ProcessSymbol(n.Child)
	if err != nil {
		return nil, err
	}
	want := (sm.NumCells() + 1) * sm.Repeats
	if child.Len() != want {
		return nil, model.DiscErrorf("div argument %q has length %d, domain %v requires %d face values",
			n.Child.Key(), child.Len(), n.Domains(), want)
	}
	return method.Divergence(sm).Apply(child), nil
}

// boundaryOps finds the boundary conditions for the variable beneath
// a gradient and discretises their value expressions. A gradient over
// a finite domain with no registered boundary condition cannot be
// discretised.
func (d *Discretiser) boundaryOps(child expression.Symbol, sm *meshes.SubMesh) (BoundaryOps, error) {
	vars := expression.Variables(child)
	for _, v := range vars {
		bc, ok := d.bcs[v.Name]
		if !ok {
			continue
		}
		left, err := d.boundaryValue(v.Name, bc.Left.Value, sm)
		if err != nil {
			return BoundaryOps{}, err
		}
		right, err := d.boundaryValue(v.Name, bc.Right.Value, sm)
		if err != nil {
			return BoundaryOps{}, err
		}
		return BoundaryOps{
			LeftKind:  bc.Left.Kind,
			RightKind: bc.Right.Kind,
			Left:      left,
			Right:     right,
		}, nil
	}
	name := child.Key()
	if len(vars) != 0 {
		name = vars[0].Name
	}
	return BoundaryOps{}, model.DiscErrorf("no boundary conditions registered for %q under grad", name)
}

func (d *Discretiser) boundaryValue(varName string, value expression.Symbol, sm *meshes.SubMesh) (Evaluator, error) {
	ev, err := d.ProcessSymbol(value)
	if err != nil {
		return nil, err
	}
	if ev.Len() != 1 && ev.Len() != sm.Repeats {
		return nil, model.DiscErrorf("boundary value for %q has length %d, want 1 or %d (one per product block)",
			varName, ev.Len(), sm.Repeats)
	}
	return ev, nil
}
