package expression

import "fmt"

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	return [...]string{"+", "-", "*", "/"}[op]
}

// Binary is an elementwise combination of two symbols sharing a
// compatible domain.
type Binary struct {
	Op          BinaryOp
	Left, Right Symbol
	domains     []string
	onEdges     bool
}

func newBinary(op BinaryOp, l, r Symbol) *Binary {
	name := fmt.Sprintf("op %q", op)
	return &Binary{
		Op:      op,
		Left:    l,
		Right:   r,
		domains: mergeDomains(name, l, r),
		onEdges: mergeEdges(name, l, r),
	}
}

func Add(l, r Symbol) Symbol { return newBinary(OpAdd, l, r) }
func Sub(l, r Symbol) Symbol { return newBinary(OpSub, l, r) }
func Mul(l, r Symbol) Symbol { return newBinary(OpMul, l, r) }
func Divide(l, r Symbol) Symbol { return newBinary(OpDiv, l, r) }
func Scale(c float64, s Symbol) Symbol {
	return newBinary(OpMul, NewScalar(c), s)
}
func Neg(s Symbol) Symbol { return Scale(-1, s) }

func (s *Binary) Domains() []string { return s.domains }
func (s *Binary) Children() []Symbol { return []Symbol{s.Left, s.Right} }
func (s *Binary) OnEdges() bool { return s.onEdges }
func (s *Binary) Key() string {
	return fmt.Sprintf("(%s %s %s)", s.Op, s.Left.Key(), s.Right.Key())
}

// Function applies a pointwise scalar function. Name participates in
// the structural key, so distinct functions must carry distinct names.
type Function struct {
	Name  string
	F     func(float64) float64
	Child Symbol
}

func NewFunction(name string, f func(float64) float64, child Symbol) *Function {
	return &Function{Name: name, F: f, Child: child}
}

func (s *Function) Domains() []string { return s.Child.Domains() }
func (s *Function) Children() []Symbol { return []Symbol{s.Child} }
func (s *Function) OnEdges() bool { return s.Child.OnEdges() }
func (s *Function) Key() string { return fmt.Sprintf("%s(%s)", s.Name, s.Child.Key()) }

// Gradient is the unevaluated spatial gradient of a cell-valued field.
// The result is face-valued. Discretising it requires boundary
// conditions for every Variable beneath it.
type Gradient struct {
	Child Symbol
}

func Grad(child Symbol) *Gradient {
	if len(child.Domains()) == 0 {
		panicf("grad of domain independent %q", child.Key())
	}
	if child.OnEdges() {
		panicf("grad requires a cell-valued argument, %q is face-valued", child.Key())
	}
	return &Gradient{Child: child}
}

func (s *Gradient) Domains() []string { return s.Child.Domains() }
func (s *Gradient) Children() []Symbol { return []Symbol{s.Child} }
func (s *Gradient) OnEdges() bool { return true }
func (s *Gradient) Key() string { return fmt.Sprintf("grad(%s)", s.Child.Key()) }

// Divergence is the unevaluated spatial divergence of a face-valued
// flux. The result is cell-valued.
type Divergence struct {
	Child Symbol
}

func Div(child Symbol) *Divergence {
	if len(child.Domains()) == 0 {
		panicf("div of domain independent %q", child.Key())
	}
	if !child.OnEdges() {
		panicf("div requires a face-valued argument, %q is cell-valued", child.Key())
	}
	return &Divergence{Child: child}
}

func (s *Divergence) Domains() []string { return s.Child.Domains() }
func (s *Divergence) Children() []Symbol { return []Symbol{s.Child} }
func (s *Divergence) OnEdges() bool { return false }
func (s *Divergence) Key() string { return fmt.Sprintf("div(%s)", s.Child.Key()) }

type reduceKind uint8

const (
	reduceMin reduceKind = iota
	reduceMax
)

// Reduction collapses a field to a single domain independent scalar.
// Used for event indicators such as a minimum concentration cutoff.
type Reduction struct {
	Kind  reduceKind
	Child Symbol
}

func Min(child Symbol) *Reduction { return &Reduction{Kind: reduceMin, Child: child} }
func Max(child Symbol) *Reduction { return &Reduction{Kind: reduceMax, Child: child} }

// IsMin distinguishes the two reductions without exposing the kind.
func (s *Reduction) IsMin() bool { return s.Kind == reduceMin }

func (s *Reduction) Domains() []string { return nil }
func (s *Reduction) Children() []Symbol { return []Symbol{s.Child} }
func (s *Reduction) OnEdges() bool { return false }
func (s *Reduction) Key() string {
	if s.Kind == reduceMin {
		return fmt.Sprintf("min(%s)", s.Child.Key())
	}
	return fmt.Sprintf("max(%s)", s.Child.Key())
}

// Variables returns every distinct Variable leaf beneath s, in
// depth-first order.
func Variables(s Symbol) (vars []*Variable) {
	seen := make(map[string]bool)
	var walk func(Symbol)
	walk = func(n Symbol) {
		if v, ok := n.(*Variable); ok {
			if !seen[v.Name] {
				seen[v.Name] = true
				vars = append(vars, v)
			}
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(s)
	return
}
