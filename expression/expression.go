package expression

import (
	"fmt"
	"hash/fnv"
	"strings"
)

/*
Symbols form an immutable expression tree over named geometric domains.
Leaves are scalars, precomputed discrete vectors, the time coordinate and
model variables; interior nodes are elementwise algebra, pointwise
functions, reductions and the unevaluated spatial operators Grad and Div.

A symbol's domain is either empty (a domain independent scalar quantity,
broadcast against anything) or an ordered list of contiguous domain names
such as {"negative electrode", "separator", "positive electrode"}.

Construction panics on a domain or shape mismatch. The panic carries a
descriptive error and is recovered at the model assembly boundary, so
model authors see it as a ModelError rather than a stack trace.
*/
type Symbol interface {
	// Domains returns the ordered domain list, empty for domain
	// independent scalars.
	Domains() []string
	Children() []Symbol
	// Key is a structural identity: two symbols with equal keys
	// discretise to the same evaluator and are deduplicated.
	Key() string
	// OnEdges reports whether the symbol evaluates on cell faces
	// (flux-like) rather than cell centers.
	OnEdges() bool
}

// Scalar is a domain independent constant.
type Scalar struct {
	Value float64
}

func NewScalar(v float64) *Scalar { return &Scalar{Value: v} }

func (s *Scalar) Domains() []string { return nil }
func (s *Scalar) Children() []Symbol { return nil }
func (s *Scalar) Key() string { return fmt.Sprintf("num(%g)", s.Value) }
func (s *Scalar) OnEdges() bool { return false }

// Time is the time coordinate t, a domain independent scalar leaf.
type Time struct{}

func (s *Time) Domains() []string { return nil }
func (s *Time) Children() []Symbol { return nil }
func (s *Time) Key() string { return "t" }
func (s *Time) OnEdges() bool { return false }

// Vector is a precomputed discrete field over a domain, e.g. a flux
// sampled on cell faces. It is the only leaf whose discrete length is
// fixed at construction rather than taken from the mesh.
type Vector struct {
	Values  []float64
	domains []string
	onEdges bool
}

func NewVector(values []float64, domains ...string) *Vector {
	return &Vector{Values: values, domains: domains}
}

// NewEdgeVector builds a face-valued Vector, suitable as the argument
// of Div.
func NewEdgeVector(values []float64, domains ...string) *Vector {
	return &Vector{Values: values, domains: domains, onEdges: true}
}

func (s *Vector) Domains() []string { return s.domains }
func (s *Vector) Children() []Symbol { return nil }
func (s *Vector) OnEdges() bool { return s.onEdges }
func (s *Vector) Key() string {
	h := fnv.New64a()
	for _, v := range s.Values {
		fmt.Fprintf(h, "%g,", v)
	}
	return fmt.Sprintf("vec(%d;%x;%s)", len(s.Values), h.Sum64(), strings.Join(s.domains, "+"))
}

// Variable is an unknown field owned by exactly one submodel. During
// discretisation it resolves to a slice of the flat state vector.
type Variable struct {
	Name    string
	domains []string
}

// NewVariable declares an unknown over an ordered list of contiguous
// domains. An empty domain list declares a single scalar unknown.
func NewVariable(name string, domains ...string) *Variable {
	return &Variable{Name: name, domains: domains}
}

func (s *Variable) Domains() []string { return s.domains }
func (s *Variable) Children() []Symbol { return nil }
func (s *Variable) Key() string { return "var(" + s.Name + ")" }
func (s *Variable) OnEdges() bool { return false }

// Broadcast promotes a domain independent scalar expression onto a
// domain, where it evaluates to a constant-in-space field.
type Broadcast struct {
	Child   Symbol
	domains []string
}

func NewBroadcast(child Symbol, domains ...string) *Broadcast {
	if len(child.Domains()) != 0 {
		panicf("cannot broadcast %q: already has domain %v", child.Key(), child.Domains())
	}
	if len(domains) == 0 {
		panicf("broadcast of %q requires at least one target domain", child.Key())
	}
	return &Broadcast{Child: child, domains: domains}
}

func (s *Broadcast) Domains() []string { return s.domains }
func (s *Broadcast) Children() []Symbol { return []Symbol{s.Child} }
func (s *Broadcast) OnEdges() bool { return false }
func (s *Broadcast) Key() string {
	return fmt.Sprintf("bcast(%s;%s)", s.Child.Key(), strings.Join(s.domains, "+"))
}

// Piecewise is constant on each of an ordered list of contiguous
// domains, one value per domain. It is the natural form for material
// properties that jump at domain interfaces.
type Piecewise struct {
	Values  []float64
	domains []string
}

func NewPiecewise(domains []string, values []float64) *Piecewise {
	if len(domains) != len(values) {
		panicf("piecewise: %d domains but %d values", len(domains), len(values))
	}
	if len(domains) == 0 {
		panicf("piecewise requires at least one domain")
	}
	return &Piecewise{Values: values, domains: domains}
}

func (s *Piecewise) Domains() []string { return s.domains }
func (s *Piecewise) Children() []Symbol { return nil }
func (s *Piecewise) OnEdges() bool { return false }
func (s *Piecewise) Key() string {
	return fmt.Sprintf("pw(%v;%s)", s.Values, strings.Join(s.domains, "+"))
}

func panicf(format string, args ...interface{}) {
	panic(fmt.Errorf(format, args...))
}

func sameDomains(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mergeDomains implements the broadcast rule for binary operations:
// the children must share one domain list, or one child must be domain
// independent.
func mergeDomains(op string, l, r Symbol) []string {
	ld, rd := l.Domains(), r.Domains()
	switch {
	case len(ld) == 0:
		return rd
	case len(rd) == 0:
		return ld
	case sameDomains(ld, rd):
		return ld
	}
	panicf("%s: domain mismatch between %q on %v and %q on %v", op, l.Key(), ld, r.Key(), rd)
	return nil
}

func mergeEdges(op string, l, r Symbol) bool {
	le, re := l.OnEdges(), r.OnEdges()
	// A domain independent scalar broadcasts onto either nodes or edges.
	switch {
	case len(l.Domains()) == 0:
		return re
	case len(r.Domains()) == 0:
		return le
	case le != re:
		panicf("%s: %q is face-valued but %q is cell-valued", op, l.Key(), r.Key())
	}
	return le
}
