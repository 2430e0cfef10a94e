package discretise

import (
	"github.com/notargets/gocell/utils"
)

/*
Evaluator is a compiled, fully discrete expression: every spatial
operator has been replaced by a sparse matrix and every variable by a
slice of the flat state vector. Evaluators are deterministic and side
effect free, so a solver may retry a step with a different trial
state, and one evaluator may be shared read-only across runs.
*/
type Evaluator interface {
	// Len is the fixed output length.
	Len() int
	// Evaluate returns a freshly allocated result; y is never
	// written to.
	Evaluate(t float64, y []float64) []float64
}

type constEval struct {
	vals []float64
}

func (e constEval) Len() int { return len(e.vals) }
func (e constEval) Evaluate(t float64, y []float64) []float64 {
	out := make([]float64, len(e.vals))
	copy(out, e.vals)
	return out
}

type timeEval struct{}

func (e timeEval) Len() int { return 1 }
func (e timeEval) Evaluate(t float64, y []float64) []float64 {
	return []float64{t}
}

// sliceEval picks a variable's slice out of the state vector. The
// returned slice aliases y; combining evaluators never write through
// their children's results.
type sliceEval struct {
	start, stop int
}

func (e sliceEval) Len() int { return e.stop - e.start }
func (e sliceEval) Evaluate(t float64, y []float64) []float64 {
	return y[e.start:e.stop]
}

type broadcastEval struct {
	child Evaluator
	n     int
}

func (e broadcastEval) Len() int { return e.n }
func (e broadcastEval) Evaluate(t float64, y []float64) []float64 {
	v := e.child.Evaluate(t, y)[0]
	out := make([]float64, e.n)
	for i := range out {
		out[i] = v
	}
	return out
}

type binEval struct {
	op   func(a, b float64) float64
	l, r Evaluator
	n    int
}

func (e binEval) Len() int { return e.n }
func (e binEval) Evaluate(t float64, y []float64) []float64 {
	a := e.l.Evaluate(t, y)
	b := e.r.Evaluate(t, y)
	out := make([]float64, e.n)
	switch {
	case len(a) == 1 && len(b) != 1:
		for i := range out {
			out[i] = e.op(a[0], b[i])
		}
	case len(b) == 1 && len(a) != 1:
		for i := range out {
			out[i] = e.op(a[i], b[0])
		}
	default:
		for i := range out {
			out[i] = e.op(a[i], b[i])
		}
	}
	return out
}

type funcEval struct {
	f     func(float64) float64
	child Evaluator
}

func (e funcEval) Len() int { return e.child.Len() }
func (e funcEval) Evaluate(t float64, y []float64) []float64 {
	a := e.child.Evaluate(t, y)
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = e.f(v)
	}
	return out
}

type reduceEval struct {
	min   bool
	child Evaluator
}

func (e reduceEval) Len() int { return 1 }
func (e reduceEval) Evaluate(t float64, y []float64) []float64 {
	a := e.child.Evaluate(t, y)
	r := a[0]
	for _, v := range a {
		if e.min && v < r || !e.min && v > r {
			r = v
		}
	}
	return []float64{r}
}

// BCTerm injects one boundary contribution into an operator's output:
// out[Row] += Coeff * value, where value comes from the Block'th
// component of the discretised boundary expression (component 0 when
// the expression is uniform across a product layout).
type BCTerm struct {
	Row   int
	Coeff float64
	Value Evaluator
	Block int
}

// Operator is a discrete affine spatial operator: a sparse matrix
// plus boundary condition injectors.
type Operator struct {
	M  utils.CSR
	BC []BCTerm
}

func (op Operator) Apply(child Evaluator) Evaluator {
	return opEval{op: op, child: child}
}

type opEval struct {
	op    Operator
	child Evaluator
}

func (e opEval) Len() int {
	nr, _ := e.op.M.Dims()
	return nr
}

func (e opEval) Evaluate(t float64, y []float64) []float64 {
	nr, _ := e.op.M.Dims()
	out := make([]float64, nr)
	e.op.M.MulVec(e.child.Evaluate(t, y), out)
	for _, term := range e.op.BC {
		vals := term.Value.Evaluate(t, y)
		idx := 0
		if len(vals) != 1 {
			idx = term.Block
		}
		out[term.Row] += term.Coeff * vals[idx]
	}
	return out
}
