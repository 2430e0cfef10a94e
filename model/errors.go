package model

import "fmt"

/*
The error taxonomy mirrors the assembly/discretisation pipeline: every
structural defect in a model is reported synchronously, before any
numeric integration begins, carrying the offending variable or domain
name. None of these are retryable; they indicate a programming or
configuration error.
*/

// ModelError reports a malformed model: duplicate or missing variable,
// an equation keyed to an unknown name, a missing initial condition.
type ModelError struct {
	Msg string
}

func (e *ModelError) Error() string { return "model error: " + e.Msg }

func Errorf(format string, args ...interface{}) *ModelError {
	return &ModelError{Msg: fmt.Sprintf(format, args...)}
}

// DependencyError reports a coupled-variable lookup that found no
// entry; it almost always indicates submodels registered in the wrong
// order.
type DependencyError struct {
	Name string // the missing variable
	Role string // the submodel role that asked, filled in by the engine
}

func (e *DependencyError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("dependency error: no variable named %q", e.Name)
	}
	return fmt.Sprintf("dependency error: submodel %q references %q which is not defined yet (check submodel ordering)",
		e.Role, e.Name)
}

// UnderdeterminedError reports fewer equations than unknowns in one
// domain.
type UnderdeterminedError struct {
	Domain    string
	Equations int
	Unknowns  int
}

func (e *UnderdeterminedError) Error() string {
	return fmt.Sprintf("underdetermined model: domain %q has %d equations for %d unknowns",
		e.Domain, e.Equations, e.Unknowns)
}

// OverdeterminedError reports more equations than unknowns in one
// domain.
type OverdeterminedError struct {
	Domain    string
	Equations int
	Unknowns  int
}

func (e *OverdeterminedError) Error() string {
	return fmt.Sprintf("overdetermined model: domain %q has %d equations for %d unknowns",
		e.Domain, e.Equations, e.Unknowns)
}

// DiscretisationError reports a variable or domain the discretiser
// cannot process: a missing boundary condition under a spatial
// operator, or a domain with no assigned spatial method.
type DiscretisationError struct {
	Msg string
}

func (e *DiscretisationError) Error() string { return "discretisation error: " + e.Msg }

func DiscErrorf(format string, args ...interface{}) *DiscretisationError {
	return &DiscretisationError{Msg: fmt.Sprintf(format, args...)}
}
