package model

import (
	"github.com/notargets/gocell/expression"
)

// VariableMap is the shared, insertion ordered mapping from variable
// name to expression that grows during assembly. Each assembly call
// constructs its own map; nothing is global.
type VariableMap struct {
	names []string
	m     map[string]expression.Symbol
}

func NewVariableMap() *VariableMap {
	return &VariableMap{m: make(map[string]expression.Symbol)}
}

// Set registers a new variable. A duplicate name is a ModelError:
// every variable has exactly one primary owner.
func (vm *VariableMap) Set(name string, s expression.Symbol) error {
	if _, ok := vm.m[name]; ok {
		return Errorf("duplicate variable %q: already defined by another submodel", name)
	}
	vm.names = append(vm.names, name)
	vm.m[name] = s
	return nil
}

func (vm *VariableMap) Get(name string) (expression.Symbol, bool) {
	s, ok := vm.m[name]
	return s, ok
}

// Fetch is Get with a DependencyError on a missing name, for use
// inside GetCoupledVariables implementations.
func (vm *VariableMap) Fetch(name string) (expression.Symbol, error) {
	s, ok := vm.m[name]
	if !ok {
		return nil, &DependencyError{Name: name}
	}
	return s, nil
}

// Names returns the insertion order. The returned slice is shared;
// callers must not modify it.
func (vm *VariableMap) Names() []string { return vm.names }

func (vm *VariableMap) Len() int { return len(vm.names) }

// Merge appends every entry of other, in other's order.
func (vm *VariableMap) Merge(other *VariableMap) error {
	for _, name := range other.names {
		if err := vm.Set(name, other.m[name]); err != nil {
			return err
		}
	}
	return nil
}
