package submodels

import (
	"errors"
	"testing"

	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleStandardCell(t *testing.T) {
	reg, err := NewStandardCell(DefaultParameters(), DefaultOptions())
	require.NoError(t, err)
	m, err := Assemble("standard cell", reg)
	require.NoError(t, err)

	for _, name := range []string{
		VarCurrent, VarCurrentNeg, VarPorosity, VarPorosityChange,
		VarConcentration, VarRadiusChange,
	} {
		_, ok := m.Variables.Get(name)
		assert.True(t, ok, name)
	}
	// With constant porosity the only state is the concentration.
	assert.Len(t, m.RHS, 1)
	assert.Contains(t, m.RHS, VarConcentration)
	assert.Empty(t, m.Algebraic)
	assert.Contains(t, m.BoundaryConditions, VarConcentration)

	var names []string
	for _, ev := range m.Events {
		names = append(names, ev.Name)
	}
	assert.Contains(t, names, "Minimum concentration cut-off")
}

func TestAssembleReactionDrivenPorosity(t *testing.T) {
	opts := DefaultOptions()
	opts.Porosity = "reaction driven"
	reg, err := NewStandardCell(DefaultParameters(), opts)
	require.NoError(t, err)
	m, err := Assemble("standard cell", reg)
	require.NoError(t, err)

	assert.Contains(t, m.RHS, VarPorosity)
	assert.Contains(t, m.RHS, VarConcentration)
	assert.Contains(t, m.InitialConditions, VarPorosity)

	var names []string
	for _, ev := range m.Events {
		names = append(names, ev.Name)
	}
	assert.Contains(t, names, "Zero porosity cut-off")
}

func TestUnknownOptionValues(t *testing.T) {
	opts := DefaultOptions()
	opts.Porosity = "variable"
	_, err := NewStandardCell(DefaultParameters(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "porosity")

	opts = DefaultOptions()
	opts.Swelling = "anisotropic"
	_, err = NewStandardCell(DefaultParameters(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swelling")
}

// A registry holding only the swelling submodel has no interfacial
// current defined, so the coupled-phase lookup must fail and name both
// the missing variable and the role that asked for it.
func TestDependencyErrorNamesRole(t *testing.T) {
	s, err := NewIsotropicSwelling(DefaultParameters())
	require.NoError(t, err)
	reg := NewRegistry().Add("particle swelling", s)
	_, err = Assemble("broken", reg)
	require.Error(t, err)
	var de *model.DependencyError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, VarCurrentNeg, de.Name)
	assert.Equal(t, "particle swelling", de.Role)
}

type rogueKinetics struct {
	Base
}

func (s *rogueKinetics) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	err := vars.Set(VarCurrent, expression.NewScalar(1))
	return vars, err
}

func TestDuplicateVariableAcrossSubmodels(t *testing.T) {
	reg, err := NewStandardCell(DefaultParameters(), DefaultOptions())
	require.NoError(t, err)
	reg.Add("rogue", &rogueKinetics{})
	_, err = Assemble("broken", reg)
	require.Error(t, err)
	var me *model.ModelError
	assert.True(t, errors.As(err, &me))
	assert.Contains(t, err.Error(), VarCurrent)
}

// Swapping the no-op swelling variant for the isotropic one must
// change the radius change expression and nothing else: the engine
// treats a disabled mechanism as just another submodel.
func TestNoOpVariantLeavesRestUnchanged(t *testing.T) {
	regOff, err := NewStandardCell(DefaultParameters(), DefaultOptions())
	require.NoError(t, err)
	mOff, err := Assemble("cell", regOff)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Swelling = "isotropic"
	regOn, err := NewStandardCell(DefaultParameters(), opts)
	require.NoError(t, err)
	mOn, err := Assemble("cell", regOn)
	require.NoError(t, err)

	assert.Equal(t, mOff.Variables.Names(), mOn.Variables.Names())
	for _, name := range mOff.Variables.Names() {
		a, _ := mOff.Variables.Get(name)
		b, _ := mOn.Variables.Get(name)
		if name == VarRadiusChange {
			assert.NotEqual(t, a.Key(), b.Key())
			continue
		}
		assert.Equal(t, a.Key(), b.Key(), name)
	}

	// The no-op variant contributes a literal zero broadcast.
	rc, _ := mOff.Variables.Get(VarRadiusChange)
	zero := expression.NewBroadcast(expression.NewScalar(0), meshes.NegativeElectrode)
	assert.Equal(t, zero.Key(), rc.Key())
}

// appliedCurrent is a minimal submodel with a scalar algebraic
// constraint, covering the algebraic phase end to end.
type appliedCurrent struct {
	Base
	target float64
}

func (s *appliedCurrent) GetFundamentalVariables() (*model.VariableMap, error) {
	vars := model.NewVariableMap()
	err := vars.Set("Applied current", expression.NewVariable("Applied current"))
	return vars, err
}

func (s *appliedCurrent) SetAlgebraic(vars *model.VariableMap) error {
	i, err := vars.Fetch("Applied current")
	if err != nil {
		return err
	}
	s.AddAlgebraic("Applied current", expression.Sub(i, expression.NewScalar(s.target)))
	return nil
}

func (s *appliedCurrent) SetInitialConditions(vars *model.VariableMap) error {
	s.AddInitialCondition("Applied current", expression.NewScalar(s.target))
	return nil
}

func TestAlgebraicSubmodel(t *testing.T) {
	reg := NewRegistry().Add("applied current", &appliedCurrent{target: 2})
	m, err := Assemble("circuit", reg)
	require.NoError(t, err)
	assert.Contains(t, m.Algebraic, "Applied current")
	assert.Empty(t, m.RHS)
}

type duplicateRHS struct {
	Base
}

func (s *duplicateRHS) SetRHS(vars *model.VariableMap) error {
	c, err := vars.Fetch(VarConcentration)
	if err != nil {
		return err
	}
	s.AddRHS(VarConcentration, expression.Scale(0, c))
	return nil
}

func TestDuplicateEquation(t *testing.T) {
	reg, err := NewStandardCell(DefaultParameters(), DefaultOptions())
	require.NoError(t, err)
	reg.Add("rival particle", &duplicateRHS{})
	_, err = Assemble("broken", reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rhs")
	assert.Contains(t, err.Error(), "rival particle")
}
