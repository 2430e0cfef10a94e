package discretise

import (
	"testing"

	"github.com/notargets/gocell/expression"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/model"
	"github.com/notargets/gocell/submodels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diffusionModel is heat conduction on a line: insulated on the left,
// held at 1 on the right, started from a uniform 0.5.
func diffusionModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("diffusion")
	c := expression.NewVariable("c", "line")
	require.NoError(t, m.Variables.Set("c", c))
	m.RHS["c"] = expression.Div(expression.Grad(c))
	m.BoundaryConditions["c"] = model.BoundaryCondition{
		Left:  model.BoundarySide{Value: expression.NewScalar(0), Kind: model.Neumann},
		Right: model.BoundarySide{Value: expression.NewScalar(1), Kind: model.Dirichlet},
	}
	m.InitialConditions["c"] = expression.NewScalar(0.5)
	m.Events = append(m.Events, model.Event{
		Name: "Cold cut-off",
		Expr: expression.Sub(expression.Min(c), expression.NewScalar(0.01)),
	})
	return m
}

func TestProcessDiffusionModel(t *testing.T) {
	n := 20
	_, d := lineMesh(t, n)
	dm, err := d.ProcessModel(diffusionModel(t))
	require.NoError(t, err)

	assert.Equal(t, n, dm.Len())
	assert.Equal(t, []string{"c"}, dm.VariableNames())
	sl, ok := dm.Slice("c")
	require.True(t, ok)
	assert.Equal(t, Slice{Start: 0, Stop: n}, sl)
	assert.False(t, dm.HasAlgebraic())

	y0 := dm.InitialConditions()
	for i, v := range y0 {
		assert.InDelta(t, 0.5, v, 1.e-15, "cell %d", i)
	}

	// The mass matrix of a purely differential model is the identity.
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	out := make([]float64, n)
	dm.MassMatrix().MulVec(ones, out)
	assert.Equal(t, ones, out)

	// From a uniform state every interior flux vanishes; only the
	// Dirichlet wall drives the last cell, and it drives it upward.
	f := dm.RHS(0, y0)
	for i := 0; i < n-1; i++ {
		assert.InDelta(t, 0, f[i], 1.e-12, "cell %d", i)
	}
	assert.Greater(t, f[n-1], 0.0)

	ev := dm.EventValues(0, y0)
	require.Len(t, ev, 1)
	assert.InDelta(t, 0.49, ev[0], 1.e-15)
}

func TestProcessModelWithAlgebraic(t *testing.T) {
	n := 10
	_, d := lineMesh(t, n)
	m := diffusionModel(t)
	i := expression.NewVariable("I")
	require.NoError(t, m.Variables.Set("I", i))
	m.Algebraic["I"] = expression.Sub(i, expression.NewScalar(2))
	m.InitialConditions["I"] = expression.NewScalar(2)

	dm, err := d.ProcessModel(m)
	require.NoError(t, err)
	assert.True(t, dm.HasAlgebraic())
	assert.Equal(t, n+1, dm.Len())
	// Differential variables come first in the state layout.
	assert.Equal(t, []string{"c", "I"}, dm.VariableNames())
	sl, _ := dm.Slice("I")
	assert.Equal(t, Slice{Start: n, Stop: n + 1}, sl)

	// The mass matrix zeroes the algebraic row.
	ones := make([]float64, n+1)
	for i := range ones {
		ones[i] = 1
	}
	out := make([]float64, n+1)
	dm.MassMatrix().MulVec(ones, out)
	assert.Equal(t, 0.0, out[n])
	assert.Equal(t, 1.0, out[n-1])

	// At the consistent initial state the constraint residual is
	// zero; perturbing I shows up only on its own row.
	y0 := dm.InitialConditions()
	yp := make([]float64, n+1)
	res := dm.Residual(0, y0, yp)
	assert.InDelta(t, 0, res[n], 1.e-15)
	y0[n] = 5
	res = dm.Residual(0, y0, yp)
	assert.InDelta(t, -3, res[n], 1.e-15)
}

func TestInitialConditionReferencesState(t *testing.T) {
	_, d := lineMesh(t, 5)
	m := diffusionModel(t)
	c, _ := m.Variables.Get("c")
	m.InitialConditions["c"] = expression.Scale(0.5, c)
	_, err := d.ProcessModel(m)
	require.Error(t, err)
	var de *model.DiscretisationError
	assert.ErrorAs(t, err, &de)
	assert.Contains(t, err.Error(), "initial condition")
}

func TestEventNotScalar(t *testing.T) {
	_, d := lineMesh(t, 5)
	m := diffusionModel(t)
	c, _ := m.Variables.Get("c")
	m.Events = append(m.Events, model.Event{Name: "Field event", Expr: c})
	_, err := d.ProcessModel(m)
	require.Error(t, err)
	var de *model.DiscretisationError
	assert.ErrorAs(t, err, &de)
	assert.Contains(t, err.Error(), "not scalar")
}

func cellMethods(mesh *meshes.Mesh) map[string]SpatialMethod {
	methods := make(map[string]SpatialMethod)
	for _, domain := range mesh.Domains() {
		methods[domain] = FiniteVolume{}
	}
	return methods
}

func TestStandardCellDiscretisation(t *testing.T) {
	reg, err := submodels.NewStandardCell(submodels.DefaultParameters(), submodels.DefaultOptions())
	require.NoError(t, err)
	m, err := submodels.Assemble("standard cell", reg)
	require.NoError(t, err)

	n := 10
	mesh := meshes.NewCellMesh(n)
	d := New(mesh, cellMethods(mesh))
	dm, err := d.ProcessModel(m)
	require.NoError(t, err)

	// Constant porosity leaves the particle concentration as the
	// only state.
	assert.Equal(t, n, dm.Len())
	assert.Equal(t, []string{submodels.VarConcentration}, dm.VariableNames())

	y0 := dm.InitialConditions()
	for _, v := range y0 {
		assert.InDelta(t, 0.8, v, 1.e-15)
	}

	// Uniform concentration: interior fluxes vanish and the surface
	// flux drains the outermost shell.
	f := dm.RHS(0, y0)
	for i := 0; i < n-1; i++ {
		assert.InDelta(t, 0, f[i], 1.e-12, "shell %d", i)
	}
	assert.Less(t, f[n-1], 0.0)

	ev := dm.EventValues(0, y0)
	require.Len(t, ev, 1)
	assert.InDelta(t, 0.79, ev[0], 1.e-12)
}

func TestStandardCellParticleResolved(t *testing.T) {
	opts := submodels.DefaultOptions()
	opts.ParticleResolved = true
	reg, err := submodels.NewStandardCell(submodels.DefaultParameters(), opts)
	require.NoError(t, err)
	m, err := submodels.Assemble("standard cell", reg)
	require.NoError(t, err)

	n := 10
	mesh := meshes.NewCellMesh(n)
	for _, pair := range opts.ProductDomains() {
		require.NoError(t, mesh.Product(pair[0], pair[1]))
	}
	d := New(mesh, cellMethods(mesh))
	dm, err := d.ProcessModel(m)
	require.NoError(t, err)

	// One particle per electrode cell.
	assert.Equal(t, n*n, dm.Len())

	y0 := dm.InitialConditions()
	f := dm.RHS(0, y0)
	for b := 0; b < n; b++ {
		for i := 0; i < n-1; i++ {
			assert.InDelta(t, 0, f[b*n+i], 1.e-12, "particle %d shell %d", b, i)
		}
		assert.Less(t, f[b*n+n-1], 0.0, "particle %d surface", b)
	}
}
