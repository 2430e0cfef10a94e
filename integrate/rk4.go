package integrate

import (
	"fmt"
	"math"

	"github.com/notargets/gocell/discretise"
	"github.com/notargets/gocell/utils"
)

// Solution holds the trajectory of one integration run: one row of Y
// per accepted step, including the initial state. When a run is
// terminated by an event, rows beyond len(T)-1 are unused.
type Solution struct {
	T []float64
	Y utils.Matrix
	// Terminated names the event that stopped the run, empty when
	// the final time was reached.
	Terminated string
}

/*
RK4 integrates a purely differential discrete model to finalTime with
the low storage five stage RK4 scheme, checking event indicators after
every step and stopping at the first zero crossing. Models with
algebraic constraints need an implicit DAE solver and are rejected.

This is a convenience harness for demos and tests; production runs
belong to an external solver consuming the DiscreteModel surface.
*/
func RK4(dm *discretise.DiscreteModel, finalTime, dt float64, logFrequency int) (*Solution, error) {
	if dm.HasAlgebraic() {
		return nil, fmt.Errorf("model has algebraic constraints: RK4 handles explicit systems only")
	}
	if dt <= 0 || finalTime <= 0 {
		return nil, fmt.Errorf("RK4 requires positive dt and finalTime, got dt = %g, finalTime = %g", dt, finalTime)
	}
	ns := math.Ceil(finalTime / dt)
	dt = finalTime / ns
	nsteps := int(ns)

	var (
		n     = dm.Len()
		y     = dm.InitialConditions()
		resid = make([]float64, n)
		sol   = &Solution{
			T: make([]float64, 1, nsteps+1),
			Y: utils.NewMatrix(nsteps+1, n),
		}
	)
	sol.Y.SetRow(0, y)
	prev := dm.EventValues(0, y)

	var time float64
	for tstep := 1; tstep <= nsteps; tstep++ {
		for intrk := 0; intrk < 5; intrk++ {
			timelocal := time + dt*utils.RK4c[intrk]
			rhs := dm.RHS(timelocal, y)
			for i := range resid {
				resid[i] = utils.RK4a[intrk]*resid[i] + dt*rhs[i]
				y[i] += utils.RK4b[intrk] * resid[i]
			}
		}
		time += dt
		sol.T = append(sol.T, time)
		sol.Y.SetRow(tstep, y)
		if logFrequency > 0 && tstep%logFrequency == 0 {
			fmt.Printf("Time = %8.4f, step = %d of %d\n", time, tstep, nsteps)
		}
		cur := dm.EventValues(time, y)
		for i, v := range cur {
			if v == 0 || prev[i]*v < 0 {
				sol.Terminated = dm.Events()[i].Name
				sol.T = sol.T[:tstep+1]
				return sol, nil
			}
		}
		prev = cur
	}
	return sol, nil
}
