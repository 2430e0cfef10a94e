package submodels

import "fmt"

// Parameters is the resolved mapping from physical quantity name to
// dimensionless value, supplied by an external parameter provider.
// Values are treated as opaque; only name existence is checked.
type Parameters map[string]float64

func (p Parameters) Get(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", name)
	}
	return v, nil
}

// DefaultParameters are the nondimensional values used by the CLI and
// the tests. They are physically plausible, not fitted to any cell.
func DefaultParameters() Parameters {
	return Parameters{
		"Negative electrode porosity":   0.3,
		"Separator porosity":            0.5,
		"Positive electrode porosity":   0.3,
		"Interfacial current density":   1.0,
		"Particle diffusivity":          1.0,
		"Volume change factor":          0.05,
		"Swelling coefficient":          0.02,
		"Initial concentration":         0.8,
		"Minimum concentration cutoff":  0.01,
		"Surface flux coefficient":      0.1,
	}
}
