package submodels

import (
	"fmt"

	"github.com/notargets/gocell/meshes"
)

// Registry is an ordered mapping from role name to submodel instance.
// Order matters: coupled variables may only reference variables
// defined by earlier (or fundamental-phase) submodels.
type Registry struct {
	roles []string
	m     map[string]Submodel
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Submodel)}
}

// Add registers a submodel under a role. Re-adding an existing role
// replaces the submodel in place, preserving registry order; this is
// how a mechanism is swapped for its no-op variant.
func (r *Registry) Add(role string, s Submodel) *Registry {
	if _, ok := r.m[role]; !ok {
		r.roles = append(r.roles, role)
	}
	r.m[role] = s
	return r
}

func (r *Registry) Roles() []string { return r.roles }

func (r *Registry) Get(role string) (Submodel, bool) {
	s, ok := r.m[role]
	return s, ok
}

// Options selects the physics of a cell model without touching the
// assembly mechanism. Every option value maps to a concrete submodel
// variant through NewStandardCell.
type Options struct {
	// NegativeElectrodeType is "porous" or "planar". A planar
	// electrode has no particle microscale.
	NegativeElectrodeType string
	// Porosity is "constant" or "reaction driven".
	Porosity string
	// Swelling is "none" or "isotropic".
	Swelling string
	// ParticleResolved replicates the particle mesh across
	// electrode positions (product layout) with a position
	// dependent surface flux.
	ParticleResolved bool
}

func DefaultOptions() *Options {
	return &Options{
		NegativeElectrodeType: "porous",
		Porosity:              "constant",
		Swelling:              "none",
	}
}

// NewStandardCell is the factory mapping option values to submodel
// variants for the standard three domain cell. Unknown option values
// are reported with the offending name.
func NewStandardCell(params Parameters, opts *Options) (*Registry, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	r := NewRegistry()
	uk, err := NewUniformKinetics(params)
	if err != nil {
		return nil, err
	}
	r.Add("interfacial current", uk)

	switch opts.Porosity {
	case "constant":
		s, err := NewConstantPorosity(params)
		if err != nil {
			return nil, err
		}
		r.Add("porosity", s)
	case "reaction driven":
		s, err := NewReactionDrivenPorosity(params)
		if err != nil {
			return nil, err
		}
		r.Add("porosity", s)
	default:
		return nil, fmt.Errorf("unknown porosity option %q", opts.Porosity)
	}

	switch opts.NegativeElectrodeType {
	case "porous":
		s, err := NewFickianParticle(params, opts.ParticleResolved)
		if err != nil {
			return nil, err
		}
		r.Add("negative particle", s)
	case "planar":
		// No particle microscale.
	default:
		return nil, fmt.Errorf("unknown negative electrode type %q", opts.NegativeElectrodeType)
	}

	switch opts.Swelling {
	case "none":
		r.Add("particle swelling", NewNoSwelling())
	case "isotropic":
		s, err := NewIsotropicSwelling(params)
		if err != nil {
			return nil, err
		}
		r.Add("particle swelling", s)
	default:
		return nil, fmt.Errorf("unknown swelling option %q", opts.Swelling)
	}
	return r, nil
}

// ProductDomains lists the (domain, secondary) pairs the mesh must lay
// out as products for these options.
func (o *Options) ProductDomains() [][2]string {
	if o.NegativeElectrodeType == "porous" && o.ParticleResolved {
		return [][2]string{{meshes.NegativeParticle, meshes.NegativeElectrode}}
	}
	return nil
}
