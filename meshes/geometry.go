package meshes

// Canonical domain names for the standard three domain cell and its
// microscale particle domain.
const (
	NegativeElectrode = "negative electrode"
	Separator         = "separator"
	PositiveElectrode = "positive electrode"
	NegativeParticle  = "negative particle"
)

// WholeCell is the ordered macroscale domain list.
var WholeCell = []string{NegativeElectrode, Separator, PositiveElectrode}

// NewCellMesh builds the standard cell geometry: three equal
// macroscale domains spanning [0, 1] with n uniform cells each, plus a
// spherical particle domain spanning [0, 1] with n cells. Callers
// needing a position-dependent particle layout follow up with
// Product(NegativeParticle, NegativeElectrode).
func NewCellMesh(n int) *Mesh {
	m := NewMesh()
	bounds := []float64{0, 1. / 3., 2. / 3., 1}
	for i, domain := range WholeCell {
		if err := m.Add(domain, NewUniformSubMesh(Cartesian, bounds[i], bounds[i+1], n)); err != nil {
			panic(err)
		}
	}
	if err := m.Add(NegativeParticle, NewUniformSubMesh(Spherical, 0, 1, n)); err != nil {
		panic(err)
	}
	return m
}
