package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: Standard Cell
CellsPerDomain: 20
FinalTime: 2.0
TimeStep: 0.001
NegativeElectrodeType: porous
Porosity: reaction driven
Swelling: isotropic
ParticleResolved: true
PhysicalParameters:
  Particle diffusivity: 0.5
  Initial concentration: 0.9
`)
	var ip InputParameters
	require.NoError(t, ip.Parse(data))
	assert.Equal(t, "Standard Cell", ip.Title)
	assert.Equal(t, 20, ip.CellsPerDomain)
	assert.Equal(t, 0.001, ip.TimeStep)
	assert.Equal(t, "reaction driven", ip.Porosity)
	assert.True(t, ip.ParticleResolved)
	assert.Equal(t, 0.5, ip.PhysicalParameters["Particle diffusivity"])
}
