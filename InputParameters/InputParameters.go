package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title                 string             `yaml:"Title"`
	CellsPerDomain        int                `yaml:"CellsPerDomain"`
	FinalTime             float64            `yaml:"FinalTime"`
	TimeStep              float64            `yaml:"TimeStep"`
	NegativeElectrodeType string             `yaml:"NegativeElectrodeType"`
	Porosity              string             `yaml:"Porosity"`
	Swelling              string             `yaml:"Swelling"`
	ParticleResolved      bool               `yaml:"ParticleResolved"`
	PhysicalParameters    map[string]float64 `yaml:"PhysicalParameters"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Cells Per Domain\n", ip.CellsPerDomain)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= TimeStep\n", ip.TimeStep)
	fmt.Printf("[%s]\t\t= Negative Electrode Type\n", ip.NegativeElectrodeType)
	fmt.Printf("[%s]\t\t= Porosity\n", ip.Porosity)
	fmt.Printf("[%s]\t\t\t= Swelling\n", ip.Swelling)
	fmt.Printf("[%v]\t\t\t= Particle Resolved\n", ip.ParticleResolved)
	keys := make([]string, len(ip.PhysicalParameters))
	i := 0
	for k := range ip.PhysicalParameters {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("PhysicalParameters[%s] = %v\n", key, ip.PhysicalParameters[key])
	}
}
