package submodels

// Shared variable names. A submodel that reads another mechanism's
// output does so through these names in GetCoupledVariables.
const (
	VarPorosity       = "Porosity"
	VarPorosityChange = "Porosity change"
	VarCurrent        = "Volumetric interfacial current density"
	VarCurrentNeg     = "Negative electrode interfacial current density"
	VarConcentration  = "Negative particle concentration"
	VarRadiusChange   = "Negative particle radius change"
)
