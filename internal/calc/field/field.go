package field

import "math"

// Calibration constants shared by the separator calculations. These are
// engineering calibration values, not runtime configuration.
const (
	Mu0          = 4 * math.Pi * 1e-7 // vacuum permeability, H/m
	GaussToTesla = 1e-4

	// Exponential decay rates per mm of air gap. The force-factor rate is
	// exactly double the gauss rate: lifting force scales with field squared.
	GaussDecayPerMM       = 0.00575
	ForceFactorDecayPerMM = 0.0115

	// Default tramp density (mild steel), kg/m3.
	SteelDensityKgM3 = 7850.0

	// Field ceiling used as a steel saturation proxy, Tesla.
	SaturationT = 1.8
)

// GaussAtGap decays a surface-measured gauss reading to the value at the
// given air gap. Negative inputs are not validated and pass straight
// through the exponential.
func GaussAtGap(surfaceGauss, gapMM float64) float64 {
	return surfaceGauss * math.Exp(-GaussDecayPerMM*gapMM)
}

// ForceFactorAtGap decays a catalog force-factor rating (Newtons at the
// magnet face) to the value at the given air gap.
func ForceFactorAtGap(surfaceFF, gapMM float64) float64 {
	return surfaceFF * math.Exp(-ForceFactorDecayPerMM*gapMM)
}

// AvailableForceN is the magnetic pressure force on a contact area:
// B^2 * A / (2 * mu0).
func AvailableForceN(fluxDensityT, areaM2 float64) float64 {
	return fluxDensityT * fluxDensityT * areaM2 / (2 * Mu0)
}
