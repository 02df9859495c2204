package material

import "math"

// All formulas model a shelf as a simply supported rectangular beam of
// span L (bay width), width b (shelf depth) and thickness h carrying a
// uniform load. Spans and thicknesses are in mm, loads in kg.
//
// Degenerate geometry never raises: invalid inputs return sentinel
// extremes so a fitness function can penalize such designs instead of
// crashing on them.

const (
	gravity = 9.81

	// Sentinels and caps for degenerate / extreme inputs.
	maxDeflectionMM      = 1000.0
	deflectionSentinelMM = 1e6
	maxStressPa          = 1e9
	maxCapacityKg        = 1000.0
)

// Deflection returns the maximum deflection in mm of a shelf under the
// given load: δ = 5·w·L⁴ / (384·E·I). Capped at 1000mm; non-positive
// dimensions or negative load return a 1e6mm sentinel.
func Deflection(bayWidthMM, depthMM, thicknessMM, loadKg float64, mat Spec) float64 {
	if bayWidthMM <= 0 || depthMM <= 0 || thicknessMM <= 0 || loadKg < 0 {
		return deflectionSentinelMM
	}

	L := bayWidthMM / 1000.0
	b := depthMM / 1000.0
	h := thicknessMM / 1000.0

	// Moment of inertia for a rectangular cross-section
	I := b * math.Pow(h, 3) / 12.0

	// Point load spread into a distributed load over the span
	w := loadKg * gravity / L

	delta := 5.0 * w * math.Pow(L, 4) / (384.0 * mat.YoungsModulus * I)
	return math.Min(delta*1000.0, maxDeflectionMM)
}

// Stress returns the maximum bending stress in Pa: σ = M·c/I with
// M = w·L²/8 and c = h/2. Capped at 1GPa; invalid inputs return the
// 1e9Pa sentinel.
func Stress(bayWidthMM, depthMM, thicknessMM, loadKg float64) float64 {
	if bayWidthMM <= 0 || depthMM <= 0 || thicknessMM <= 0 || loadKg < 0 {
		return maxStressPa
	}

	L := bayWidthMM / 1000.0
	b := depthMM / 1000.0
	h := thicknessMM / 1000.0

	I := b * math.Pow(h, 3) / 12.0
	w := loadKg * gravity / L
	M := w * L * L / 8.0
	c := h / 2.0

	return math.Min(M*c/I, maxStressPa)
}

// LoadCapacity returns the maximum load in kg a shelf can carry before
// reaching the material's stress limit. This is the stress formula
// inverted at σmax. Clamped to [0, 1000]kg; non-positive dimensions
// return 0.
func LoadCapacity(bayWidthMM, depthMM, thicknessMM float64, mat Spec) float64 {
	if bayWidthMM <= 0 || depthMM <= 0 || thicknessMM <= 0 {
		return 0.0
	}

	L := bayWidthMM / 1000.0
	b := depthMM / 1000.0
	h := thicknessMM / 1000.0

	I := b * math.Pow(h, 3) / 12.0
	c := h / 2.0

	// Maximum moment allowed by the stress limit, then back out the load
	maxMoment := mat.SigmaMax * I / c
	wMax := 8.0 * maxMoment / (L * L)
	loadMaxKg := wMax * L / gravity

	return math.Max(0.0, math.Min(loadMaxKg, maxCapacityKg))
}
