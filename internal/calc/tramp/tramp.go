package tramp

import (
	"fmt"
	"math"

	"Ferrex/internal/calc/field"
)

type Shape string

const (
	ShapePlate     Shape = "plate"
	ShapeBar       Shape = "bar"
	ShapeCube      Shape = "cube"
	ShapeIrregular Shape = "irregular"
)

type Orientation string

const (
	OrientFlat    Orientation = "flat"
	OrientEdge    Orientation = "edge"
	OrientCorner  Orientation = "corner"
	OrientUnknown Orientation = "unknown"
)

type Burden string

const (
	BurdenNone     Burden = "none"
	BurdenLight    Burden = "light"
	BurdenModerate Burden = "moderate"
	BurdenHeavy    Burden = "heavy"
	BurdenSevere   Burden = "severe"
)

const (
	DefaultSafetyFactor = 3.0
	gravity             = 9.81
)

// Geometry describes a tramp-metal piece. For cubes only CubeSizeMM is
// used; other shapes use length/width/thickness. Density of zero means
// mild steel.
type Geometry struct {
	Shape       Shape   `json:"shape"`
	LengthMM    float64 `json:"length_mm"`
	WidthMM     float64 `json:"width_mm"`
	ThicknessMM float64 `json:"thickness_mm"`
	CubeSizeMM  float64 `json:"cube_size_mm"`
	DensityKgM3 float64 `json:"density_kg_m3"`
}

type Input struct {
	Geometry     Geometry    `json:"geometry"`
	Orientation  Orientation `json:"orientation"`
	Burden       Burden      `json:"burden"`
	SafetyFactor float64     `json:"safety_factor"`
	SurfaceGauss float64     `json:"surface_gauss"`
	ForceFactorN float64     `json:"force_factor_n"`
	GapMM        float64     `json:"gap_mm"`
	Method       string      `json:"method"` // "gauss" or "force_factor"
}

type Result struct {
	MassKg            float64  `json:"mass_kg"`
	WeightN           float64  `json:"weight_n"`
	EffectiveAreaM2   float64  `json:"effective_area_m2"`
	OrientationFactor float64  `json:"orientation_factor"`
	BurdenFactor      float64  `json:"burden_factor"`
	SafetyFactor      float64  `json:"safety_factor"`
	CombinedFactor    float64  `json:"combined_factor"`
	AvailableForceN   float64  `json:"available_force_n"`
	RequiredForceN    float64  `json:"required_force_n"`
	MarginN           float64  `json:"margin_n"`
	MarginRatio       float64  `json:"margin_ratio"`
	PickupLikely      bool     `json:"pickup_likely"`
	ConfidencePct     float64  `json:"confidence_pct"`
	Notes             []string `json:"notes"`
}

// EstimateMass returns the piece mass in kg, or 0 when the required
// dimensions are missing. Callers must treat 0 as invalid geometry.
func EstimateMass(g Geometry) float64 {
	density := g.DensityKgM3
	if density <= 0 {
		density = field.SteelDensityKgM3
	}
	if g.Shape == ShapeCube {
		if g.CubeSizeMM <= 0 {
			return 0
		}
		s := g.CubeSizeMM / 1000.0
		return s * s * s * density
	}
	if g.LengthMM <= 0 || g.WidthMM <= 0 || g.ThicknessMM <= 0 {
		return 0
	}
	return g.LengthMM * g.WidthMM * g.ThicknessMM * 1e-9 * density
}

// EffectiveContactArea estimates the face area the magnet can act on, in
// m2. A flat face presents the largest, most favorable area; a corner the
// least. Returns 0 when the geometry cannot be evaluated.
func EffectiveContactArea(g Geometry, o Orientation) float64 {
	if g.Shape == ShapeCube {
		if g.CubeSizeMM <= 0 {
			return 0
		}
		s := g.CubeSizeMM / 1000.0
		face := s * s
		switch o {
		case OrientFlat:
			return face
		case OrientEdge:
			return face * 0.75
		case OrientCorner:
			return face * 0.5
		default:
			return face * 0.6
		}
	}
	if g.LengthMM <= 0 {
		return 0
	}
	w, th := g.WidthMM, g.ThicknessMM
	if w <= 0 && th <= 0 {
		return 0
	}
	large := math.Max(w, th)
	small := math.Min(w, th)
	if small <= 0 {
		small = large
	}
	l := g.LengthMM / 1000.0
	largeFace := l * large / 1000.0
	smallEdge := l * small / 1000.0
	switch o {
	case OrientFlat:
		return largeFace
	case OrientEdge:
		return smallEdge
	case OrientCorner:
		return smallEdge * 0.5
	default:
		return smallEdge * 0.8
	}
}

// OrientationFactor is the calibrated multiplier on required lifting
// force. A badly oriented piece is much harder to dislodge than its
// contact area alone suggests.
func OrientationFactor(o Orientation) float64 {
	switch o {
	case OrientFlat:
		return 1.0
	case OrientEdge:
		return 4.0
	case OrientCorner:
		return 6.0
	default:
		return 5.0
	}
}

func BurdenFactor(b Burden) float64 {
	switch b {
	case BurdenNone:
		return 1.0
	case BurdenLight:
		return 1.5
	case BurdenModerate:
		return 2.5
	case BurdenHeavy:
		return 4.0
	case BurdenSevere:
		return 6.0
	default:
		return 3.0
	}
}

// Confidence maps an available/required force ratio to a bounded
// percentage in [0, 99]. The segment boundaries are fixed contract
// values; downstream consumers depend on the exact thresholds.
func Confidence(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return 0
	case ratio < 0.5:
		return ratio / 0.5 * 25
	case ratio < 0.8:
		return 25 + (ratio-0.5)/0.3*15
	case ratio < 1.0:
		return 40 + (ratio-0.8)/0.2*10
	case ratio < 1.5:
		return 50 + (ratio-1.0)/0.5*25
	case ratio < 2.0:
		return 75 + (ratio-1.5)/0.5*15
	case ratio < 3.0:
		return 90 + (ratio-2.0)*8
	default:
		return 99
	}
}

// PickupFromGauss evaluates pickup from a surface gauss reading: the
// reading is decayed at the gauss rate, converted to Tesla and run
// through the magnetic pressure formula. Retained for catalogs that only
// publish gauss; PickupFromForceFactor is the preferred entry point.
func PickupFromGauss(g Geometry, o Orientation, b Burden, safetyFactor, surfaceGauss, gapMM float64) (Result, error) {
	if surfaceGauss <= 0 {
		return Result{}, fmt.Errorf("surface gauss must be positive, got %v", surfaceGauss)
	}
	area := EffectiveContactArea(g, o)
	if area <= 0 {
		return Result{}, fmt.Errorf("effective contact area is not positive; check %s dimensions", g.Shape)
	}
	fluxT := field.GaussAtGap(surfaceGauss, gapMM) * field.GaussToTesla
	available := field.AvailableForceN(fluxT, area)
	return finish(g, o, b, safetyFactor, area, available)
}

// PickupFromForceFactor evaluates pickup from a catalog force-factor
// rating (Newtons at the magnet face), decayed at the force-factor rate.
// Preferred method: it works directly in force units and skips the
// flux/area model.
func PickupFromForceFactor(g Geometry, o Orientation, b Burden, safetyFactor, surfaceFF, gapMM float64) (Result, error) {
	if surfaceFF <= 0 {
		return Result{}, fmt.Errorf("surface force factor must be positive, got %v", surfaceFF)
	}
	area := EffectiveContactArea(g, o)
	if area <= 0 {
		return Result{}, fmt.Errorf("effective contact area is not positive; check %s dimensions", g.Shape)
	}
	available := field.ForceFactorAtGap(surfaceFF, gapMM)
	return finish(g, o, b, safetyFactor, area, available)
}

// Evaluate dispatches on Input.Method; anything other than "gauss" uses
// the preferred force-factor path.
func Evaluate(in Input) (Result, error) {
	if in.Method == "gauss" {
		return PickupFromGauss(in.Geometry, in.Orientation, in.Burden, in.SafetyFactor, in.SurfaceGauss, in.GapMM)
	}
	return PickupFromForceFactor(in.Geometry, in.Orientation, in.Burden, in.SafetyFactor, in.ForceFactorN, in.GapMM)
}

func finish(g Geometry, o Orientation, b Burden, safetyFactor, area, available float64) (Result, error) {
	mass := EstimateMass(g)
	if mass <= 0 {
		return Result{}, fmt.Errorf("geometry dimensions incomplete for %s shape", g.Shape)
	}
	if safetyFactor <= 0 {
		safetyFactor = DefaultSafetyFactor
	}
	weight := mass * gravity
	of := OrientationFactor(o)
	bf := BurdenFactor(b)
	combined := safetyFactor * of * bf
	required := weight * combined
	ratio := available / required
	confidence := Confidence(ratio)

	notes := []string{
		fmt.Sprintf("Estimated mass %.3f kg (%.2f N weight).", mass, weight),
		fmt.Sprintf("Required force %.1f N at combined factor %.1f (safety %.1f, orientation %.1f, burden %.1f).",
			required, combined, safetyFactor, of, bf),
	}
	if ratio >= 1.0 {
		notes = append(notes, fmt.Sprintf("Available force exceeds required by %.1f N.", available-required))
	} else {
		notes = append(notes, "Available force below required; pickup not assured under stated assumptions.")
	}

	return Result{
		MassKg:            mass,
		WeightN:           weight,
		EffectiveAreaM2:   area,
		OrientationFactor: of,
		BurdenFactor:      bf,
		SafetyFactor:      safetyFactor,
		CombinedFactor:    combined,
		AvailableForceN:   available,
		RequiredForceN:    required,
		MarginN:           available - required,
		MarginRatio:       ratio,
		PickupLikely:      ratio >= 1.0,
		ConfidencePct:     confidence,
		Notes:             notes,
	}, nil
}
