package separator

import (
	"fmt"
	"math"

	"Ferrex/internal/calc/field"
	"Ferrex/internal/calc/recommend"
	"Ferrex/internal/calc/tramp"
)

type Geometric struct {
	BeltWidthMM        float64 `json:"belt_width_mm"`
	SuspensionHeightMM float64 `json:"suspension_height_mm"`
	ElementLengthMM    float64 `json:"element_length_mm"`
	ElementWidthMM     float64 `json:"element_width_mm"`
	BeltSpeedMS        float64 `json:"belt_speed_ms"`
	FeedRateTPH        float64 `json:"feed_rate_tph"`
	LayerThicknessMM   float64 `json:"layer_thickness_mm"`
	TroughAngleDeg     float64 `json:"trough_angle_deg"`
}

type Magnetic struct {
	PowerSource   string  `json:"power_source"` // electro or permanent
	AmpereTurns   float64 `json:"ampere_turns"`
	Turns         float64 `json:"turns"`
	CurrentA      float64 `json:"current_a"`
	GapMM         float64 `json:"gap_mm"`
	CoreBeltRatio float64 `json:"core_belt_ratio"`
	PoleConfig    string  `json:"pole_config"`
}

type Material struct {
	DensityKgM3     float64 `json:"density_kg_m3"`
	WaterContentPct float64 `json:"water_content_pct"`
	TrampSizeMinMM  float64 `json:"tramp_size_min_mm"`
	TrampSizeMaxMM  float64 `json:"tramp_size_max_mm"`
	Susceptibility  float64 `json:"susceptibility"`
	FlowCharacter   string  `json:"flow_character"`
}

type Environmental struct {
	TemperatureC   float64 `json:"temperature_c"`
	AltitudeM      float64 `json:"altitude_m"`
	HumidityPct    float64 `json:"humidity_pct"`
	DustLevel      float64 `json:"dust_level"`
	VibrationLevel float64 `json:"vibration_level"`
}

type Inputs struct {
	Geometric     Geometric     `json:"geometric"`
	Magnetic      Magnetic      `json:"magnetic"`
	Material      Material      `json:"material"`
	Environmental Environmental `json:"environmental"`
}

type FieldStrength struct {
	AmpereTurns        float64 `json:"ampere_turns"`
	FluxDensityT       float64 `json:"flux_density_t"`
	SurfaceGauss       float64 `json:"surface_gauss"`
	PenetrationDepthMM float64 `json:"penetration_depth_mm"`
}

type Efficiency struct {
	Overall float64 `json:"overall"`
	Fine    float64 `json:"fine"`
	Medium  float64 `json:"medium"`
	Large   float64 `json:"large"`
}

type Thermal struct {
	PowerLossW        float64 `json:"power_loss_w"`
	TemperatureRiseC  float64 `json:"temperature_rise_c"`
	CoolingEfficiency float64 `json:"cooling_efficiency"`
}

type Results struct {
	Field          FieldStrength    `json:"field"`
	Efficiency     Efficiency       `json:"efficiency"`
	Thermal        Thermal          `json:"thermal"`
	Recommendation recommend.Result `json:"recommendation"`
}

type Issue struct {
	Severity string `json:"severity"` // critical, warning, info
	Message  string `json:"message"`
}

type Validation struct {
	OK     bool    `json:"ok"`
	Issues []Issue `json:"issues"`
}

type EnhancedResults struct {
	Results
	Validation      Validation `json:"validation"`
	ValidationTools []string   `json:"validation_tools"`
}

// Calibration constants for the aggregate pipeline. The logistic and the
// clamp ceilings are contract values; the derate slopes and the NI/loss
// coefficients are calibration locked by regression tests.
const (
	leakageMarginMM = 12.0 // added to the configured gap before computing B
	decayExponent   = 2.5  // n in (g/(g+depth))^n = 0.1

	logisticSteepness = 4.0
	logisticCenter    = 1.0

	niPerMM = 45.0 // estimated A-turns per mm of (core:belt ratio x belt width)

	maxOverall = 0.99
	maxFine    = 0.98
	maxMedium  = 0.99
	maxLarge   = 0.995

	lossCoeffWPerNI2 = 4.0e-6 // W per (A-turn)^2
	baseThermalResKW = 0.012  // K per W at sea level, 25 C
)

// AmpereTurns resolves the coil excitation: explicit value first, then
// turns x current, then the calibrated estimate from core:belt ratio and
// belt width.
func AmpereTurns(in Inputs) float64 {
	m := in.Magnetic
	if m.AmpereTurns > 0 {
		return m.AmpereTurns
	}
	if m.Turns > 0 && m.CurrentA > 0 {
		return m.Turns * m.CurrentA
	}
	ratio := m.CoreBeltRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	return niPerMM * ratio * in.Geometric.BeltWidthMM
}

// PenetrationDepthMM solves (g/(g+depth))^n = 0.1 for depth.
func PenetrationDepthMM(gapMM float64) float64 {
	return gapMM * (math.Pow(0.1, -1.0/decayExponent) - 1.0)
}

func logistic(ratio float64) float64 {
	return 1.0 / (1.0 + math.Exp(-logisticSteepness*(ratio-logisticCenter)))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clampMax(x, max float64) float64 {
	if x < 0 {
		return 0
	}
	if x > max {
		return max
	}
	return x
}

func burdenFromDepth(layerMM float64) tramp.Burden {
	switch {
	case layerMM < 10:
		return tramp.BurdenNone
	case layerMM < 30:
		return tramp.BurdenLight
	case layerMM < 60:
		return tramp.BurdenModerate
	case layerMM < 120:
		return tramp.BurdenHeavy
	default:
		return tramp.BurdenSevere
	}
}

// Calculate runs the full pipeline: field strength, removal efficiency
// breakdown, thermal performance and a model recommendation. Inputs are
// not range-checked; out-of-range values propagate into the outputs and
// only surface in the enhanced variant's validation report.
func Calculate(in Inputs) Results {
	ni := AmpereTurns(in)
	gEff := (in.Magnetic.GapMM + leakageMarginMM) / 1000.0
	flux := math.Min(field.Mu0*ni/gEff, field.SaturationT)

	fs := FieldStrength{
		AmpereTurns:        ni,
		FluxDensityT:       flux,
		SurfaceGauss:       flux / field.GaussToTesla,
		PenetrationDepthMM: PenetrationDepthMM(in.Magnetic.GapMM),
	}

	eff := efficiency(in, flux)
	th := thermal(in, ni)

	rec := recommend.Pick(recommend.Input{
		BeltWidthMM:   in.Geometric.BeltWidthMM,
		ThroughputTPH: in.Geometric.FeedRateTPH,
		GapMM:         in.Magnetic.GapMM,
		TemperatureC:  in.Environmental.TemperatureC,
		CoreBeltRatio: in.Magnetic.CoreBeltRatio,
	})

	return Results{Field: fs, Efficiency: eff, Thermal: th, Recommendation: rec}
}

func efficiency(in Inputs, flux float64) Efficiency {
	avgTramp := (in.Material.TrampSizeMinMM + in.Material.TrampSizeMaxMM) / 2.0
	if avgTramp <= 0 {
		avgTramp = 15
	}

	// Capture probability for a reference cube of the average tramp size
	// lying flat under the stated burden depth.
	ref := tramp.Geometry{Shape: tramp.ShapeCube, CubeSizeMM: avgTramp}
	area := tramp.EffectiveContactArea(ref, tramp.OrientFlat)
	weight := tramp.EstimateMass(ref) * 9.81
	burden := tramp.BurdenFactor(burdenFromDepth(in.Geometric.LayerThicknessMM))
	available := field.AvailableForceN(flux, area)
	required := weight * tramp.DefaultSafetyFactor * burden
	ratio := 0.0
	if required > 0 {
		ratio = available / required
	}
	capture := logistic(ratio)

	g := in.Geometric
	e := in.Environmental
	derates := []float64{
		clamp01(1 - 0.08*math.Max(0, g.BeltSpeedMS-2.0)),
		clamp01(1 - 0.003*math.Max(0, g.LayerThicknessMM-50)),
		clamp01(1 - 0.004*math.Max(0, g.TroughAngleDeg-20)),
		clamp01(1 - 0.004*math.Max(0, e.TemperatureC-25)),
		clamp01(1 - 0.03*math.Max(0, e.AltitudeM/1000.0)),
		clamp01(1 - 0.005*in.Material.WaterContentPct),
	}
	overall := capture
	for _, d := range derates {
		overall *= d
	}
	overall = clampMax(overall, maxOverall)

	// Band multipliers selected by average tramp size. Fine particles are
	// always the hardest to hold; large pieces the easiest.
	var fm, mm, lm float64
	switch {
	case avgTramp < 10:
		fm, mm, lm = 0.92, 1.02, 1.08
	case avgTramp < 20:
		fm, mm, lm = 0.85, 1.00, 1.06
	default:
		fm, mm, lm = 0.78, 0.97, 1.04
	}

	return Efficiency{
		Overall: overall,
		Fine:    clampMax(overall*fm, maxFine),
		Medium:  clampMax(overall*mm, maxMedium),
		Large:   clampMax(overall*lm, maxLarge),
	}
}

func thermal(in Inputs, ni float64) Thermal {
	loss := lossCoeffWPerNI2 * ni * ni

	altKM := math.Max(0, in.Environmental.AltitudeM/1000.0)
	coolAlt := math.Max(0.5, 1-0.12*altKM)
	coolTemp := math.Max(0.5, 1-0.10*math.Max(0, in.Environmental.TemperatureC-25)/10.0)
	cooling := coolAlt * coolTemp

	return Thermal{
		PowerLossW:        loss,
		TemperatureRiseC:  loss * baseThermalResKW / cooling,
		CoolingEfficiency: cooling,
	}
}

// CalculateEnhanced runs Calculate and appends an advisory validation
// report. Issues never halt the calculation; critical entries flip the
// OK flag and callers decide how to present them.
func CalculateEnhanced(in Inputs) EnhancedResults {
	res := Calculate(in)

	var issues []Issue
	add := func(severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: severity, Message: fmt.Sprintf(format, args...)})
	}

	if res.Field.FluxDensityT >= field.SaturationT {
		add("info", "Field capped at %.1f T saturation; extra excitation is wasted.", field.SaturationT)
	}
	coilTemp := in.Environmental.TemperatureC + res.Thermal.TemperatureRiseC
	switch {
	case coilTemp > 155:
		add("critical", "Estimated coil temperature %.0f C exceeds class F insulation limit.", coilTemp)
	case coilTemp > 120:
		add("warning", "Estimated coil temperature %.0f C leaves little thermal headroom.", coilTemp)
	}
	if res.Efficiency.Overall < 0.70 {
		add("warning", "Overall removal efficiency %.0f%% is below the 70%% duty guideline.", res.Efficiency.Overall*100)
	}
	if in.Magnetic.GapMM < 50 || in.Magnetic.GapMM > 300 {
		add("warning", "Operating gap %.0f mm is outside the 50-300 mm catalog range.", in.Magnetic.GapMM)
	}
	if in.Geometric.BeltWidthMM < 450 || in.Geometric.BeltWidthMM > 2400 {
		add("info", "Belt width %.0f mm is outside the 450-2400 mm documented range.", in.Geometric.BeltWidthMM)
	}
	if in.Geometric.BeltSpeedMS > 4.0 {
		add("warning", "Belt speed %.1f m/s exceeds the 4.0 m/s application limit.", in.Geometric.BeltSpeedMS)
	}

	ok := true
	for _, is := range issues {
		if is.Severity == "critical" {
			ok = false
		}
	}

	return EnhancedResults{
		Results:    res,
		Validation: Validation{OK: ok, Issues: issues},
		ValidationTools: []string{
			"FEMM 4.2 magnetostatic model",
			"Ansys Maxwell 3D field solve",
			"Site gauss-meter survey at operating gap",
		},
	}
}
