package separator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInputs() Inputs {
	return Inputs{
		Geometric: Geometric{
			BeltWidthMM:      1200,
			BeltSpeedMS:      2.0,
			FeedRateTPH:      400,
			LayerThicknessMM: 40,
			TroughAngleDeg:   20,
		},
		Magnetic: Magnetic{
			PowerSource:   "electro",
			GapMM:         150,
			CoreBeltRatio: 0.6,
		},
		Material: Material{
			DensityKgM3:     1600,
			WaterContentPct: 2,
			TrampSizeMinMM:  10,
			TrampSizeMaxMM:  20,
		},
		Environmental: Environmental{
			TemperatureC: 25,
		},
	}
}

func TestAmpereTurnsResolution(t *testing.T) {
	in := baseInputs()

	// Calibrated estimate: 45 * 0.6 * 1200.
	require.InDelta(t, 32400, AmpereTurns(in), 1e-9)

	in.Magnetic.Turns = 400
	in.Magnetic.CurrentA = 60
	require.InDelta(t, 24000, AmpereTurns(in), 1e-9)

	in.Magnetic.AmpereTurns = 50000
	require.InDelta(t, 50000, AmpereTurns(in), 1e-9)
}

func TestFieldBaseline(t *testing.T) {
	res := Calculate(baseInputs())

	require.InDelta(t, 0.2513, res.Field.FluxDensityT, 5e-4)
	require.InDelta(t, res.Field.FluxDensityT*1e4, res.Field.SurfaceGauss, 1e-6)
	// depth = gap * (0.1^(-1/2.5) - 1) ~ 1.5119 * gap
	require.InDelta(t, 226.78, res.Field.PenetrationDepthMM, 0.05)
}

func TestFieldSaturationCap(t *testing.T) {
	in := baseInputs()
	in.Magnetic.AmpereTurns = 1e7
	res := Calculate(in)
	require.Equal(t, 1.8, res.Field.FluxDensityT)
	require.Equal(t, 18000.0, res.Field.SurfaceGauss)
}

func TestEfficiencyBaselineAndClamps(t *testing.T) {
	res := Calculate(baseInputs())
	e := res.Efficiency

	require.InDelta(t, 0.9895, e.Overall, 0.002)
	require.LessOrEqual(t, e.Overall, 0.99)
	require.LessOrEqual(t, e.Fine, 0.98)
	require.LessOrEqual(t, e.Medium, 0.99)
	// 1.06 band multiplier pushes large past the ceiling; must clamp.
	require.Equal(t, 0.995, e.Large)
	require.Less(t, e.Fine, e.Medium)
}

func TestEfficiencyDerates(t *testing.T) {
	base := Calculate(baseInputs()).Efficiency.Overall

	fast := baseInputs()
	fast.Geometric.BeltSpeedMS = 3.5
	require.Less(t, Calculate(fast).Efficiency.Overall, base)

	deep := baseInputs()
	deep.Geometric.LayerThicknessMM = 150
	require.Less(t, Calculate(deep).Efficiency.Overall, base)

	hot := baseInputs()
	hot.Environmental.TemperatureC = 55
	require.Less(t, Calculate(hot).Efficiency.Overall, base)

	high := baseInputs()
	high.Environmental.AltitudeM = 4000
	require.Less(t, Calculate(high).Efficiency.Overall, base)

	wet := baseInputs()
	wet.Material.WaterContentPct = 12
	require.Less(t, Calculate(wet).Efficiency.Overall, base)
}

func TestEfficiencyBandsSelectedBySize(t *testing.T) {
	fine := baseInputs()
	fine.Material.TrampSizeMinMM = 2
	fine.Material.TrampSizeMaxMM = 6

	coarse := baseInputs()
	coarse.Material.TrampSizeMinMM = 30
	coarse.Material.TrampSizeMaxMM = 60

	fr := Calculate(fine).Efficiency
	cr := Calculate(coarse).Efficiency
	for _, e := range []Efficiency{fr, cr} {
		assert.GreaterOrEqual(t, e.Overall, 0.0)
		assert.LessOrEqual(t, e.Overall, 0.99)
		assert.LessOrEqual(t, e.Fine, 0.98)
		assert.LessOrEqual(t, e.Large, 0.995)
	}
}

func TestThermal(t *testing.T) {
	res := Calculate(baseInputs())
	// loss = 4e-6 * 32400^2, rise = loss * 0.012 at full cooling.
	require.InDelta(t, 4199.0, res.Thermal.PowerLossW, 0.5)
	require.InDelta(t, 50.4, res.Thermal.TemperatureRiseC, 0.1)
	require.Equal(t, 1.0, res.Thermal.CoolingEfficiency)
}

func TestThermalDeratingFloors(t *testing.T) {
	in := baseInputs()
	in.Environmental.AltitudeM = 10000 // 1 - 1.2 would go negative; floors at 0.5
	in.Environmental.TemperatureC = 90 // 1 - 0.65 floors at 0.5
	res := Calculate(in)
	require.InDelta(t, 0.25, res.Thermal.CoolingEfficiency, 1e-9)
	require.Greater(t, res.Thermal.TemperatureRiseC, Calculate(baseInputs()).Thermal.TemperatureRiseC)
}

func TestRecommendationPresent(t *testing.T) {
	res := Calculate(baseInputs())
	require.NotEmpty(t, res.Recommendation.Model)
	require.Len(t, res.Recommendation.Alternatives, 3)
}

func TestEnhancedValidation(t *testing.T) {
	t.Run("clean duty", func(t *testing.T) {
		res := CalculateEnhanced(baseInputs())
		require.True(t, res.Validation.OK)
		require.NotEmpty(t, res.ValidationTools)
	})

	t.Run("overheated coil is critical", func(t *testing.T) {
		in := baseInputs()
		in.Magnetic.AmpereTurns = 90000
		in.Environmental.TemperatureC = 50
		res := CalculateEnhanced(in)
		require.False(t, res.Validation.OK)

		found := false
		for _, is := range res.Validation.Issues {
			if is.Severity == "critical" {
				found = true
			}
		}
		require.True(t, found, "expected a critical issue, got %+v", res.Validation.Issues)
	})

	t.Run("out of range gap is advisory only", func(t *testing.T) {
		in := baseInputs()
		in.Magnetic.GapMM = 400
		res := CalculateEnhanced(in)
		require.True(t, res.Validation.OK, "warnings must not flip OK")

		found := false
		for _, is := range res.Validation.Issues {
			if is.Severity == "warning" {
				found = true
			}
		}
		require.True(t, found)
	})
}
