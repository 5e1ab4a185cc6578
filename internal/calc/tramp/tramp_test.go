package tramp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceBreakpoints(t *testing.T) {
	cases := []struct {
		ratio float64
		want  float64
	}{
		{-1.0, 0},
		{0, 0},
		{0.25, 12.5},
		{0.5, 25},
		{0.8, 40},
		{1.0, 50},
		{1.5, 75},
		{2.0, 90},
		{2.5, 94},
		{3.0, 99},
		{10.0, 99},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, Confidence(c.ratio), 1e-9, "ratio=%v", c.ratio)
	}
}

func TestConfidenceMonotoneAndBounded(t *testing.T) {
	prev := -1.0
	for r := -0.5; r <= 4.0; r += 0.005 {
		c := Confidence(r)
		require.GreaterOrEqual(t, c, 0.0)
		require.LessOrEqual(t, c, 99.0)
		require.GreaterOrEqual(t, c, prev, "confidence must be non-decreasing, ratio=%v", r)
		prev = c
	}
}

func TestCubeContactArea(t *testing.T) {
	cube := Geometry{Shape: ShapeCube, CubeSizeMM: 25}
	flat := EffectiveContactArea(cube, OrientFlat)
	require.InDelta(t, 0.000625, flat, 1e-12)
	require.InDelta(t, flat*0.5, EffectiveContactArea(cube, OrientCorner), 1e-12)
	require.InDelta(t, flat*0.75, EffectiveContactArea(cube, OrientEdge), 1e-12)
	require.InDelta(t, flat*0.6, EffectiveContactArea(cube, OrientUnknown), 1e-12)
}

func TestElongatedContactAreaOrdering(t *testing.T) {
	bar := Geometry{Shape: ShapeBar, LengthMM: 100, WidthMM: 20, ThicknessMM: 10}
	flat := EffectiveContactArea(bar, OrientFlat)
	edge := EffectiveContactArea(bar, OrientEdge)
	corner := EffectiveContactArea(bar, OrientCorner)
	unknown := EffectiveContactArea(bar, OrientUnknown)

	require.InDelta(t, 0.1*0.020, flat, 1e-12)
	require.InDelta(t, 0.1*0.010, edge, 1e-12)
	assert.Greater(t, flat, unknown)
	assert.Greater(t, unknown, corner)
	assert.Greater(t, edge, corner)
}

func TestEstimateMass(t *testing.T) {
	t.Run("bar default density", func(t *testing.T) {
		m := EstimateMass(Geometry{Shape: ShapeBar, LengthMM: 100, WidthMM: 20, ThicknessMM: 10})
		require.InDelta(t, 0.157, m, 1e-9)
	})
	t.Run("cube", func(t *testing.T) {
		m := EstimateMass(Geometry{Shape: ShapeCube, CubeSizeMM: 25})
		require.InDelta(t, 0.000015625*7850, m, 1e-9)
	})
	t.Run("density override", func(t *testing.T) {
		m := EstimateMass(Geometry{Shape: ShapePlate, LengthMM: 100, WidthMM: 100, ThicknessMM: 5, DensityKgM3: 2700})
		require.InDelta(t, 0.135, m, 1e-9)
	})
	t.Run("missing dimensions", func(t *testing.T) {
		require.Zero(t, EstimateMass(Geometry{Shape: ShapeBar, LengthMM: 100}))
		require.Zero(t, EstimateMass(Geometry{Shape: ShapeCube}))
	})
}

func TestFactors(t *testing.T) {
	require.Equal(t, 1.0, OrientationFactor(OrientFlat))
	require.Equal(t, 4.0, OrientationFactor(OrientEdge))
	require.Equal(t, 6.0, OrientationFactor(OrientCorner))
	require.Equal(t, 5.0, OrientationFactor(OrientUnknown))

	require.Equal(t, 1.0, BurdenFactor(BurdenNone))
	require.Equal(t, 1.5, BurdenFactor(BurdenLight))
	require.Equal(t, 2.5, BurdenFactor(BurdenModerate))
	require.Equal(t, 4.0, BurdenFactor(BurdenHeavy))
	require.Equal(t, 6.0, BurdenFactor(BurdenSevere))
	require.Equal(t, 3.0, BurdenFactor(Burden("mystery")))
}

// Regression baseline: 100x20x10 mm bar, flat, moderate burden, 2410 G
// surface reading at 150 mm gap, default safety factor.
func TestBarPickupFromGaussBaseline(t *testing.T) {
	bar := Geometry{Shape: ShapeBar, LengthMM: 100, WidthMM: 20, ThicknessMM: 10}
	res, err := PickupFromGauss(bar, OrientFlat, BurdenModerate, 0, 2410, 150)
	require.NoError(t, err)

	require.InDelta(t, 0.157, res.MassKg, 1e-6)
	require.InDelta(t, 1.540, res.WeightN, 0.001)
	require.InDelta(t, 0.002, res.EffectiveAreaM2, 1e-12)
	require.Equal(t, 7.5, res.CombinedFactor)
	require.InDelta(t, 11.551, res.RequiredForceN, 0.01)
	require.InDelta(t, 8.235, res.AvailableForceN, 0.01)
	require.InDelta(t, 0.7129, res.MarginRatio, 5e-4)
	require.InDelta(t, 35.64, res.ConfidencePct, 0.05)
	require.False(t, res.PickupLikely)
	require.NotEmpty(t, res.Notes)
}

func TestPickupFromForceFactor(t *testing.T) {
	bar := Geometry{Shape: ShapeBar, LengthMM: 100, WidthMM: 20, ThicknessMM: 10}
	res, err := PickupFromForceFactor(bar, OrientFlat, BurdenNone, 0, 1200, 150)
	require.NoError(t, err)

	// 1200 N decayed at the force-factor rate over 150 mm.
	require.InDelta(t, 213.8, res.AvailableForceN, 0.1)
	require.True(t, res.PickupLikely)
	require.Equal(t, 99.0, res.ConfidencePct)
}

func TestPickupErrors(t *testing.T) {
	bar := Geometry{Shape: ShapeBar, LengthMM: 100, WidthMM: 20, ThicknessMM: 10}

	_, err := PickupFromGauss(bar, OrientFlat, BurdenNone, 0, 0, 150)
	require.Error(t, err)

	_, err = PickupFromForceFactor(bar, OrientFlat, BurdenNone, 0, -5, 150)
	require.Error(t, err)

	_, err = PickupFromGauss(Geometry{Shape: ShapeCube}, OrientFlat, BurdenNone, 0, 2410, 150)
	require.Error(t, err)

	_, err = PickupFromGauss(Geometry{Shape: ShapePlate, LengthMM: 80}, OrientFlat, BurdenNone, 0, 2410, 150)
	require.Error(t, err)
}

func TestEvaluateDispatch(t *testing.T) {
	bar := Geometry{Shape: ShapeBar, LengthMM: 100, WidthMM: 20, ThicknessMM: 10}

	viaGauss, err := Evaluate(Input{Geometry: bar, Orientation: OrientFlat, Burden: BurdenModerate, SurfaceGauss: 2410, GapMM: 150, Method: "gauss"})
	require.NoError(t, err)
	direct, err := PickupFromGauss(bar, OrientFlat, BurdenModerate, 0, 2410, 150)
	require.NoError(t, err)
	require.Equal(t, direct, viaGauss)

	viaFF, err := Evaluate(Input{Geometry: bar, Orientation: OrientFlat, Burden: BurdenModerate, ForceFactorN: 900, GapMM: 150})
	require.NoError(t, err)
	directFF, err := PickupFromForceFactor(bar, OrientFlat, BurdenModerate, 0, 900, 150)
	require.NoError(t, err)
	require.Equal(t, directFF, viaFF)
}
