package optimize

import (
	"testing"

	"Ferrex/internal/calc/separator"

	"github.com/stretchr/testify/require"
)

func weakDuty() separator.Inputs {
	return separator.Inputs{
		Geometric: separator.Geometric{
			BeltWidthMM:      1200,
			BeltSpeedMS:      3.5,
			FeedRateTPH:      500,
			LayerThicknessMM: 150,
			TroughAngleDeg:   20,
		},
		Magnetic: separator.Magnetic{
			GapMM:         280,
			CoreBeltRatio: 0.4,
		},
		Material: separator.Material{
			WaterContentPct: 8,
			TrampSizeMinMM:  10,
			TrampSizeMaxMM:  20,
		},
		Environmental: separator.Environmental{TemperatureC: 35},
	}
}

func inBounds(t *testing.T, in separator.Inputs) {
	t.Helper()
	require.GreaterOrEqual(t, in.Magnetic.GapMM, MinGapMM)
	require.LessOrEqual(t, in.Magnetic.GapMM, MaxGapMM)
	require.GreaterOrEqual(t, in.Magnetic.CoreBeltRatio, MinCoreRatio)
	require.LessOrEqual(t, in.Magnetic.CoreBeltRatio, MaxCoreRatio)
	require.GreaterOrEqual(t, in.Geometric.BeltSpeedMS, MinBeltSpeed)
	require.LessOrEqual(t, in.Geometric.BeltSpeedMS, MaxBeltSpeed)
	require.GreaterOrEqual(t, in.Geometric.LayerThicknessMM, MinFeedDepth)
	require.LessOrEqual(t, in.Geometric.LayerThicknessMM, MaxFeedDepth)
}

func TestOptimizeTerminatesWithinCap(t *testing.T) {
	res, err := Optimize(Input{Inputs: weakDuty(), TargetEfficiency: 0.999, MaxIterations: 40})
	require.NoError(t, err)
	require.LessOrEqual(t, res.Iterations, 40)
	inBounds(t, res.Tuned)
	// 0.999 is above the 0.99 overall clamp, so it can never be achieved.
	require.False(t, res.Achieved)
}

func TestOptimizeImprovesWeakDuty(t *testing.T) {
	start := separator.Calculate(weakDuty()).Efficiency.Overall
	res, err := Optimize(Input{Inputs: weakDuty(), TargetEfficiency: 0.95})
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.BestEfficiency, start)
	require.LessOrEqual(t, res.Iterations, MaxIterations)
	inBounds(t, res.Tuned)
	if res.Achieved {
		require.GreaterOrEqual(t, res.BestEfficiency, 0.95)
		require.NotEmpty(t, res.Changes)
	}
}

func TestOptimizeNoopWhenAlreadyAtTarget(t *testing.T) {
	in := weakDuty()
	in.Magnetic.GapMM = 100
	in.Magnetic.CoreBeltRatio = 0.8
	in.Geometric.BeltSpeedMS = 1.5
	in.Geometric.LayerThicknessMM = 30
	in.Material.WaterContentPct = 0

	target := separator.Calculate(in).Efficiency.Overall
	res, err := Optimize(Input{Inputs: in, TargetEfficiency: target})
	require.NoError(t, err)
	require.True(t, res.Achieved)
	require.Zero(t, res.Iterations)
	require.Empty(t, res.Changes)
}

func TestOptimizeRejectsBadTarget(t *testing.T) {
	_, err := Optimize(Input{Inputs: weakDuty(), TargetEfficiency: 0})
	require.Error(t, err)
	_, err = Optimize(Input{Inputs: weakDuty(), TargetEfficiency: 1.2})
	require.Error(t, err)
}

func TestOptimizeNeverCrossesBounds(t *testing.T) {
	// Start at the edges; no move may push a parameter outside.
	in := weakDuty()
	in.Magnetic.GapMM = MinGapMM
	in.Geometric.BeltSpeedMS = MinBeltSpeed
	in.Geometric.LayerThicknessMM = MinFeedDepth
	in.Magnetic.CoreBeltRatio = MaxCoreRatio

	res, err := Optimize(Input{Inputs: in, TargetEfficiency: 0.999})
	require.NoError(t, err)
	inBounds(t, res.Tuned)
	require.Equal(t, in, res.Tuned, "no legal move exists from the edge configuration")
}
