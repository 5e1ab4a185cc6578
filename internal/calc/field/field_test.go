package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGaussAtGapMonotoneDecay(t *testing.T) {
	const surface = 2410.0
	prev := surface
	for gap := 1.0; gap <= 400; gap += 1.0 {
		got := GaussAtGap(surface, gap)
		require.Less(t, got, prev, "gauss must strictly decrease with gap, gap=%v", gap)
		require.LessOrEqual(t, got, surface)
		require.Greater(t, got, 0.0)
		prev = got
	}
	require.Equal(t, surface, GaussAtGap(surface, 0))
}

func TestForceFactorDecaysAtDoubleRate(t *testing.T) {
	const surface = 1500.0
	for _, gap := range []float64{5, 25, 100, 150, 275} {
		g := math.Log(GaussAtGap(surface, gap) / surface)
		f := math.Log(ForceFactorAtGap(surface, gap) / surface)
		require.InDelta(t, 2*g, f, 1e-12, "gap=%v", gap)
	}
}

func TestAvailableForceAtSaturation(t *testing.T) {
	// B = 1.8 T over 0.001 m2: 1.8^2 * 0.001 / (2 * mu0) ~ 1289.4 N.
	got := AvailableForceN(SaturationT, 0.001)
	require.InEpsilon(t, 1289.4, got, 0.001)
}

func TestAvailableForceScalesWithArea(t *testing.T) {
	f1 := AvailableForceN(1.2, 0.0005)
	f2 := AvailableForceN(1.2, 0.001)
	require.InDelta(t, 2*f1, f2, 1e-9)
}
