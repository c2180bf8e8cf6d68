package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleCovariance(t *testing.T) {
	t.Run("identical assets produce a constant matrix", func(t *testing.T) {
		m := matrixOf([][]float64{
			{100, 100},
			{110, 110},
			{99, 99},
		})
		sigma := SampleCovariance(m)

		// daily returns are +0.1 and -0.1, sample variance 0.02
		want := 0.02 * tradingDaysPerYear
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				require.InDelta(t, want, sigma.At(i, j), 1e-9)
			}
		}
	})

	t.Run("independent flat asset has zero variance", func(t *testing.T) {
		m := matrixOf([][]float64{
			{100, 50},
			{110, 50},
			{99, 50},
		})
		sigma := SampleCovariance(m)
		require.InDelta(t, 0, sigma.At(1, 1), 1e-12)
		require.InDelta(t, 0, sigma.At(0, 1), 1e-12)
	})
}

func TestShrunkCovariance(t *testing.T) {
	m := matrixOf([][]float64{
		{100, 50},
		{110, 51},
		{99, 49.5},
		{104, 50.2},
		{101, 50.9},
	})
	sample := SampleCovariance(m)
	shrunk := ShrunkCovariance(m)

	require.Equal(t, 2, shrunk.SymmetricDim())

	// shrinkage pulls off-diagonal entries toward zero
	require.LessOrEqual(t, math.Abs(shrunk.At(0, 1)), math.Abs(sample.At(0, 1))+1e-12)

	// diagonal stays within the sample variance range
	lo := math.Min(sample.At(0, 0), sample.At(1, 1))
	hi := math.Max(sample.At(0, 0), sample.At(1, 1))
	require.GreaterOrEqual(t, shrunk.At(0, 0), lo-1e-12)
	require.LessOrEqual(t, shrunk.At(0, 0), hi+1e-12)
}

func TestSemicovariance(t *testing.T) {
	m := matrixOf([][]float64{
		{100, 100},
		{110, 110},
		{99, 99},
	})
	sigma := Semicovariance(m, 0)

	// only the -0.1 move counts: 0.01 / 2 observations, annualized
	want := 0.01 / 2 * tradingDaysPerYear
	require.InDelta(t, want, sigma.At(0, 0), 1e-9)
	require.InDelta(t, want, sigma.At(0, 1), 1e-9)
}
