package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewFrontier(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.04})

	t.Run("rejects empty asset list", func(t *testing.T) {
		_, err := NewFrontier(nil, nil, sigma)
		require.Error(t, err)
	})

	t.Run("rejects mismatched dimensions", func(t *testing.T) {
		_, err := NewFrontier([]string{"A", "B"}, []float64{0.1}, sigma)
		require.Error(t, err)

		_, err = NewFrontier([]string{"A"}, []float64{0.1}, sigma)
		require.Error(t, err)
	})
}

func weightSum(weights map[string]float64) float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum
}

func TestFrontier_MaxSharpe(t *testing.T) {
	t.Run("tilts toward the higher sharpe asset", func(t *testing.T) {
		sigma := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.04})
		frontier, err := NewFrontier([]string{"A", "B"}, []float64{0.10, 0.05}, sigma)
		require.NoError(t, err)

		point, err := frontier.MaxSharpe(0)
		require.NoError(t, err)

		require.InDelta(t, 1, weightSum(point.Weights), 1e-6)
		require.Greater(t, point.Weights["A"], point.Weights["B"])
		require.Greater(t, point.Performance.SharpeRatio, 0.0)
	})

	t.Run("degenerate inputs settle on equal weights", func(t *testing.T) {
		sigma := mat.NewSymDense(2, nil)
		frontier, err := NewFrontier([]string{"A", "B"}, []float64{0, 0}, sigma)
		require.NoError(t, err)

		point, err := frontier.MaxSharpe(0)
		require.NoError(t, err)

		require.InDelta(t, 0.5, point.Weights["A"], 1e-6)
		require.InDelta(t, 0.5, point.Weights["B"], 1e-6)
	})

	t.Run("independent queries do not interfere", func(t *testing.T) {
		sigma := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.09})
		frontier, err := NewFrontier([]string{"A", "B"}, []float64{0.10, 0.05}, sigma)
		require.NoError(t, err)

		first, err := frontier.MaxSharpe(0)
		require.NoError(t, err)
		_, err = frontier.EfficientReturn(0.07)
		require.NoError(t, err)
		second, err := frontier.MaxSharpe(0)
		require.NoError(t, err)

		require.InDelta(t, first.Weights["A"], second.Weights["A"], 1e-9)
		require.InDelta(t, first.Performance.SharpeRatio, second.Performance.SharpeRatio, 1e-9)
	})
}

func TestFrontier_EfficientReturn(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.04})
	frontier, err := NewFrontier([]string{"A", "B"}, []float64{0.10, 0.05}, sigma)
	require.NoError(t, err)

	point, err := frontier.EfficientReturn(0.075)
	require.NoError(t, err)

	require.InDelta(t, 1, weightSum(point.Weights), 1e-6)
	require.InDelta(t, 0.075, point.Performance.ExpectedReturn, 0.02)
}

func TestFrontier_EfficientRisk(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.04})
	frontier, err := NewFrontier([]string{"A", "B"}, []float64{0.10, 0.05}, sigma)
	require.NoError(t, err)

	point, err := frontier.EfficientRisk(0.2)
	require.NoError(t, err)

	require.InDelta(t, 1, weightSum(point.Weights), 1e-6)
	// at the full volatility budget the higher-return asset dominates
	require.Greater(t, point.Weights["A"], point.Weights["B"])
	require.Greater(t, point.Performance.ExpectedReturn, 0.07)
}
