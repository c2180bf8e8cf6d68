package calculator

import (
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/util"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func curveOf(values ...float64) []domain.ValuePoint {
	out := make([]domain.ValuePoint, len(values))
	for i, v := range values {
		out[i] = domain.ValuePoint{
			Date:  util.NewDate(2021, 1, 1).AddDate(0, 0, i),
			Value: decimal.NewFromFloat(v),
		}
	}
	return out
}

func TestCalculateCurveMetrics(t *testing.T) {
	t.Run("steady growth has zero volatility", func(t *testing.T) {
		metrics, err := CalculateCurveMetrics(curveOf(100, 101, 102.01, 103.0301, 104.060401))
		require.NoError(t, err)

		require.InDelta(t, 0, metrics.AnnualizedStdev, 1e-9)
		require.Greater(t, metrics.AnnualizedReturn, 0.0)
		require.InDelta(t, 0, metrics.SharpeRatio, 1e-9)
	})

	t.Run("volatile curve has positive stdev", func(t *testing.T) {
		metrics, err := CalculateCurveMetrics(curveOf(100, 110, 99, 104, 101))
		require.NoError(t, err)
		require.Greater(t, metrics.AnnualizedStdev, 0.0)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := CalculateCurveMetrics(curveOf(100))
		require.Error(t, err)
	})

	t.Run("zero value breaks the return series", func(t *testing.T) {
		_, err := CalculateCurveMetrics(curveOf(100, 0, 50))
		require.Error(t, err)
	})
}
