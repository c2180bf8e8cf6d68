package calculator

import (
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/util"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func matrixOf(values [][]float64) domain.PriceMatrix {
	isins := make([]string, len(values[0]))
	for j := range isins {
		isins[j] = string(rune('A' + j))
	}
	dates := make([]time.Time, len(values))
	for i := range dates {
		dates[i] = util.NewDate(2021, 1, 1).AddDate(0, 0, i)
	}
	return domain.PriceMatrix{Isins: isins, Dates: dates, Values: values}
}

func TestParseReturnRiskModel(t *testing.T) {
	model, err := ParseReturnRiskModel("capm_semicovariance")
	require.NoError(t, err)
	require.Equal(t, ModelCapmSemicovariance, model)

	_, err = ParseReturnRiskModel("magic")
	require.Error(t, err)
}

func TestClipPolicy_Apply(t *testing.T) {
	t.Run("default clamps to [0, 1]", func(t *testing.T) {
		returns := []float64{-0.5, 0.3, 2.4}
		DefaultClipPolicy().Apply(returns)
		require.Equal(t, []float64{0, 0.3, 1}, returns)
	})

	t.Run("disabled leaves estimates alone", func(t *testing.T) {
		returns := []float64{-0.5, 2.4}
		ClipPolicy{Disabled: true}.Apply(returns)
		require.Equal(t, []float64{-0.5, 2.4}, returns)
	})
}

func TestMeanHistoricalReturns(t *testing.T) {
	t.Run("flat prices mean zero return", func(t *testing.T) {
		m := matrixOf([][]float64{
			{100, 50},
			{100, 50},
			{100, 50},
		})
		mu := MeanHistoricalReturns(m)
		require.InDelta(t, 0, mu[0], 1e-12)
		require.InDelta(t, 0, mu[1], 1e-12)
	})

	t.Run("steady growth compounds to the annualized rate", func(t *testing.T) {
		m := matrixOf([][]float64{
			{100},
			{101},
			{102.01},
		})
		mu := MeanHistoricalReturns(m)
		require.InDelta(t, math.Pow(1.01, tradingDaysPerYear)-1, mu[0], 1e-6)
	})
}

func TestExponentialReturns(t *testing.T) {
	t.Run("constant daily return matches the historical mean", func(t *testing.T) {
		m := matrixOf([][]float64{
			{100},
			{101},
			{102.01},
			{103.0301},
		})
		mu := ExponentialReturns(m, 0)
		require.InDelta(t, math.Pow(1.01, tradingDaysPerYear)-1, mu[0], 1e-4)
	})

	t.Run("recent observations outweigh old ones", func(t *testing.T) {
		// A grows 1% daily over the last five days, B over the first five;
		// the series are mirrors of each other otherwise
		days := 26
		values := make([][]float64, days)
		for i := 0; i < days; i++ {
			values[i] = []float64{
				100 * math.Pow(1.01, math.Max(0, float64(i-(days-6)))),
				100 * math.Pow(1.01, math.Min(float64(i), 5)),
			}
		}

		mu := ExponentialReturns(matrixOf(values), 5)
		require.Greater(t, mu[0], mu[1])
	})
}

func TestCapmReturns(t *testing.T) {
	t.Run("identical assets carry the market return", func(t *testing.T) {
		m := matrixOf([][]float64{
			{100, 100},
			{110, 110},
			{99, 99},
		})
		mu := CapmReturns(m, 0.02)
		// beta is exactly 1, so the risk free rate cancels out
		require.InDelta(t, mu[0], mu[1], 1e-12)

		market := MeanHistoricalReturns(m)[0]
		require.InDelta(t, market, mu[0], 1e-9)
	})
}
