package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCutoffWeights(t *testing.T) {
	weights := map[string]float64{
		"A": 0.6,
		"B": 0.38,
		"C": 0.02,
	}
	out := CutoffWeights(weights, 0.05)

	require.NotContains(t, out, "C")
	require.InDelta(t, 0.6/0.98, out["A"], 1e-12)
	require.InDelta(t, 0.38/0.98, out["B"], 1e-12)
}

func TestAllocateGreedy(t *testing.T) {
	t.Run("even split spends the whole budget", func(t *testing.T) {
		allocation, err := AllocateGreedy(
			map[string]float64{"A": 0.5, "B": 0.5},
			map[string]decimal.Decimal{
				"A": decimal.NewFromInt(100),
				"B": decimal.NewFromInt(100),
			},
			decimal.NewFromInt(1000),
			false,
		)
		require.NoError(t, err)
		require.Equal(t, map[string]int64{"A": 5, "B": 5}, allocation.Shares)
		require.True(t, allocation.Leftover.IsZero())
	})

	t.Run("never exceeds the budget", func(t *testing.T) {
		weights := map[string]float64{"A": 0.45, "B": 0.35, "C": 0.2}
		prices := map[string]decimal.Decimal{
			"A": decimal.NewFromFloat(97.31),
			"B": decimal.NewFromFloat(211.84),
			"C": decimal.NewFromFloat(13.57),
		}
		budget := decimal.NewFromInt(2500)

		allocation, err := AllocateGreedy(weights, prices, budget, false)
		require.NoError(t, err)

		invested, err := allocation.Invested(prices)
		require.NoError(t, err)
		require.True(t, invested.Add(allocation.Leftover).Equal(budget))
		require.False(t, allocation.Leftover.IsNegative())
		for isin, count := range allocation.Shares {
			require.Positive(t, count, "isin %s", isin)
		}
	})

	t.Run("budget below the cheapest share buys nothing", func(t *testing.T) {
		budget := decimal.NewFromInt(40)
		allocation, err := AllocateGreedy(
			map[string]float64{"A": 0.5, "B": 0.5},
			map[string]decimal.Decimal{
				"A": decimal.NewFromInt(100),
				"B": decimal.NewFromInt(50),
			},
			budget,
			false,
		)
		require.NoError(t, err)
		require.Empty(t, allocation.Shares)
		require.True(t, allocation.Leftover.Equal(budget))
	})

	t.Run("weighted isin without a price is an error", func(t *testing.T) {
		_, err := AllocateGreedy(
			map[string]float64{"A": 1},
			map[string]decimal.Decimal{},
			decimal.NewFromInt(1000),
			false,
		)
		require.ErrorContains(t, err, "no price snapshot for A")
	})
}

func TestAllocateOptimal(t *testing.T) {
	t.Run("even split spends the whole budget", func(t *testing.T) {
		allocation, err := AllocateOptimal(
			map[string]float64{"A": 0.5, "B": 0.5},
			map[string]decimal.Decimal{
				"A": decimal.NewFromInt(100),
				"B": decimal.NewFromInt(100),
			},
			decimal.NewFromInt(1000),
			false,
		)
		require.NoError(t, err)
		require.Equal(t, map[string]int64{"A": 5, "B": 5}, allocation.Shares)
		require.True(t, allocation.Leftover.IsZero())
	})

	t.Run("finds a smaller leftover than the greedy pass", func(t *testing.T) {
		weights := map[string]float64{"A": 0.5, "B": 0.5}
		prices := map[string]decimal.Decimal{
			"A": decimal.NewFromInt(49),
			"B": decimal.NewFromInt(33),
		}
		budget := decimal.NewFromInt(100)

		greedy, err := AllocateGreedy(weights, prices, budget, false)
		require.NoError(t, err)
		optimal, err := AllocateOptimal(weights, prices, budget, false)
		require.NoError(t, err)

		// greedy buys one of each (82), the exhaustive search finds 3xB (99)
		require.True(t, optimal.Leftover.LessThan(greedy.Leftover),
			"optimal %s vs greedy %s", optimal.Leftover, greedy.Leftover)
		require.True(t, optimal.Leftover.Equal(decimal.NewFromInt(1)))
		require.Equal(t, map[string]int64{"B": 3}, optimal.Shares)
	})

	t.Run("budget below the cheapest share buys nothing", func(t *testing.T) {
		budget := decimal.NewFromInt(40)
		allocation, err := AllocateOptimal(
			map[string]float64{"A": 0.5, "B": 0.5},
			map[string]decimal.Decimal{
				"A": decimal.NewFromInt(100),
				"B": decimal.NewFromInt(50),
			},
			budget,
			false,
		)
		require.NoError(t, err)
		require.Empty(t, allocation.Shares)
		require.True(t, allocation.Leftover.Equal(budget))
	})

	t.Run("reinvest spends leftover on held funds", func(t *testing.T) {
		allocation, err := AllocateOptimal(
			map[string]float64{"A": 1},
			map[string]decimal.Decimal{"A": decimal.NewFromInt(30)},
			decimal.NewFromInt(100),
			true,
		)
		require.NoError(t, err)
		require.Equal(t, map[string]int64{"A": 3}, allocation.Shares)
		require.True(t, allocation.Leftover.Equal(decimal.NewFromInt(10)))
	})
}

func TestAllocate(t *testing.T) {
	weights := map[string]float64{"A": 1}
	prices := map[string]decimal.Decimal{"A": decimal.NewFromInt(10)}
	budget := decimal.NewFromInt(25)

	t.Run("defaults to greedy", func(t *testing.T) {
		allocation, err := Allocate("", weights, prices, budget, false)
		require.NoError(t, err)
		require.Equal(t, map[string]int64{"A": 2}, allocation.Shares)
	})

	t.Run("rejects unknown strategies", func(t *testing.T) {
		_, err := Allocate("magic", weights, prices, budget, false)
		require.Error(t, err)
	})
}
