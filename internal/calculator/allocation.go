package calculator

import (
	"etfoptimizer/internal/domain"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

type AllocationStrategy string

const (
	StrategyOptimal AllocationStrategy = "optimal"
	StrategyGreedy  AllocationStrategy = "greedy"
)

func ParseAllocationStrategy(s string) (AllocationStrategy, error) {
	switch AllocationStrategy(s) {
	case StrategyOptimal, StrategyGreedy:
		return AllocationStrategy(s), nil
	}
	return "", fmt.Errorf("unknown allocation strategy %q", s)
}

// CutoffWeights zeroes weights below the cutoff and renormalizes the rest
// to sum to 1. Funds the solver barely touched would otherwise produce
// zero-share noise in the allocation.
func CutoffWeights(weights map[string]float64, cutoff float64) map[string]float64 {
	out := map[string]float64{}
	var sum float64
	for isin, w := range weights {
		if w >= cutoff {
			out[isin] = w
			sum += w
		}
	}
	if sum > 0 {
		for isin := range out {
			out[isin] /= sum
		}
	}
	return out
}

type allocationInput struct {
	isins   []string
	weights []float64
	prices  []decimal.Decimal
}

// prepare orders the positive-weight isins deterministically and pairs them
// with prices. A weighted isin with no price snapshot is an error - it
// would silently skew the whole allocation.
func prepare(weights map[string]float64, prices map[string]decimal.Decimal) (*allocationInput, error) {
	isins := []string{}
	for isin, w := range weights {
		if w > 0 {
			isins = append(isins, isin)
		}
	}
	sort.Strings(isins)

	in := &allocationInput{isins: isins}
	for _, isin := range isins {
		price, ok := prices[isin]
		if !ok || !price.IsPositive() {
			return nil, fmt.Errorf("no price snapshot for %s", isin)
		}
		in.weights = append(in.weights, weights[isin])
		in.prices = append(in.prices, price)
	}
	return in, nil
}

// AllocateGreedy converts continuous weights into whole-share counts: a
// floor pass buys each fund's target quantity rounded down, then leftover
// cash buys one share at a time of the fund with the largest remaining
// weight deficit. Deterministic, fast, not guaranteed minimal-leftover.
func AllocateGreedy(weights map[string]float64, prices map[string]decimal.Decimal, budget decimal.Decimal, reinvest bool) (*domain.Allocation, error) {
	in, err := prepare(weights, prices)
	if err != nil {
		return nil, err
	}

	allocation := domain.NewAllocation(budget)
	remaining := budget
	shares := make([]int64, len(in.isins))

	for i := range in.isins {
		target := budget.Mul(decimal.NewFromFloat(in.weights[i])).Div(in.prices[i])
		count := target.Floor().IntPart()
		cost := in.prices[i].Mul(decimal.NewFromInt(count))
		for count > 0 && cost.GreaterThan(remaining) {
			count--
			cost = in.prices[i].Mul(decimal.NewFromInt(count))
		}
		shares[i] = count
		remaining = remaining.Sub(cost)
	}

	// remainder pass: repeatedly buy the fund whose held fraction lags its
	// target weight the most
	for {
		best := -1
		bestDeficit := 0.0
		for i := range in.isins {
			if in.prices[i].GreaterThan(remaining) {
				continue
			}
			if !reinvest && shares[i] == 0 {
				continue
			}
			held, _ := in.prices[i].Mul(decimal.NewFromInt(shares[i])).Div(budget).Float64()
			deficit := in.weights[i] - held
			if best == -1 || deficit > bestDeficit {
				best = i
				bestDeficit = deficit
			}
		}
		if best == -1 {
			break
		}
		shares[best]++
		remaining = remaining.Sub(in.prices[best])
	}

	for i, isin := range in.isins {
		if shares[i] > 0 {
			allocation.Shares[isin] = shares[i]
		}
	}
	allocation.Leftover = remaining

	return allocation, nil
}

// AllocateOptimal minimizes leftover cash with a bounded search around each
// fund's continuous target quantity. The search explores a small window of
// share counts per fund and prunes branches that cannot beat the best
// leftover found so far; leftover ties go to the counts closest to the
// continuous targets. With reinvest set, any remaining cash is then greedily
// spent on additional shares of already-selected funds.
func AllocateOptimal(weights map[string]float64, prices map[string]decimal.Decimal, budget decimal.Decimal, reinvest bool) (*domain.Allocation, error) {
	in, err := prepare(weights, prices)
	if err != nil {
		return nil, err
	}

	n := len(in.isins)
	allocation := domain.NewAllocation(budget)
	if n == 0 {
		return allocation, nil
	}

	// window of candidate counts per fund, centered on the continuous
	// target; narrower for wide portfolios to bound the search
	searchWindow := int64(3)
	if n > 10 {
		searchWindow = 1
	}
	targets := make([]int64, n)
	targetExact := make([]float64, n)
	for i := range in.isins {
		exact := budget.Mul(decimal.NewFromFloat(in.weights[i])).Div(in.prices[i])
		targets[i] = exact.Floor().IntPart()
		targetExact[i] = exact.InexactFloat64()
	}

	// maxSpend[i]: most that funds i..n-1 can possibly cost, for pruning
	maxSpend := make([]decimal.Decimal, n+1)
	maxSpend[n] = decimal.Zero
	for i := n - 1; i >= 0; i-- {
		maxSpend[i] = maxSpend[i+1].Add(in.prices[i].Mul(decimal.NewFromInt(targets[i] + searchWindow)))
	}

	best := make([]int64, n)
	bestLeftover := budget
	bestDeviation := math.Inf(1)
	current := make([]int64, n)

	deviation := func(counts []int64) float64 {
		var sum float64
		for i, count := range counts {
			sum += math.Abs(float64(count) - targetExact[i])
		}
		return sum
	}

	var search func(i int, remaining decimal.Decimal)
	search = func(i int, remaining decimal.Decimal) {
		if remaining.IsNegative() {
			return
		}
		// even spending the maximum downstream cannot beat the incumbent
		if remaining.Sub(maxSpend[i]).GreaterThan(bestLeftover) {
			return
		}
		if i == n {
			dev := deviation(current)
			if remaining.LessThan(bestLeftover) ||
				(remaining.Equal(bestLeftover) && dev < bestDeviation) {
				bestLeftover = remaining
				bestDeviation = dev
				copy(best, current)
			}
			return
		}
		// try the largest affordable counts first so pruning kicks in early
		hi := targets[i] + searchWindow
		lo := targets[i] - searchWindow
		if lo < 0 {
			lo = 0
		}
		for count := hi; count >= lo; count-- {
			cost := in.prices[i].Mul(decimal.NewFromInt(count))
			if cost.GreaterThan(remaining) {
				continue
			}
			current[i] = count
			search(i+1, remaining.Sub(cost))
		}
		current[i] = 0
	}
	search(0, budget)

	remaining := budget
	for i := range best {
		remaining = remaining.Sub(in.prices[i].Mul(decimal.NewFromInt(best[i])))
	}

	if reinvest {
		for {
			bought := false
			for i := range in.isins {
				if best[i] > 0 && !in.prices[i].GreaterThan(remaining) {
					best[i]++
					remaining = remaining.Sub(in.prices[i])
					bought = true
				}
			}
			if !bought {
				break
			}
		}
	}

	for i, isin := range in.isins {
		if best[i] > 0 {
			allocation.Shares[isin] = best[i]
		}
	}
	allocation.Leftover = remaining

	return allocation, nil
}

// Allocate dispatches on the chosen strategy.
func Allocate(strategy AllocationStrategy, weights map[string]float64, prices map[string]decimal.Decimal, budget decimal.Decimal, reinvest bool) (*domain.Allocation, error) {
	switch strategy {
	case StrategyGreedy, "":
		return AllocateGreedy(weights, prices, budget, reinvest)
	case StrategyOptimal:
		return AllocateOptimal(weights, prices, budget, reinvest)
	}
	return nil, fmt.Errorf("unknown allocation strategy %q", strategy)
}
