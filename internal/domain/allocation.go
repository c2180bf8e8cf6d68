package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allocation maps each isin to a whole-share purchase count, plus the cash
// that could not be invested. An empty Shares map with Leftover equal to the
// full budget is a valid terminal state, not an error.
type Allocation struct {
	Shares   map[string]int64
	Leftover decimal.Decimal
}

func NewAllocation(budget decimal.Decimal) *Allocation {
	return &Allocation{
		Shares:   map[string]int64{},
		Leftover: budget,
	}
}

func (a Allocation) HeldIsins() []string {
	isins := []string{}
	for isin, shares := range a.Shares {
		if shares > 0 {
			isins = append(isins, isin)
		}
	}
	return isins
}

// Invested returns the total purchase cost of the allocation at the
// given per-share prices.
func (a Allocation) Invested(priceMap map[string]decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for isin, shares := range a.Shares {
		price, ok := priceMap[isin]
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot value allocation: price map missing %s", isin)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(shares)))
	}
	return total, nil
}

type PortfolioPerformance struct {
	ExpectedReturn float64
	Volatility     float64
	SharpeRatio    float64
}
