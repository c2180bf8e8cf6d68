package domain

import "time"

type AssetPrice struct {
	Isin  string
	Price float64
	Date  time.Time
}

// PriceMatrix is a dense, date-indexed view over a set of price series.
// Rows are dates in ascending order, one column per isin. Every cell is
// populated - dates with partial coverage are dropped during construction.
type PriceMatrix struct {
	Isins  []string
	Dates  []time.Time
	Values [][]float64
}

func (m PriceMatrix) IsEmpty() bool {
	return len(m.Dates) == 0 || len(m.Isins) == 0
}

func (m PriceMatrix) NumAssets() int {
	return len(m.Isins)
}

func (m PriceMatrix) NumDates() int {
	return len(m.Dates)
}
