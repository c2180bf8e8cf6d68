package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuePoint is one day of a portfolio value curve.
type ValuePoint struct {
	Date  time.Time
	Value decimal.Decimal
}
