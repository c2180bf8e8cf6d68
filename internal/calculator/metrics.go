package calculator

import (
	"etfoptimizer/internal/domain"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

type CurveMetrics struct {
	AnnualizedStdev  float64
	AnnualizedReturn float64
	SharpeRatio      float64
}

// CalculateCurveMetrics computes realized performance stats over a daily
// portfolio value curve. It assumes the curve sufficiently covers the
// replay window, which should be a year or more for the annualization to
// mean much.
func CalculateCurveMetrics(curve []domain.ValuePoint) (*CurveMetrics, error) {
	if len(curve) < 2 {
		return nil, fmt.Errorf("cannot calculate metrics on < 2 curve points")
	}
	sort.Slice(curve, func(i, j int) bool {
		return curve[i].Date.Before(curve[j].Date)
	})

	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Value
		if prev.IsZero() {
			return nil, fmt.Errorf("curve value is zero on %v", curve[i-1].Date)
		}
		returns = append(returns, curve[i].Value.Sub(prev).Div(prev).InexactFloat64())
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, err
	}
	annualizedStdev := stdev * math.Sqrt(tradingDaysPerYear)

	startValue := curve[0].Value.InexactFloat64()
	endValue := curve[len(curve)-1].Value.InexactFloat64()
	numHours := curve[len(curve)-1].Date.Sub(curve[0].Date).Hours()
	numYears := numHours / (365 * 24)
	annualizedReturn := math.Pow(endValue/startValue, 1/numYears) - 1

	sharpeRatio := 0.0
	if stdev > 0 {
		sharpeRatio = annualizedReturn / stdev
	}

	return &CurveMetrics{
		AnnualizedStdev:  annualizedStdev,
		AnnualizedReturn: annualizedReturn,
		SharpeRatio:      sharpeRatio,
	}, nil
}
