package calculator

import (
	"etfoptimizer/internal/domain"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const tradingDaysPerYear = 252

// ReturnRiskModel selects which return estimator and which risk estimator
// feed the frontier solver.
type ReturnRiskModel string

const (
	ModelMeanVariance        ReturnRiskModel = "mean_variance"
	ModelCapmSemicovariance  ReturnRiskModel = "capm_semicovariance"
	ModelExponentialVariance ReturnRiskModel = "exponential_variance"
)

func ParseReturnRiskModel(s string) (ReturnRiskModel, error) {
	switch ReturnRiskModel(s) {
	case ModelMeanVariance, ModelCapmSemicovariance, ModelExponentialVariance:
		return ReturnRiskModel(s), nil
	}
	return "", fmt.Errorf("unknown return/risk model %q", s)
}

// ClipPolicy bounds per-asset expected return estimates before they reach
// the solver. The default [0, 1] clamp tames extreme annualized estimates
// from short or noisy histories; it is a deliberate simplification carried
// over from the original pipeline, not a statistical argument.
type ClipPolicy struct {
	Min      float64
	Max      float64
	Disabled bool
}

func DefaultClipPolicy() ClipPolicy {
	return ClipPolicy{Min: 0, Max: 1}
}

func (p ClipPolicy) Apply(returns []float64) {
	if p.Disabled {
		return
	}
	for i, r := range returns {
		if r < p.Min {
			returns[i] = p.Min
		} else if r > p.Max {
			returns[i] = p.Max
		}
	}
}

// dailyReturns computes simple percent returns per column. The resulting
// matrix has one fewer row than the input.
func dailyReturns(m domain.PriceMatrix) [][]float64 {
	if m.NumDates() < 2 {
		return [][]float64{}
	}
	out := make([][]float64, m.NumDates()-1)
	for i := 1; i < m.NumDates(); i++ {
		row := make([]float64, m.NumAssets())
		for j := 0; j < m.NumAssets(); j++ {
			prev := m.Values[i-1][j]
			row[j] = (m.Values[i][j] - prev) / prev
		}
		out[i-1] = row
	}
	return out
}

func columnOf(rows [][]float64, j int) []float64 {
	out := make([]float64, len(rows))
	for i := range rows {
		out[i] = rows[i][j]
	}
	return out
}

// MeanHistoricalReturns estimates annualized expected returns by
// compounding the mean daily return.
func MeanHistoricalReturns(m domain.PriceMatrix) []float64 {
	rets := dailyReturns(m)
	out := make([]float64, m.NumAssets())
	for j := range out {
		mean := stat.Mean(columnOf(rets, j), nil)
		out[j] = math.Pow(1+mean, tradingDaysPerYear) - 1
	}
	return out
}

// ExponentialReturns estimates annualized expected returns from an
// exponentially weighted mean of daily returns, weighting recent
// observations more heavily.
func ExponentialReturns(m domain.PriceMatrix, span int) []float64 {
	if span <= 0 {
		span = 500
	}
	rets := dailyReturns(m)
	alpha := 2.0 / (float64(span) + 1)

	out := make([]float64, m.NumAssets())
	for j := range out {
		series := columnOf(rets, j)
		var ewma, weightSum float64
		weight := 1.0
		// newest observation carries full weight, decaying backward in time
		for i := len(series) - 1; i >= 0; i-- {
			ewma += weight * series[i]
			weightSum += weight
			weight *= 1 - alpha
		}
		if weightSum > 0 {
			ewma /= weightSum
		}
		out[j] = math.Pow(1+ewma, tradingDaysPerYear) - 1
	}
	return out
}

// CapmReturns estimates expected returns via the capital asset pricing
// model, using the equal-weighted average of all selected assets as the
// market proxy.
func CapmReturns(m domain.PriceMatrix, riskFreeRate float64) []float64 {
	rets := dailyReturns(m)
	n := m.NumAssets()

	market := make([]float64, len(rets))
	for i, row := range rets {
		var sum float64
		for _, r := range row {
			sum += r
		}
		market[i] = sum / float64(n)
	}

	marketVar := stat.Variance(market, nil)
	marketMean := stat.Mean(market, nil)
	marketAnnual := math.Pow(1+marketMean, tradingDaysPerYear) - 1

	out := make([]float64, n)
	for j := 0; j < n; j++ {
		beta := 1.0
		if marketVar > 0 {
			beta = stat.Covariance(columnOf(rets, j), market, nil) / marketVar
		}
		out[j] = riskFreeRate + beta*(marketAnnual-riskFreeRate)
	}
	return out
}
