package calculator

import (
	"etfoptimizer/internal/domain"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SampleCovariance computes the annualized sample covariance matrix of
// daily returns.
func SampleCovariance(m domain.PriceMatrix) *mat.SymDense {
	rets := dailyReturns(m)
	n := m.NumAssets()

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov := stat.Covariance(columnOf(rets, i), columnOf(rets, j), nil)
			out.SetSym(i, j, cov*tradingDaysPerYear)
		}
	}
	return out
}

// ShrunkCovariance blends the sample covariance toward a constant-variance
// target (Ledoit-Wolf style). Shrinkage reduces the estimation noise that
// makes raw sample covariances unstable for mid-sized histories.
func ShrunkCovariance(m domain.PriceMatrix) *mat.SymDense {
	rets := dailyReturns(m)
	n := m.NumAssets()
	t := len(rets)

	sample := SampleCovariance(m)
	if t < 2 || n < 2 {
		return sample
	}

	// target: average variance on the diagonal, zero elsewhere
	var avgVar float64
	for i := 0; i < n; i++ {
		avgVar += sample.At(i, i)
	}
	avgVar /= float64(n)

	delta := ledoitWolfConstant(rets, sample)

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			target := 0.0
			if i == j {
				target = avgVar
			}
			out.SetSym(i, j, delta*target+(1-delta)*sample.At(i, j))
		}
	}
	return out
}

// ledoitWolfConstant estimates the optimal shrinkage intensity for the
// constant-variance target, clamped to [0, 1].
func ledoitWolfConstant(rets [][]float64, sample *mat.SymDense) float64 {
	n := sample.SymmetricDim()
	t := len(rets)

	means := make([]float64, n)
	for j := 0; j < n; j++ {
		means[j] = stat.Mean(columnOf(rets, j), nil)
	}

	// pi: sum of asymptotic variances of the sample covariance entries
	var pi, gamma float64
	var avgVar float64
	for i := 0; i < n; i++ {
		avgVar += sample.At(i, i)
	}
	avgVar /= float64(n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var piEntry float64
			for k := 0; k < t; k++ {
				d := (rets[k][i]-means[i])*(rets[k][j]-means[j])*tradingDaysPerYear - sample.At(i, j)
				piEntry += d * d
			}
			pi += piEntry / float64(t)

			target := 0.0
			if i == j {
				target = avgVar
			}
			diff := sample.At(i, j) - target
			gamma += diff * diff
		}
	}

	if gamma == 0 {
		return 0
	}
	delta := (pi / float64(t)) / gamma
	return math.Max(0, math.Min(1, delta))
}

// Semicovariance computes the annualized covariance of below-benchmark
// daily returns. Upside moves are zeroed so only downside co-movement
// contributes to risk.
func Semicovariance(m domain.PriceMatrix, benchmark float64) *mat.SymDense {
	rets := dailyReturns(m)
	n := m.NumAssets()
	t := len(rets)

	out := mat.NewSymDense(n, nil)
	if t == 0 {
		return out
	}

	downside := make([][]float64, t)
	for k, row := range rets {
		d := make([]float64, n)
		for j, r := range row {
			if r < benchmark {
				d[j] = r - benchmark
			}
		}
		downside[k] = d
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var sum float64
			for k := 0; k < t; k++ {
				sum += downside[k][i] * downside[k][j]
			}
			out.SetSym(i, j, sum/float64(t)*tradingDaysPerYear)
		}
	}
	return out
}
