package calculator

import (
	"etfoptimizer/internal/domain"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	penaltyWeight = 1000.0
	varianceFloor = 1e-10
)

// Frontier is an immutable (expected returns, covariance) pair. Each
// terminal query (max Sharpe, efficient return, efficient risk) solves an
// independent problem and returns its own FrontierPoint; no state is shared
// or mutated across queries.
type Frontier struct {
	isins []string
	mu    []float64
	sigma *mat.SymDense
}

type FrontierPoint struct {
	Weights     map[string]float64
	Performance domain.PortfolioPerformance
}

func NewFrontier(isins []string, mu []float64, sigma *mat.SymDense) (*Frontier, error) {
	n := len(isins)
	if n == 0 {
		return nil, fmt.Errorf("cannot build frontier with no assets")
	}
	if len(mu) != n {
		return nil, fmt.Errorf("expected returns size %d does not match %d assets", len(mu), n)
	}
	if sigma.SymmetricDim() != n {
		return nil, fmt.Errorf("covariance size %d does not match %d assets", sigma.SymmetricDim(), n)
	}

	return &Frontier{
		isins: isins,
		mu:    append([]float64{}, mu...),
		sigma: sigma,
	}, nil
}

func (f *Frontier) portfolioReturn(w []float64) float64 {
	var out float64
	for i, wi := range w {
		out += f.mu[i] * wi
	}
	return out
}

func (f *Frontier) portfolioVariance(w []float64) float64 {
	var out float64
	n := len(w)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out += w[i] * w[j] * f.sigma.At(i, j)
		}
	}
	return out
}

// MaxSharpe finds the long-only portfolio maximizing the Sharpe ratio over
// the given risk-free rate.
func (f *Frontier) MaxSharpe(riskFreeRate float64) (*FrontierPoint, error) {
	n := len(f.isins)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectLongOnly(x)
			stdev := math.Sqrt(math.Max(f.portfolioVariance(w), varianceFloor))
			obj := -(f.portfolioReturn(w) - riskFreeRate) / stdev
			return obj + sumPenalty(w)
		},
		Grad: func(grad, x []float64) {
			w := projectLongOnly(x)
			ret := f.portfolioReturn(w) - riskFreeRate
			variance := math.Max(f.portfolioVariance(w), varianceFloor)
			stdev := math.Sqrt(variance)

			for i := 0; i < n; i++ {
				var dVar float64
				for j := 0; j < n; j++ {
					dVar += 2 * f.sigma.At(i, j) * w[j]
				}
				grad[i] = -f.mu[i]/stdev + ret*dVar/(2*stdev*variance)
			}
			addSumPenaltyGradient(grad, w)
		},
	}

	w, err := solve(problem, n)
	if err != nil {
		return nil, fmt.Errorf("max sharpe query failed: %w", err)
	}
	return f.point(w, riskFreeRate), nil
}

// EfficientReturn finds the minimum-variance portfolio achieving the target
// expected return.
func (f *Frontier) EfficientReturn(targetReturn float64) (*FrontierPoint, error) {
	n := len(f.isins)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectLongOnly(x)
			retDiff := f.portfolioReturn(w) - targetReturn
			return f.portfolioVariance(w) + sumPenalty(w) + penaltyWeight*retDiff*retDiff
		},
		Grad: func(grad, x []float64) {
			w := projectLongOnly(x)
			retDiff := f.portfolioReturn(w) - targetReturn
			for i := 0; i < n; i++ {
				grad[i] = 2 * penaltyWeight * retDiff * f.mu[i]
				for j := 0; j < n; j++ {
					grad[i] += 2 * f.sigma.At(i, j) * w[j]
				}
			}
			addSumPenaltyGradient(grad, w)
		},
	}

	w, err := solve(problem, n)
	if err != nil {
		return nil, fmt.Errorf("efficient return query failed: %w", err)
	}
	return f.point(w, 0), nil
}

// EfficientRisk finds the maximum-return portfolio at the target
// volatility.
func (f *Frontier) EfficientRisk(targetVolatility float64) (*FrontierPoint, error) {
	n := len(f.isins)
	targetVar := targetVolatility * targetVolatility

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectLongOnly(x)
			varDiff := f.portfolioVariance(w) - targetVar
			return -f.portfolioReturn(w) + sumPenalty(w) + penaltyWeight*varDiff*varDiff
		},
		Grad: func(grad, x []float64) {
			w := projectLongOnly(x)
			varDiff := f.portfolioVariance(w) - targetVar
			for i := 0; i < n; i++ {
				grad[i] = -f.mu[i]
				for j := 0; j < n; j++ {
					grad[i] += 4 * penaltyWeight * varDiff * f.sigma.At(i, j) * w[j]
				}
			}
			addSumPenaltyGradient(grad, w)
		},
	}

	w, err := solve(problem, n)
	if err != nil {
		return nil, fmt.Errorf("efficient risk query failed: %w", err)
	}
	return f.point(w, 0), nil
}

func (f *Frontier) point(w []float64, riskFreeRate float64) *FrontierPoint {
	weights := map[string]float64{}
	for i, isin := range f.isins {
		weights[isin] = w[i]
	}

	expectedReturn := f.portfolioReturn(w)
	volatility := math.Sqrt(math.Max(f.portfolioVariance(w), 0))
	sharpe := 0.0
	if volatility > 0 {
		sharpe = (expectedReturn - riskFreeRate) / volatility
	}

	return &FrontierPoint{
		Weights: weights,
		Performance: domain.PortfolioPerformance{
			ExpectedReturn: expectedReturn,
			Volatility:     volatility,
			SharpeRatio:    sharpe,
		},
	}
}

func solve(problem optimize.Problem, n int) ([]float64, error) {
	initial := make([]float64, n)
	for i := range initial {
		initial[i] = 1.0 / float64(n)
	}
	initialObj := problem.Func(initial)

	successStatuses := map[optimize.Status]bool{
		optimize.Success:             true,
		optimize.GradientThreshold:   true,
		optimize.FunctionConvergence: true,
	}

	result, err := optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.BFGS{})
	if err != nil || !successStatuses[result.Status] {
		result, err = optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.NelderMead{})
		if err != nil {
			return nil, fmt.Errorf("solver failed: %w", err)
		}
		if !successStatuses[result.Status] {
			return nil, fmt.Errorf("solver did not converge: status=%v", result.Status)
		}
	}

	w := projectLongOnly(result.X)
	var sum float64
	for _, wi := range w {
		sum += wi
	}
	if sum <= 0 {
		return nil, fmt.Errorf("solver produced a degenerate weight vector")
	}
	for i := range w {
		w[i] /= sum
	}

	// a flat objective gives the line search nothing to improve; hold the
	// uniform start instead of wherever the solver's simplex wandered
	if problem.Func(w) >= initialObj-1e-9 {
		return initial, nil
	}

	return w, nil
}

func projectLongOnly(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Max(0, math.Min(1, v))
	}
	return out
}

func sumPenalty(w []float64) float64 {
	var sum float64
	for _, wi := range w {
		sum += wi
	}
	return penaltyWeight * (sum - 1) * (sum - 1)
}

func addSumPenaltyGradient(grad, w []float64) {
	var sum float64
	for _, wi := range w {
		sum += wi
	}
	for i := range grad {
		grad[i] += 2 * penaltyWeight * (sum - 1)
	}
}
