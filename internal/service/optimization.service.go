package service

import (
	"context"
	"etfoptimizer/internal/calculator"
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/logger"
	"etfoptimizer/internal/repository"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

// minObservations is the number of trading days below which the risk
// estimate gets noisy. Runs with less history proceed with a warning
// rather than being rejected.
const minObservations = 30

type Objective string

const (
	ObjectiveMaxSharpe       Objective = "max_sharpe"
	ObjectiveEfficientReturn Objective = "efficient_return"
	ObjectiveEfficientRisk   Objective = "efficient_risk"
)

func ParseObjective(s string) (Objective, error) {
	switch Objective(s) {
	case ObjectiveMaxSharpe, ObjectiveEfficientReturn, ObjectiveEfficientRisk:
		return Objective(s), nil
	}
	return "", fmt.Errorf("unknown objective %q", s)
}

type OptimizeInput struct {
	CategoryIDs []int32
	ExtraIsins  []string

	Model     calculator.ReturnRiskModel
	Objective Objective
	// TargetReturn / TargetVolatility apply to the matching objective only
	TargetReturn     float64
	TargetVolatility float64
	RiskFreeRate     float64
	ClipPolicy       *calculator.ClipPolicy

	Start time.Time
	End   time.Time

	Budget       decimal.Decimal
	Strategy     calculator.AllocationStrategy
	Reinvest     bool
	WeightCutoff float64
}

type OptimizeResult struct {
	Isins        []string
	Names        map[string]string
	Weights      map[string]float64
	Allocation   *domain.Allocation
	LatestPrices map[string]decimal.Decimal
	Performance  domain.PortfolioPerformance
}

type OptimizationService interface {
	Optimize(ctx context.Context, in OptimizeInput) (*OptimizeResult, error)
}

type optimizationServiceHandler struct {
	IsinCategoryRepository repository.IsinCategoryRepository
	EtfRepository          repository.EtfRepository
	EtfHistoryRepository   repository.EtfHistoryRepository
	PriceMatrixBuilder     PriceMatrixBuilder
}

func NewOptimizationService(
	isinCategoryRepository repository.IsinCategoryRepository,
	etfRepository repository.EtfRepository,
	etfHistoryRepository repository.EtfHistoryRepository,
	priceMatrixBuilder PriceMatrixBuilder,
) OptimizationService {
	return optimizationServiceHandler{
		IsinCategoryRepository: isinCategoryRepository,
		EtfRepository:          etfRepository,
		EtfHistoryRepository:   etfHistoryRepository,
		PriceMatrixBuilder:     priceMatrixBuilder,
	}
}

// Optimize runs the full pipeline: resolve the category filter to isins,
// build the price matrix, estimate returns and risk for the chosen model,
// query the frontier for the requested terminal point and convert the
// resulting weights into whole-share counts.
func (h optimizationServiceHandler) Optimize(ctx context.Context, in OptimizeInput) (*OptimizeResult, error) {
	log := logger.FromContext(ctx)

	if len(in.CategoryIDs) == 0 && len(in.ExtraIsins) == 0 {
		return nil, domain.ErrNoSecuritiesSelected
	}

	isins, err := h.IsinCategoryRepository.ResolveIsins(in.CategoryIDs, in.ExtraIsins)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve securities: %w", err)
	}
	if len(isins) == 0 {
		return nil, domain.ErrNoSecuritiesSelected
	}

	matrix, err := h.PriceMatrixBuilder.Build(ctx, isins, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	if matrix.IsEmpty() {
		return nil, domain.ErrNoPriceData
	}
	if matrix.NumAssets() < 2 {
		return nil, domain.ErrInsufficientData
	}
	if matrix.NumDates() < minObservations {
		log.Warnf("only %d observations for %d assets; risk estimate may be degenerate", matrix.NumDates(), matrix.NumAssets())
	}

	mu, sigma, err := estimate(matrix, in.Model, in.RiskFreeRate, in.ClipPolicy)
	if err != nil {
		return nil, err
	}

	frontier, err := calculator.NewFrontier(matrix.Isins, mu, sigma)
	if err != nil {
		return nil, fmt.Errorf("failed to build frontier: %w", err)
	}

	point, err := h.solveObjective(frontier, in)
	if err != nil {
		return nil, err
	}

	weights := calculator.CutoffWeights(point.Weights, in.WeightCutoff)

	prices, err := h.EtfHistoryRepository.LatestPrices(heldIsins(weights), in.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest prices: %w", err)
	}

	allocation, err := calculator.Allocate(in.Strategy, weights, prices, in.Budget, in.Reinvest)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate shares: %w", err)
	}

	names, err := h.EtfRepository.GetNames(matrix.Isins)
	if err != nil {
		return nil, err
	}

	return &OptimizeResult{
		Isins:        matrix.Isins,
		Names:        names,
		Weights:      weights,
		Allocation:   allocation,
		LatestPrices: prices,
		Performance:  point.Performance,
	}, nil
}

func (h optimizationServiceHandler) solveObjective(frontier *calculator.Frontier, in OptimizeInput) (*calculator.FrontierPoint, error) {
	switch in.Objective {
	case ObjectiveEfficientReturn:
		return frontier.EfficientReturn(in.TargetReturn)
	case ObjectiveEfficientRisk:
		return frontier.EfficientRisk(in.TargetVolatility)
	default:
		return frontier.MaxSharpe(in.RiskFreeRate)
	}
}

// estimate selects the return and risk estimators for the chosen model and
// applies the expected-return clip before the solver sees the estimates.
func estimate(matrix domain.PriceMatrix, model calculator.ReturnRiskModel, riskFreeRate float64, clip *calculator.ClipPolicy) ([]float64, *mat.SymDense, error) {
	var (
		mu    []float64
		sigma *mat.SymDense
	)

	switch model {
	case calculator.ModelCapmSemicovariance:
		mu = calculator.CapmReturns(matrix, riskFreeRate)
		sigma = calculator.Semicovariance(matrix, 0)
	case calculator.ModelExponentialVariance:
		mu = calculator.ExponentialReturns(matrix, 0)
		sigma = calculator.ShrunkCovariance(matrix)
	case calculator.ModelMeanVariance, "":
		mu = calculator.MeanHistoricalReturns(matrix)
		sigma = calculator.ShrunkCovariance(matrix)
	default:
		return nil, nil, fmt.Errorf("unknown return/risk model %q", model)
	}

	policy := calculator.DefaultClipPolicy()
	if clip != nil {
		policy = *clip
	}
	policy.Apply(mu)

	return mu, sigma, nil
}

func heldIsins(weights map[string]float64) []string {
	out := []string{}
	for isin, w := range weights {
		if w > 0 {
			out = append(out, isin)
		}
	}
	return out
}
