package service

import (
	"context"
	"etfoptimizer/internal/calculator"
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/logger"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BacktestInput struct {
	Optimization OptimizeInput

	// the decision window feeds the optimizer; the replay window is where
	// the resulting static allocation is projected forward
	ReplayStart time.Time
	ReplayEnd   time.Time
}

type BacktestResult struct {
	Optimization *OptimizeResult
	Curve        []domain.ValuePoint
	Metrics      *calculator.CurveMetrics
}

type RollingBacktestInput struct {
	Optimization OptimizeInput

	// Optimization.Start / Optimization.End bound the whole evaluation;
	// each period optimizes over DecisionYears of history and replays the
	// following ReplayYears, reinvesting the terminal value
	DecisionYears int
	ReplayYears   int
}

type RollingBacktestResult struct {
	Periods []BacktestResult
	Curve   []domain.ValuePoint
	Metrics *calculator.CurveMetrics
}

type BacktestService interface {
	Backtest(ctx context.Context, in BacktestInput) (*BacktestResult, error)
	RollingBacktest(ctx context.Context, in RollingBacktestInput) (*RollingBacktestResult, error)
}

type backtestServiceHandler struct {
	OptimizationService OptimizationService
	PriceMatrixBuilder  PriceMatrixBuilder
}

func NewBacktestService(optimizationService OptimizationService, priceMatrixBuilder PriceMatrixBuilder) BacktestService {
	return backtestServiceHandler{
		OptimizationService: optimizationService,
		PriceMatrixBuilder:  priceMatrixBuilder,
	}
}

// Backtest asks "how would this allocation have performed since": it runs
// the optimizer on the decision window, then replays the resulting share
// counts across the replay window without re-optimizing. The curve covers
// only dates where every held fund has a price; leftover cash is carried
// flat so consecutive periods chain cleanly.
func (h backtestServiceHandler) Backtest(ctx context.Context, in BacktestInput) (*BacktestResult, error) {
	result, err := h.OptimizationService.Optimize(ctx, in.Optimization)
	if err != nil {
		return nil, err
	}

	held := result.Allocation.HeldIsins()
	if len(held) == 0 {
		return nil, fmt.Errorf("allocation holds no shares, nothing to replay")
	}

	matrix, err := h.PriceMatrixBuilder.Build(ctx, held, in.ReplayStart, in.ReplayEnd)
	if err != nil {
		return nil, err
	}
	if matrix.IsEmpty() {
		return nil, domain.ErrInsufficientHistory
	}

	curve := make([]domain.ValuePoint, 0, matrix.NumDates())
	for i, date := range matrix.Dates {
		value := result.Allocation.Leftover
		for j, isin := range matrix.Isins {
			shares := result.Allocation.Shares[isin]
			value = value.Add(decimal.NewFromFloat(matrix.Values[i][j]).Mul(decimal.NewFromInt(shares)))
		}
		curve = append(curve, domain.ValuePoint{Date: date, Value: value})
	}

	out := &BacktestResult{
		Optimization: result,
		Curve:        curve,
	}

	if len(curve) >= 2 {
		metrics, err := calculator.CalculateCurveMetrics(curve)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate curve metrics: %w", err)
		}
		out.Metrics = metrics
	}

	return out, nil
}

// RollingBacktest chains consecutive decision/replay periods across the
// evaluation range, feeding each period's terminal value into the next
// period's budget.
func (h backtestServiceHandler) RollingBacktest(ctx context.Context, in RollingBacktestInput) (*RollingBacktestResult, error) {
	log := logger.FromContext(ctx)

	if in.DecisionYears <= 0 || in.ReplayYears <= 0 {
		return nil, fmt.Errorf("decision and replay periods must be positive, got %d/%d years", in.DecisionYears, in.ReplayYears)
	}

	out := &RollingBacktestResult{}
	budget := in.Optimization.Budget

	for cursor := in.Optimization.Start; ; cursor = cursor.AddDate(in.ReplayYears, 0, 0) {
		decisionEnd := cursor.AddDate(in.DecisionYears, 0, 0)
		replayEnd := decisionEnd.AddDate(in.ReplayYears, 0, 0)
		if replayEnd.After(in.Optimization.End) {
			break
		}

		periodInput := in.Optimization
		periodInput.Start = cursor
		periodInput.End = decisionEnd
		periodInput.Budget = budget

		period, err := h.Backtest(ctx, BacktestInput{
			Optimization: periodInput,
			ReplayStart:  decisionEnd,
			ReplayEnd:    replayEnd,
		})
		if err != nil {
			return nil, fmt.Errorf("period starting %s failed: %w", cursor.Format(time.DateOnly), err)
		}

		budget = period.Curve[len(period.Curve)-1].Value
		log.Infof("period %s..%s terminal value %s", cursor.Format(time.DateOnly), replayEnd.Format(time.DateOnly), budget.StringFixed(2))

		out.Periods = append(out.Periods, *period)
		out.Curve = append(out.Curve, period.Curve...)
	}

	if len(out.Periods) == 0 {
		return nil, domain.ErrInsufficientHistory
	}

	if len(out.Curve) >= 2 {
		metrics, err := calculator.CalculateCurveMetrics(out.Curve)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate evaluation metrics: %w", err)
		}
		out.Metrics = metrics
	}

	return out, nil
}
