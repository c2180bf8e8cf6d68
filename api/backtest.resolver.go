package api

import (
	"context"
	"etfoptimizer/internal/calculator"
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/service"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type BacktestRequest struct {
	Optimization OptimizeRequest `json:"optimization"`

	// single replay window
	ReplayStart string `json:"replayStart"`
	ReplayEnd   string `json:"replayEnd"`

	// rolling evaluation; mutually exclusive with the replay window
	DecisionYears int `json:"decisionYears"`
	ReplayYears   int `json:"replayYears"`
}

type curvePointJson struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type metricsJson struct {
	AnnualizedReturn float64 `json:"annualizedReturn"`
	AnnualizedStdev  float64 `json:"annualizedStdev"`
	SharpeRatio      float64 `json:"sharpeRatio"`
}

type BacktestResponse struct {
	Optimization *OptimizeResponse `json:"optimization,omitempty"`
	Curve        []curvePointJson  `json:"curve"`
	Metrics      *metricsJson      `json:"metrics,omitempty"`
	NumPeriods   int               `json:"numPeriods,omitempty"`
}

func curveJson(curve []domain.ValuePoint) []curvePointJson {
	out := make([]curvePointJson, 0, len(curve))
	for _, p := range curve {
		out = append(out, curvePointJson{
			Date:  p.Date.Format(time.DateOnly),
			Value: p.Value.StringFixed(2),
		})
	}
	return out
}

func metricsJsonFrom(metrics *calculator.CurveMetrics) *metricsJson {
	if metrics == nil {
		return nil
	}
	return &metricsJson{
		AnnualizedReturn: metrics.AnnualizedReturn,
		AnnualizedStdev:  metrics.AnnualizedStdev,
		SharpeRatio:      metrics.SharpeRatio,
	}
}

func (m ApiHandler) backtest(c *gin.Context) {
	var requestBody BacktestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	in, err := m.parseOptimizeRequest(requestBody.Optimization)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	if requestBody.DecisionYears > 0 || requestBody.ReplayYears > 0 {
		result, err := m.BacktestService.RollingBacktest(context.Background(), service.RollingBacktestInput{
			Optimization:  *in,
			DecisionYears: requestBody.DecisionYears,
			ReplayYears:   requestBody.ReplayYears,
		})
		if err != nil {
			returnDomainError(err, c)
			return
		}
		c.JSON(200, BacktestResponse{
			Curve:      curveJson(result.Curve),
			Metrics:    metricsJsonFrom(result.Metrics),
			NumPeriods: len(result.Periods),
		})
		return
	}

	replayStart, err := time.Parse(time.DateOnly, requestBody.ReplayStart)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid replay start %q: %w", requestBody.ReplayStart, err), c, 400)
		return
	}
	replayEnd, err := time.Parse(time.DateOnly, requestBody.ReplayEnd)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid replay end %q: %w", requestBody.ReplayEnd, err), c, 400)
		return
	}

	result, err := m.BacktestService.Backtest(context.Background(), service.BacktestInput{
		Optimization: *in,
		ReplayStart:  replayStart,
		ReplayEnd:    replayEnd,
	})
	if err != nil {
		returnDomainError(err, c)
		return
	}

	optimization := optimizeResponseFromResult(result.Optimization)
	c.JSON(200, BacktestResponse{
		Optimization: &optimization,
		Curve:        curveJson(result.Curve),
		Metrics:      metricsJsonFrom(result.Metrics),
	})
}
