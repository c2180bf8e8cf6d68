package api

import (
	"context"
	"etfoptimizer/internal/calculator"
	"etfoptimizer/internal/service"
	treasury_client "etfoptimizer/pkg/treasury"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OptimizeRequest struct {
	CategoryIDs []int32  `json:"categoryIds"`
	ExtraIsins  []string `json:"extraIsins"`

	Model     string `json:"model"`
	Objective string `json:"objective"`

	TargetReturn     float64  `json:"targetReturn"`
	TargetVolatility float64  `json:"targetVolatility"`
	RiskFreeRate     *float64 `json:"riskFreeRate"`

	Start string `json:"start"`
	End   string `json:"end"`

	Budget       float64 `json:"budget"`
	Strategy     string  `json:"strategy"`
	Reinvest     bool    `json:"reinvest"`
	WeightCutoff float64 `json:"weightCutoff"`
}

type PerformanceJson struct {
	ExpectedReturn float64 `json:"expectedReturn"`
	Volatility     float64 `json:"volatility"`
	SharpeRatio    float64 `json:"sharpeRatio"`
}

type OptimizeResponse struct {
	Isins        []string           `json:"isins"`
	Names        map[string]string  `json:"names"`
	Weights      map[string]float64 `json:"weights"`
	Shares       map[string]int64   `json:"shares"`
	Leftover     string             `json:"leftover"`
	LatestPrices map[string]string  `json:"latestPrices"`
	Performance  PerformanceJson    `json:"performance"`
}

func (m ApiHandler) parseOptimizeRequest(requestBody OptimizeRequest) (*service.OptimizeInput, error) {
	start, err := time.Parse(time.DateOnly, requestBody.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", requestBody.Start, err)
	}
	end, err := time.Parse(time.DateOnly, requestBody.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", requestBody.End, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}

	in := service.OptimizeInput{
		CategoryIDs:      requestBody.CategoryIDs,
		ExtraIsins:       requestBody.ExtraIsins,
		TargetReturn:     requestBody.TargetReturn,
		TargetVolatility: requestBody.TargetVolatility,
		Start:            start,
		End:              end,
		Budget:           decimal.NewFromFloat(requestBody.Budget),
		Reinvest:         requestBody.Reinvest,
		WeightCutoff:     requestBody.WeightCutoff,
	}

	if requestBody.Model != "" {
		in.Model, err = calculator.ParseReturnRiskModel(requestBody.Model)
		if err != nil {
			return nil, err
		}
	}
	if requestBody.Objective != "" {
		in.Objective, err = service.ParseObjective(requestBody.Objective)
		if err != nil {
			return nil, err
		}
	}
	if requestBody.Strategy != "" {
		in.Strategy, err = calculator.ParseAllocationStrategy(requestBody.Strategy)
		if err != nil {
			return nil, err
		}
	}

	if requestBody.RiskFreeRate != nil {
		in.RiskFreeRate = *requestBody.RiskFreeRate
	} else {
		rate, err := treasury_client.RiskFreeRate(end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch risk free rate: %w", err)
		}
		in.RiskFreeRate = rate
	}

	return &in, nil
}

func optimizeResponseFromResult(result *service.OptimizeResult) OptimizeResponse {
	prices := map[string]string{}
	for isin, price := range result.LatestPrices {
		prices[isin] = price.StringFixed(2)
	}

	return OptimizeResponse{
		Isins:        result.Isins,
		Names:        result.Names,
		Weights:      result.Weights,
		Shares:       result.Allocation.Shares,
		Leftover:     result.Allocation.Leftover.StringFixed(2),
		LatestPrices: prices,
		Performance: PerformanceJson{
			ExpectedReturn: result.Performance.ExpectedReturn,
			Volatility:     result.Performance.Volatility,
			SharpeRatio:    result.Performance.SharpeRatio,
		},
	}
}

func (m ApiHandler) optimize(c *gin.Context) {
	var requestBody OptimizeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	in, err := m.parseOptimizeRequest(requestBody)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result, err := m.OptimizationService.Optimize(context.Background(), *in)
	if err != nil {
		returnDomainError(err, c)
		return
	}

	c.JSON(200, optimizeResponseFromResult(result))
}
