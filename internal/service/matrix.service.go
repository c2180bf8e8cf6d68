package service

import (
	"context"
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/logger"
	"etfoptimizer/internal/repository"
	"etfoptimizer/internal/util"
	"fmt"
	"sort"
	"time"
)

type PriceMatrixBuilder interface {
	Build(ctx context.Context, isins []string, start, end time.Time) (domain.PriceMatrix, error)
}

type priceMatrixBuilderHandler struct {
	EtfHistoryRepository repository.EtfHistoryRepository
}

func NewPriceMatrixBuilder(etfHistoryRepository repository.EtfHistoryRepository) PriceMatrixBuilder {
	return priceMatrixBuilderHandler{
		EtfHistoryRepository: etfHistoryRepository,
	}
}

// Build pivots stored price points into a dense date x isin matrix. Any
// date missing a price for at least one requested isin is dropped entirely,
// so every surviving row is fully comparable across the selection. An empty
// isin set, an inverted window or a window with no data all produce an
// explicitly empty matrix rather than an error; callers short-circuit on
// IsEmpty.
func (h priceMatrixBuilderHandler) Build(ctx context.Context, isins []string, start, end time.Time) (domain.PriceMatrix, error) {
	log := logger.FromContext(ctx)

	if len(isins) == 0 || !util.DateLte(start, end) {
		return domain.PriceMatrix{}, nil
	}

	prices, err := h.EtfHistoryRepository.List(isins, start, end)
	if err != nil {
		return domain.PriceMatrix{}, fmt.Errorf("failed to load prices for matrix: %w", err)
	}
	if len(prices) == 0 {
		return domain.PriceMatrix{}, nil
	}

	byDate := map[time.Time]map[string]float64{}
	for _, p := range prices {
		if _, ok := byDate[p.Date]; !ok {
			byDate[p.Date] = map[string]float64{}
		}
		byDate[p.Date][p.Isin] = p.Price
	}

	sortedIsins := append([]string{}, isins...)
	sort.Strings(sortedIsins)

	dates := []time.Time{}
	dropped := 0
	for date, row := range byDate {
		if len(row) == len(sortedIsins) {
			dates = append(dates, date)
		} else {
			dropped++
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if dropped > 0 {
		log.Debugf("price matrix dropped %d of %d dates with partial coverage", dropped, len(byDate))
	}
	if len(dates) == 0 {
		return domain.PriceMatrix{}, nil
	}

	values := make([][]float64, len(dates))
	for i, date := range dates {
		row := make([]float64, len(sortedIsins))
		for j, isin := range sortedIsins {
			row[j] = byDate[date][isin]
		}
		values[i] = row
	}

	return domain.PriceMatrix{
		Isins:  sortedIsins,
		Dates:  dates,
		Values: values,
	}, nil
}
