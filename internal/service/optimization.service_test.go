package service

import (
	"context"
	"etfoptimizer/internal/calculator"
	"etfoptimizer/internal/domain"
	mock_repository "etfoptimizer/internal/repository/mocks"
	"etfoptimizer/internal/util"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_optimizationServiceHandler_Optimize(t *testing.T) {
	start := util.NewDate(2021, 1, 1)
	end := util.NewDate(2021, 3, 1)

	newHandler := func(ctrl *gomock.Controller) (
		optimizationServiceHandler,
		*mock_repository.MockIsinCategoryRepository,
		*mock_repository.MockEtfRepository,
		*mock_repository.MockEtfHistoryRepository,
	) {
		isinCategoryRepository := mock_repository.NewMockIsinCategoryRepository(ctrl)
		etfRepository := mock_repository.NewMockEtfRepository(ctrl)
		historyRepository := mock_repository.NewMockEtfHistoryRepository(ctrl)

		handler := optimizationServiceHandler{
			IsinCategoryRepository: isinCategoryRepository,
			EtfRepository:          etfRepository,
			EtfHistoryRepository:   historyRepository,
			PriceMatrixBuilder:     NewPriceMatrixBuilder(historyRepository),
		}
		return handler, isinCategoryRepository, etfRepository, historyRepository
	}

	t.Run("empty filter rejected before any price lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler, _, _, _ := newHandler(ctrl)

		_, err := handler.Optimize(context.Background(), OptimizeInput{
			Start: start,
			End:   end,
		})
		require.ErrorIs(t, err, domain.ErrNoSecuritiesSelected)
	})

	t.Run("filter resolving to nothing rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler, isinCategoryRepository, _, _ := newHandler(ctrl)

		isinCategoryRepository.EXPECT().ResolveIsins([]int32{7}, nil).Return([]string{}, nil)

		_, err := handler.Optimize(context.Background(), OptimizeInput{
			CategoryIDs: []int32{7},
			Start:       start,
			End:         end,
		})
		require.ErrorIs(t, err, domain.ErrNoSecuritiesSelected)
	})

	t.Run("no overlapping history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler, isinCategoryRepository, _, historyRepository := newHandler(ctrl)

		isinCategoryRepository.EXPECT().ResolveIsins(nil, []string{"A", "B"}).Return([]string{"A", "B"}, nil)
		historyRepository.EXPECT().List([]string{"A", "B"}, start, end).Return([]domain.AssetPrice{}, nil)

		_, err := handler.Optimize(context.Background(), OptimizeInput{
			ExtraIsins: []string{"A", "B"},
			Start:      start,
			End:        end,
		})
		require.ErrorIs(t, err, domain.ErrNoPriceData)
	})

	t.Run("single security rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler, isinCategoryRepository, _, historyRepository := newHandler(ctrl)

		isinCategoryRepository.EXPECT().ResolveIsins(nil, []string{"A"}).Return([]string{"A"}, nil)
		historyRepository.EXPECT().List([]string{"A"}, start, end).Return([]domain.AssetPrice{
			{Isin: "A", Date: util.NewDate(2021, 1, 4), Price: 100},
			{Isin: "A", Date: util.NewDate(2021, 1, 5), Price: 101},
		}, nil)

		_, err := handler.Optimize(context.Background(), OptimizeInput{
			ExtraIsins: []string{"A"},
			Start:      start,
			End:        end,
		})
		require.ErrorIs(t, err, domain.ErrInsufficientData)
	})

	t.Run("two identical securities split the budget evenly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler, isinCategoryRepository, etfRepository, historyRepository := newHandler(ctrl)

		isinCategoryRepository.EXPECT().ResolveIsins(nil, []string{"A", "B"}).Return([]string{"A", "B"}, nil)

		prices := []domain.AssetPrice{}
		for day := 0; day < 30; day++ {
			date := start.AddDate(0, 0, day)
			prices = append(prices,
				domain.AssetPrice{Isin: "A", Date: date, Price: 100},
				domain.AssetPrice{Isin: "B", Date: date, Price: 100},
			)
		}
		historyRepository.EXPECT().List([]string{"A", "B"}, start, end).Return(prices, nil)
		historyRepository.EXPECT().LatestPrices(gomock.Any(), end).Return(map[string]decimal.Decimal{
			"A": decimal.NewFromInt(100),
			"B": decimal.NewFromInt(100),
		}, nil)
		etfRepository.EXPECT().GetNames([]string{"A", "B"}).Return(map[string]string{
			"A": "Fund A",
			"B": "Fund B",
		}, nil)

		result, err := handler.Optimize(context.Background(), OptimizeInput{
			ExtraIsins: []string{"A", "B"},
			Start:      start,
			End:        end,
			Budget:     decimal.NewFromInt(1000),
			Strategy:   calculator.StrategyGreedy,
		})
		require.NoError(t, err)

		require.InDelta(t, 0.5, result.Weights["A"], 0.01)
		require.InDelta(t, 0.5, result.Weights["B"], 0.01)
		require.Equal(t, map[string]int64{"A": 5, "B": 5}, result.Allocation.Shares)
		require.True(t, result.Allocation.Leftover.IsZero(),
			"expected zero leftover, got %s", result.Allocation.Leftover)
	})
}
