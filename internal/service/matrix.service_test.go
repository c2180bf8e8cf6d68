package service

import (
	"context"
	"etfoptimizer/internal/domain"
	mock_repository "etfoptimizer/internal/repository/mocks"
	"etfoptimizer/internal/util"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_priceMatrixBuilderHandler_Build(t *testing.T) {
	start := util.NewDate(2021, 1, 1)
	end := util.NewDate(2021, 1, 31)

	t.Run("full coverage keeps every date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		historyRepository := mock_repository.NewMockEtfHistoryRepository(ctrl)

		handler := priceMatrixBuilderHandler{
			EtfHistoryRepository: historyRepository,
		}

		d1 := util.NewDate(2021, 1, 4)
		d2 := util.NewDate(2021, 1, 5)

		historyRepository.EXPECT().List([]string{"B", "A"}, start, end).Return([]domain.AssetPrice{
			{Isin: "A", Date: d1, Price: 10},
			{Isin: "A", Date: d2, Price: 11},
			{Isin: "B", Date: d1, Price: 20},
			{Isin: "B", Date: d2, Price: 21},
		}, nil)

		matrix, err := handler.Build(context.Background(), []string{"B", "A"}, start, end)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(domain.PriceMatrix{
			Isins: []string{"A", "B"},
			Dates: []time.Time{d1, d2},
			Values: [][]float64{
				{10, 20},
				{11, 21},
			},
		}, matrix))
	})

	t.Run("dates with partial coverage are dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		historyRepository := mock_repository.NewMockEtfHistoryRepository(ctrl)

		handler := priceMatrixBuilderHandler{
			EtfHistoryRepository: historyRepository,
		}

		d1 := util.NewDate(2021, 1, 4)
		d2 := util.NewDate(2021, 1, 5)
		d3 := util.NewDate(2021, 1, 6)

		historyRepository.EXPECT().List([]string{"A", "B"}, start, end).Return([]domain.AssetPrice{
			{Isin: "A", Date: d1, Price: 10},
			{Isin: "A", Date: d2, Price: 11},
			{Isin: "A", Date: d3, Price: 12},
			{Isin: "B", Date: d1, Price: 20},
			{Isin: "B", Date: d3, Price: 22},
		}, nil)

		matrix, err := handler.Build(context.Background(), []string{"A", "B"}, start, end)
		require.NoError(t, err)

		require.Equal(t, []time.Time{d1, d3}, matrix.Dates)
		require.Equal(t, [][]float64{
			{10, 20},
			{12, 22},
		}, matrix.Values)
	})

	t.Run("no isins yields empty matrix without db access", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		historyRepository := mock_repository.NewMockEtfHistoryRepository(ctrl)

		handler := priceMatrixBuilderHandler{
			EtfHistoryRepository: historyRepository,
		}

		matrix, err := handler.Build(context.Background(), nil, start, end)
		require.NoError(t, err)
		require.True(t, matrix.IsEmpty())
	})

	t.Run("inverted window yields empty matrix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		historyRepository := mock_repository.NewMockEtfHistoryRepository(ctrl)

		handler := priceMatrixBuilderHandler{
			EtfHistoryRepository: historyRepository,
		}

		matrix, err := handler.Build(context.Background(), []string{"A"}, end, start)
		require.NoError(t, err)
		require.True(t, matrix.IsEmpty())
	})

	t.Run("no stored prices yields empty matrix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		historyRepository := mock_repository.NewMockEtfHistoryRepository(ctrl)

		handler := priceMatrixBuilderHandler{
			EtfHistoryRepository: historyRepository,
		}

		historyRepository.EXPECT().List([]string{"A"}, start, end).Return([]domain.AssetPrice{}, nil)

		matrix, err := handler.Build(context.Background(), []string{"A"}, start, end)
		require.NoError(t, err)
		require.True(t, matrix.IsEmpty())
	})
}
