package repository

import (
	"database/sql"
	"etfoptimizer/internal"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/db/models/postgres/public/table"
	"etfoptimizer/internal/util"
	"sync"
	"testing"

	"github.com/go-jet/jet/v2/postgres"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func cleanupHistory(db *sql.DB) error {
	if _, err := table.EtfHistory.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	return nil
}

func newHistoryHandler(db *sql.DB) EtfHistoryRepositoryHandler {
	return EtfHistoryRepositoryHandler{
		Db:        db,
		Cache:     make(PriceCache),
		ReadMutex: &sync.RWMutex{},
	}
}

func Test_etfHistoryRepository_Add(t *testing.T) {
	db, err := internal.NewTestDb()
	require.NoError(t, err)

	t.Run("re-adding a key overwrites the stored price", func(t *testing.T) {
		require.NoError(t, cleanupHistory(db))
		handler := newHistoryHandler(db)

		date := util.NewDate(2021, 6, 1)
		err := handler.Add(nil, []model.EtfHistory{
			{Isin: "IE0001", DatapointDate: date, Price: 10.0},
		})
		require.NoError(t, err)

		err = handler.Add(nil, []model.EtfHistory{
			{Isin: "IE0001", DatapointDate: date, Price: 12.5},
		})
		require.NoError(t, err)

		prices, err := handler.List([]string{"IE0001"}, date, date)
		require.NoError(t, err)
		require.Len(t, prices, 1)
		require.Equal(t, 12.5, prices[0].Price)
	})

	t.Run("concurrent writers to one key keep a single row", func(t *testing.T) {
		require.NoError(t, cleanupHistory(db))
		handler := newHistoryHandler(db)

		date := util.NewDate(2021, 6, 2)
		prices := []float64{10, 11, 12, 13, 14, 15, 16, 17}

		var wg sync.WaitGroup
		errs := make(chan error, len(prices))
		for _, price := range prices {
			wg.Add(1)
			go func(price float64) {
				defer wg.Done()
				errs <- handler.Add(nil, []model.EtfHistory{
					{Isin: "IE0001", DatapointDate: date, Price: price},
				})
			}(price)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		rows, err := handler.List([]string{"IE0001"}, date, date)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Contains(t, prices, rows[0].Price)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		handler := newHistoryHandler(db)
		require.NoError(t, handler.Add(nil, nil))
	})
}

func Test_etfHistoryRepository_Get(t *testing.T) {
	db, err := internal.NewTestDb()
	require.NoError(t, err)

	t.Run("falls back to the most recent trading day", func(t *testing.T) {
		require.NoError(t, cleanupHistory(db))
		handler := newHistoryHandler(db)

		friday := util.NewDate(2021, 6, 4)
		err := handler.Add(nil, []model.EtfHistory{
			{Isin: "IE0001", DatapointDate: friday, Price: 42},
		})
		require.NoError(t, err)

		sunday := util.NewDate(2021, 6, 6)
		price, err := handler.Get("IE0001", sunday)
		require.NoError(t, err)
		require.Equal(t, 42.0, price)
	})
}

func Test_etfHistoryRepository_LatestPrices(t *testing.T) {
	db, err := internal.NewTestDb()
	require.NoError(t, err)

	t.Run("picks the newest price per isin and omits stale funds", func(t *testing.T) {
		require.NoError(t, cleanupHistory(db))
		handler := newHistoryHandler(db)

		asOf := util.NewDate(2021, 6, 30)
		err := handler.Add(nil, []model.EtfHistory{
			{Isin: "IE0001", DatapointDate: util.NewDate(2021, 6, 28), Price: 100},
			{Isin: "IE0001", DatapointDate: util.NewDate(2021, 6, 29), Price: 101},
			// last price over 30 days old
			{Isin: "IE0002", DatapointDate: util.NewDate(2021, 4, 1), Price: 55},
		})
		require.NoError(t, err)

		prices, err := handler.LatestPrices([]string{"IE0001", "IE0002"}, asOf)
		require.NoError(t, err)

		require.Len(t, prices, 1)
		require.Equal(t, "101", prices["IE0001"].String())
	})
}
