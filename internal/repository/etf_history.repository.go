package repository

import (
	"database/sql"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/db/models/postgres/public/table"
	"etfoptimizer/internal/domain"
	"fmt"
	"sync"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/shopspring/decimal"
)

type PriceCache map[string]map[time.Time]float64

type EtfHistoryRepository interface {
	Add(tx *sql.Tx, prices []model.EtfHistory) error
	Get(isin string, date time.Time) (float64, error)
	List(isins []string, start, end time.Time) ([]domain.AssetPrice, error)
	LatestPrices(isins []string, asOf time.Time) (map[string]decimal.Decimal, error)
}

type EtfHistoryRepositoryHandler struct {
	Db        *sql.DB
	Cache     PriceCache
	ReadMutex *sync.RWMutex
}

func NewEtfHistoryRepository(db *sql.DB) EtfHistoryRepository {
	return &EtfHistoryRepositoryHandler{
		Db:        db,
		Cache:     make(PriceCache),
		ReadMutex: &sync.RWMutex{},
	}
}

func (h EtfHistoryRepositoryHandler) GetFromCache(isin string, date time.Time) *float64 {
	pc := h.Cache
	h.ReadMutex.RLock()
	if _, ok := pc[isin]; ok {
		if price, ok := pc[isin][date]; ok {
			h.ReadMutex.RUnlock()
			return &price
		}
	}
	h.ReadMutex.RUnlock()
	return nil
}

func (h EtfHistoryRepositoryHandler) AddToCache(isin string, date time.Time, price float64) {
	pc := h.Cache
	h.ReadMutex.Lock()
	if _, ok := pc[isin]; !ok {
		pc[isin] = map[time.Time]float64{}
	}
	pc[isin][date] = price
	h.ReadMutex.Unlock()
}

// Add upserts price points. A re-import of an existing (isin, date) key
// overwrites the stored values in place, so upstream data corrections win
// over stale rows.
func (h EtfHistoryRepositoryHandler) Add(tx *sql.Tx, prices []model.EtfHistory) error {
	if len(prices) == 0 {
		return nil
	}

	query := table.EtfHistory.
		INSERT(table.EtfHistory.AllColumns).
		MODELS(prices).
		ON_CONFLICT(
			table.EtfHistory.Isin, table.EtfHistory.DatapointDate,
		).DO_UPDATE(
		postgres.SET(
			table.EtfHistory.Price.SET(table.EtfHistory.EXCLUDED.Price),
			table.EtfHistory.PriceIndex.SET(table.EtfHistory.EXCLUDED.PriceIndex),
			table.EtfHistory.ReturnIndex.SET(table.EtfHistory.EXCLUDED.ReturnIndex),
		),
	)

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	_, err := query.Exec(db)
	if err != nil {
		return classifyWriteError("etf_history", err)
	}

	return nil
}

func (h EtfHistoryRepositoryHandler) Get(isin string, date time.Time) (float64, error) {
	if pc := h.GetFromCache(isin, date); pc != nil {
		return *pc, nil
	}

	minDate := postgres.DateT(date.AddDate(0, 0, -7))
	maxDate := postgres.DateT(date)
	// use range so we can fall back over weekends or holidays
	query := table.EtfHistory.
		SELECT(table.EtfHistory.AllColumns).
		WHERE(
			postgres.AND(
				table.EtfHistory.Isin.EQ(postgres.String(isin)),
				table.EtfHistory.DatapointDate.BETWEEN(minDate, maxDate),
			),
		).
		ORDER_BY(table.EtfHistory.DatapointDate.DESC()).
		LIMIT(1)

	result := model.EtfHistory{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return 0, fmt.Errorf("failed to query price for %s on %v: %w", isin, date, err)
	}

	h.AddToCache(isin, date, result.Price)
	return result.Price, nil
}

func (h EtfHistoryRepositoryHandler) List(isins []string, start, end time.Time) ([]domain.AssetPrice, error) {
	if len(isins) == 0 {
		return []domain.AssetPrice{}, nil
	}

	isinExprs := []postgres.Expression{}
	for _, isin := range isins {
		isinExprs = append(isinExprs, postgres.String(isin))
	}

	query := table.EtfHistory.
		SELECT(table.EtfHistory.AllColumns).
		WHERE(
			postgres.AND(
				table.EtfHistory.Isin.IN(isinExprs...),
				table.EtfHistory.DatapointDate.BETWEEN(postgres.DateT(start), postgres.DateT(end)),
			),
		).
		ORDER_BY(table.EtfHistory.DatapointDate.ASC(), table.EtfHistory.Isin.ASC())

	result := []model.EtfHistory{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}

	out := []domain.AssetPrice{}
	for _, p := range result {
		out = append(out, domain.AssetPrice{
			Isin:  p.Isin,
			Date:  p.DatapointDate,
			Price: p.Price,
		})
	}

	return out, nil
}

// LatestPrices returns the most recent stored price at or before asOf for
// each isin. Funds with no price in the preceding 30 days are omitted.
func (h EtfHistoryRepositoryHandler) LatestPrices(isins []string, asOf time.Time) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	missing := []postgres.Expression{}
	for _, isin := range isins {
		if price := h.GetFromCache(isin, asOf); price != nil {
			out[isin] = decimal.NewFromFloat(*price)
		} else {
			missing = append(missing, postgres.String(isin))
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	query := table.EtfHistory.
		SELECT(table.EtfHistory.AllColumns).
		WHERE(
			postgres.AND(
				table.EtfHistory.Isin.IN(missing...),
				table.EtfHistory.DatapointDate.BETWEEN(
					postgres.DateT(asOf.AddDate(0, 0, -30)),
					postgres.DateT(asOf),
				),
			),
		).
		ORDER_BY(table.EtfHistory.Isin.ASC(), table.EtfHistory.DatapointDate.DESC())

	result := []model.EtfHistory{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest prices: %w", err)
	}

	for _, p := range result {
		if _, ok := out[p.Isin]; ok {
			continue
		}
		out[p.Isin] = decimal.NewFromFloat(p.Price)
		h.AddToCache(p.Isin, asOf, p.Price)
	}

	return out, nil
}
