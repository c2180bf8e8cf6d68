package service

import (
	"context"
	"database/sql"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/logger"
	"etfoptimizer/internal/repository"
	"etfoptimizer/internal/util"
	"fmt"
	"sync"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// IngestService pulls daily close prices from Yahoo and upserts them into
// the price history. Symbols map 1:1 to isins here; funds without a Yahoo
// listing go through the CSV import instead.
type IngestService interface {
	IngestPrices(ctx context.Context, tx *sql.Tx, isin, symbol string, start time.Time) error
	IngestMany(ctx context.Context, tx *sql.Tx, symbolsByIsin map[string]string, start time.Time) error
}

type ingestServiceHandler struct {
	EtfHistoryRepository repository.EtfHistoryRepository
}

func NewIngestService(etfHistoryRepository repository.EtfHistoryRepository) IngestService {
	return ingestServiceHandler{
		EtfHistoryRepository: etfHistoryRepository,
	}
}

func (h ingestServiceHandler) IngestPrices(ctx context.Context, tx *sql.Tx, isin, symbol string, start time.Time) error {
	now := time.Now()
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	models := []model.EtfHistory{}
	for iter.Next() {
		models = append(models, model.EtfHistory{
			Isin:          isin,
			DatapointDate: util.StripTime(time.Unix(int64(iter.Bar().Timestamp), 0)),
			Price:         iter.Bar().AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}
	if len(models) == 0 {
		return fmt.Errorf("no bars returned for %s", symbol)
	}

	return h.EtfHistoryRepository.Add(tx, models)
}

type ingestJob struct {
	isin   string
	symbol string
}

func (h ingestServiceHandler) IngestMany(ctx context.Context, tx *sql.Tx, symbolsByIsin map[string]string, start time.Time) error {
	log := logger.FromContext(ctx)
	numGoroutines := 10

	inputCh := make(chan ingestJob, len(symbolsByIsin))

	var wg sync.WaitGroup
	for isin, symbol := range symbolsByIsin {
		wg.Add(1)
		inputCh <- ingestJob{isin: isin, symbol: symbol}
	}
	close(inputCh)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			// keep draining after cancellation so every queued job is
			// marked done and Wait cannot block
			for job := range inputCh {
				if ctx.Err() == nil {
					err := h.IngestPrices(ctx, tx, job.isin, job.symbol, start)
					if err != nil {
						log.Warnf("failed to ingest prices for %s (%s): %s", job.isin, job.symbol, err.Error())
					}
				}
				wg.Done()
			}
		}()
	}

	wg.Wait()

	return ctx.Err()
}
