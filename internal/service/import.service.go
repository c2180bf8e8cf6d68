package service

import (
	"context"
	"database/sql"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/domain"
	"etfoptimizer/internal/logger"
	"etfoptimizer/internal/repository"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

const historyDateLayout = "02.01.2006"

type historyRow struct {
	Isin        string   `csv:"isin"`
	Date        string   `csv:"date"`
	Price       float64  `csv:"price"`
	PriceIndex  *float64 `csv:"price_index"`
	ReturnIndex *float64 `csv:"return_index"`
}

type etfRow struct {
	Isin string `csv:"isin"`
	Wkn  string `csv:"wkn"`
	Name string `csv:"name"`
}

type categoryRow struct {
	Isin         string `csv:"isin"`
	CategoryName string `csv:"category_name"`
	CategoryType string `csv:"category_type"`
}

type ImportService interface {
	ImportEtfs(ctx context.Context, path string) (int, error)
	ImportHistory(ctx context.Context, path string) (int, error)
	ImportCategories(ctx context.Context, path string) (int, error)
}

type importServiceHandler struct {
	Db                     *sql.DB
	EtfRepository          repository.EtfRepository
	EtfHistoryRepository   repository.EtfHistoryRepository
	CategoryRepository     repository.CategoryRepository
	IsinCategoryRepository repository.IsinCategoryRepository
}

func NewImportService(
	db *sql.DB,
	etfRepository repository.EtfRepository,
	etfHistoryRepository repository.EtfHistoryRepository,
	categoryRepository repository.CategoryRepository,
	isinCategoryRepository repository.IsinCategoryRepository,
) ImportService {
	return importServiceHandler{
		Db:                     db,
		EtfRepository:          etfRepository,
		EtfHistoryRepository:   etfHistoryRepository,
		CategoryRepository:     categoryRepository,
		IsinCategoryRepository: isinCategoryRepository,
	}
}

func readCsv[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows := []T{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// withTx runs fn inside a transaction. Any failure rolls the whole unit of
// work back before the error is re-raised, so a partial import never
// persists.
func (h importServiceHandler) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := h.Db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (h importServiceHandler) ImportEtfs(ctx context.Context, path string) (int, error) {
	rows, err := readCsv[etfRow](path)
	if err != nil {
		return 0, err
	}

	err = h.withTx(func(tx *sql.Tx) error {
		for _, row := range rows {
			if row.Isin == "" {
				return fmt.Errorf("etf row with empty isin (name %q)", row.Name)
			}
			name := row.Name
			wkn := row.Wkn
			_, err := h.EtfRepository.GetOrCreate(tx, model.Etf{
				Isin:      row.Isin,
				Name:      &name,
				Wkn:       &wkn,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func (h importServiceHandler) ImportHistory(ctx context.Context, path string) (int, error) {
	log := logger.FromContext(ctx)

	rows, err := readCsv[historyRow](path)
	if err != nil {
		return 0, err
	}

	models := []model.EtfHistory{}
	for _, row := range rows {
		date, err := time.Parse(historyDateLayout, row.Date)
		if err != nil {
			return 0, fmt.Errorf("bad date %q for %s: %w", row.Date, row.Isin, err)
		}
		if row.Price < 0 {
			return 0, fmt.Errorf("negative price %f for %s on %s", row.Price, row.Isin, row.Date)
		}
		models = append(models, model.EtfHistory{
			Isin:          row.Isin,
			DatapointDate: date,
			Price:         row.Price,
			PriceIndex:    row.PriceIndex,
			ReturnIndex:   row.ReturnIndex,
		})
	}

	err = h.withTx(func(tx *sql.Tx) error {
		return h.EtfHistoryRepository.Add(tx, models)
	})
	if err != nil {
		return 0, err
	}

	log.Infof("imported %d price points from %s", len(models), path)
	return len(models), nil
}

// ImportCategories creates categories on first sight and assigns them to
// isins. The name/type to id mapping is cached in a map scoped to this one
// import run, so repeated rows skip the round trip without leaking state
// across runs.
func (h importServiceHandler) ImportCategories(ctx context.Context, path string) (int, error) {
	rows, err := readCsv[categoryRow](path)
	if err != nil {
		return 0, err
	}

	categoryIDs := map[string]int32{}
	assigned := 0

	err = h.withTx(func(tx *sql.Tx) error {
		for _, row := range rows {
			cacheKey := row.CategoryType + "|" + row.CategoryName
			id, ok := categoryIDs[cacheKey]
			if !ok {
				category, err := h.CategoryRepository.GetOrCreate(tx, row.CategoryName, row.CategoryType)
				if err != nil {
					return err
				}
				id = category.ID
				categoryIDs[cacheKey] = id
			}

			err := h.IsinCategoryRepository.Add(tx, []model.IsinCategory{{
				EtfIsin:    row.Isin,
				CategoryID: id,
			}})
			if domain.IsConstraintViolation(err) {
				return fmt.Errorf("cannot assign category %q to unknown isin %s: %w", row.CategoryName, row.Isin, err)
			}
			if err != nil {
				return fmt.Errorf("failed to assign category %q to %s: %w", row.CategoryName, row.Isin, err)
			}
			assigned++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return assigned, nil
}
