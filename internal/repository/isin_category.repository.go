package repository

import (
	"database/sql"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/db/models/postgres/public/table"
	"fmt"
	"sort"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type IsinCategoryRepository interface {
	Add(tx *sql.Tx, assignments []model.IsinCategory) error
	ResolveIsins(categoryIDs []int32, extraIsins []string) ([]string, error)
}

type isinCategoryRepositoryHandler struct {
	Db *sql.DB
}

func NewIsinCategoryRepository(db *sql.DB) IsinCategoryRepository {
	return isinCategoryRepositoryHandler{Db: db}
}

func (h isinCategoryRepositoryHandler) Add(tx *sql.Tx, assignments []model.IsinCategory) error {
	if len(assignments) == 0 {
		return nil
	}

	query := table.IsinCategory.
		INSERT(table.IsinCategory.AllColumns).
		MODELS(assignments).
		ON_CONFLICT(table.IsinCategory.EtfIsin, table.IsinCategory.CategoryID).
		DO_NOTHING()

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	_, err := query.Exec(db)
	if err != nil {
		return classifyWriteError("isin_category", err)
	}

	return nil
}

// ResolveIsins returns every isin tagged with any of the given categories,
// unioned with the explicitly supplied extras. Extras are validated against
// the security catalog so a typo surfaces at the boundary instead of as a
// silently empty price query.
func (h isinCategoryRepositoryHandler) ResolveIsins(categoryIDs []int32, extraIsins []string) ([]string, error) {
	isinSet := map[string]bool{}

	if len(categoryIDs) > 0 {
		idExprs := []postgres.Expression{}
		for _, id := range categoryIDs {
			idExprs = append(idExprs, postgres.Int32(id))
		}

		query := table.IsinCategory.
			SELECT(table.IsinCategory.EtfIsin).
			DISTINCT().
			WHERE(table.IsinCategory.CategoryID.IN(idExprs...))

		results := []model.IsinCategory{}
		err := query.Query(h.Db, &results)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve isins for categories: %w", err)
		}

		for _, r := range results {
			isinSet[r.EtfIsin] = true
		}
	}

	if len(extraIsins) > 0 {
		isinExprs := []postgres.Expression{}
		for _, isin := range extraIsins {
			isinExprs = append(isinExprs, postgres.String(isin))
		}

		query := table.Etf.
			SELECT(table.Etf.Isin).
			WHERE(table.Etf.Isin.IN(isinExprs...))

		known := []model.Etf{}
		err := query.Query(h.Db, &known)
		if err != nil {
			return nil, fmt.Errorf("failed to validate extra isins: %w", err)
		}

		knownSet := map[string]bool{}
		for _, e := range known {
			knownSet[e.Isin] = true
		}
		for _, isin := range extraIsins {
			if !knownSet[isin] {
				return nil, fmt.Errorf("isin %s does not exist in the security catalog", isin)
			}
			isinSet[isin] = true
		}
	}

	out := []string{}
	for isin := range isinSet {
		out = append(out, isin)
	}
	sort.Strings(out)

	return out, nil
}
