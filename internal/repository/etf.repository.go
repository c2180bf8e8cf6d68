package repository

import (
	"database/sql"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type EtfRepository interface {
	GetOrCreate(tx *sql.Tx, e model.Etf) (*model.Etf, error)
	List() ([]model.Etf, error)
	GetNames(isins []string) (map[string]string, error)
}

type etfRepositoryHandler struct {
	Db *sql.DB
}

func NewEtfRepository(db *sql.DB) EtfRepository {
	return etfRepositoryHandler{Db: db}
}

func (h etfRepositoryHandler) GetOrCreate(tx *sql.Tx, e model.Etf) (*model.Etf, error) {
	query := table.Etf.
		INSERT(table.Etf.AllColumns).
		MODEL(e).
		ON_CONFLICT(table.Etf.Isin).DO_UPDATE(
		postgres.SET(
			table.Etf.Name.SET(table.Etf.EXCLUDED.Name),
			table.Etf.Wkn.SET(table.Etf.EXCLUDED.Wkn),
		),
	).RETURNING(table.Etf.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Etf{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, classifyWriteError("etf", err)
	}

	return &out, nil
}

func (h etfRepositoryHandler) List() ([]model.Etf, error) {
	query := table.Etf.SELECT(table.Etf.AllColumns)

	out := []model.Etf{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list etfs: %w", err)
	}

	return out, nil
}

// GetNames resolves display names for the given isins. Funds without a
// stored name fall back to the isin itself.
func (h etfRepositoryHandler) GetNames(isins []string) (map[string]string, error) {
	out := map[string]string{}
	if len(isins) == 0 {
		return out, nil
	}

	isinExprs := []postgres.Expression{}
	for _, isin := range isins {
		isinExprs = append(isinExprs, postgres.String(isin))
		out[isin] = isin
	}

	query := table.Etf.
		SELECT(table.Etf.Isin, table.Etf.Name).
		WHERE(table.Etf.Isin.IN(isinExprs...))

	results := []model.Etf{}
	err := query.Query(h.Db, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to get etf names: %w", err)
	}

	for _, e := range results {
		if e.Name != nil && *e.Name != "" {
			out[e.Isin] = *e.Name
		}
	}

	return out, nil
}
