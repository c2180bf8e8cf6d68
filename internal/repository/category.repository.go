package repository

import (
	"database/sql"
	"etfoptimizer/internal/db/models/postgres/public/model"
	"etfoptimizer/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type CategoryRepository interface {
	GetOrCreate(tx *sql.Tx, name, categoryType string) (*model.Category, error)
	List() ([]model.Category, error)
}

type categoryRepositoryHandler struct {
	Db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return categoryRepositoryHandler{Db: db}
}

func (h categoryRepositoryHandler) GetOrCreate(tx *sql.Tx, name, categoryType string) (*model.Category, error) {
	query := table.Category.
		INSERT(table.Category.MutableColumns).
		MODEL(model.Category{
			Name: name,
			Type: categoryType,
		}).
		ON_CONFLICT(table.Category.Name, table.Category.Type).DO_UPDATE(
		postgres.SET(
			table.Category.Name.SET(table.Category.EXCLUDED.Name),
		),
	).RETURNING(table.Category.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Category{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, classifyWriteError("category", err)
	}

	return &out, nil
}

func (h categoryRepositoryHandler) List() ([]model.Category, error) {
	query := table.Category.
		SELECT(table.Category.AllColumns).
		ORDER_BY(table.Category.Type.ASC(), table.Category.Name.ASC())

	out := []model.Category{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return out, nil
}
