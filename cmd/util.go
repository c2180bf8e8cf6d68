package cmd

import (
	"database/sql"
	"etfoptimizer/api"
	"etfoptimizer/internal"
	"etfoptimizer/internal/repository"
	"etfoptimizer/internal/service"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

type Dependencies struct {
	ApiHandler    *api.ApiHandler
	ImportService service.ImportService
}

func CloseDependencies(deps *Dependencies) {
	err := deps.ApiHandler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*Dependencies, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	etfRepository := repository.NewEtfRepository(dbConn)
	categoryRepository := repository.NewCategoryRepository(dbConn)
	isinCategoryRepository := repository.NewIsinCategoryRepository(dbConn)
	etfHistoryRepository := repository.NewEtfHistoryRepository(dbConn)

	priceMatrixBuilder := service.NewPriceMatrixBuilder(etfHistoryRepository)
	optimizationService := service.NewOptimizationService(
		isinCategoryRepository,
		etfRepository,
		etfHistoryRepository,
		priceMatrixBuilder,
	)
	backtestService := service.NewBacktestService(optimizationService, priceMatrixBuilder)
	ingestService := service.NewIngestService(etfHistoryRepository)
	importService := service.NewImportService(
		dbConn,
		etfRepository,
		etfHistoryRepository,
		categoryRepository,
		isinCategoryRepository,
	)

	apiHandler := &api.ApiHandler{
		Db:                   dbConn,
		OptimizationService:  optimizationService,
		BacktestService:      backtestService,
		IngestService:        ingestService,
		CategoryRepository:   categoryRepository,
		EtfRepository:        etfRepository,
		ApiRequestRepository: repository.ApiRequestRepositoryHandler{},
	}

	return &Dependencies{
		ApiHandler:    apiHandler,
		ImportService: importService,
	}, nil
}
