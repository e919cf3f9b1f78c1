// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/finance-tracker/zfinance/config"
	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/application/usecase/category"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/infra/server/router"
	"github.com/finance-tracker/zfinance/internal/integration/adapters"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/middleware"
)

// UseCases groups the application use cases shared by the API and the CLI.
type UseCases struct {
	ListTransactions          *transaction.ListTransactionsUseCase
	GetTransaction            *transaction.GetTransactionUseCase
	CreateTransaction         *transaction.CreateTransactionUseCase
	UpdateTransaction         *transaction.UpdateTransactionUseCase
	DeleteTransaction         *transaction.DeleteTransactionUseCase
	BulkDeleteTransactions    *transaction.BulkDeleteTransactionsUseCase
	BulkCategorizeTransaction *transaction.BulkCategorizeTransactionsUseCase
	MigrateLegacyData         *transaction.MigrateLegacyDataUseCase
	GetSummary                *dashboard.GetSummaryUseCase
	GetDataRange              *dashboard.GetDataRangeUseCase
	ListCategories            *category.ListCategoriesUseCase
	ExportTransactions        *datatransfer.ExportTransactionsUseCase
	ExportSpreadsheet         *datatransfer.ExportSpreadsheetUseCase
	ImportTransactions        *datatransfer.ImportTransactionsUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	Storage   *Storage
	Clock     adapter.Clock
	Locale    language.Tag
	Formatter adapter.AmountFormatter
	UseCases  UseCases
	Session   *session.Session
	Router    *router.Router

	// ImportRateLimiter is swept for expired windows while the server runs.
	ImportRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, storage *Storage, clock adapter.Clock, ids adapter.IDGenerator) (*Injector, error) {
	locale, err := language.Parse(cfg.Locale.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale.Locale, err)
	}

	// Create adapters
	formatter, err := adapters.NewFormatter(cfg.Locale.Locale, cfg.Locale.Currency)
	if err != nil {
		return nil, err
	}
	catalog, err := adapters.NewCategoryCatalog(cfg.Categories.File)
	if err != nil {
		return nil, err
	}
	spreadsheetWriter := adapters.NewSpreadsheetWriter()

	store := storage.Store

	// Create use cases
	uc := UseCases{
		ListTransactions:          transaction.NewListTransactionsUseCase(store),
		GetTransaction:            transaction.NewGetTransactionUseCase(store),
		CreateTransaction:         transaction.NewCreateTransactionUseCase(store, clock, ids),
		UpdateTransaction:         transaction.NewUpdateTransactionUseCase(store, clock),
		DeleteTransaction:         transaction.NewDeleteTransactionUseCase(store),
		BulkDeleteTransactions:    transaction.NewBulkDeleteTransactionsUseCase(store),
		BulkCategorizeTransaction: transaction.NewBulkCategorizeTransactionsUseCase(store, clock),
		MigrateLegacyData:         transaction.NewMigrateLegacyDataUseCase(store, storage.Legacy, clock, ids),
		GetSummary:                dashboard.NewGetSummaryUseCase(store, clock),
		GetDataRange:              dashboard.NewGetDataRangeUseCase(store),
		ListCategories:            category.NewListCategoriesUseCase(catalog, store, locale),
		ExportTransactions:        datatransfer.NewExportTransactionsUseCase(store, clock),
		ExportSpreadsheet:         datatransfer.NewExportSpreadsheetUseCase(store, clock, spreadsheetWriter),
		ImportTransactions:        datatransfer.NewImportTransactionsUseCase(store),
	}

	sess := session.New(
		uc.ListTransactions,
		uc.CreateTransaction,
		uc.UpdateTransaction,
		uc.DeleteTransaction,
		uc.ImportTransactions,
		clock,
		locale,
	)

	// Create controllers
	healthController := controller.NewHealthController(storage.HealthCheck, cfg.Storage.Driver)

	transactionController := controller.NewTransactionController(
		sess,
		uc.ListTransactions,
		uc.GetTransaction,
		uc.BulkDeleteTransactions,
		uc.BulkCategorizeTransaction,
	)

	stateController := controller.NewStateController(sess)

	summaryController := controller.NewSummaryController(
		uc.GetSummary,
		uc.GetDataRange,
		formatter,
	)

	categoryController := controller.NewCategoryController(uc.ListCategories)

	dataTransferController := controller.NewDataTransferController(
		sess,
		uc.ExportTransactions,
		uc.ExportSpreadsheet,
		cfg.Import.MaxBodySize,
	)

	// Create middleware
	// Relax the import limit in test environments to prevent flaky tests
	var importRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		importRateLimiter = middleware.NewRateLimiterWithConfig(0, cfg.Import.RateLimitWindow, clock)
	} else {
		importRateLimiter = middleware.NewRateLimiterWithConfig(cfg.Import.RateLimit, cfg.Import.RateLimitWindow, clock)
	}

	// Create router
	r := router.NewRouter(
		healthController,
		transactionController,
		stateController,
		summaryController,
		categoryController,
		dataTransferController,
		importRateLimiter,
	)

	return &Injector{
		Config:    cfg,
		Storage:   storage,
		Clock:     clock,
		Locale:    locale,
		Formatter: formatter,
		UseCases:  uc,
		Session:   sess,
		Router:    r,

		ImportRateLimiter: importRateLimiter,
	}, nil
}
