//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/zfinance/config"
	"github.com/finance-tracker/zfinance/internal/infra/dependency"
	"github.com/finance-tracker/zfinance/internal/integration/persistence"
	"github.com/finance-tracker/zfinance/internal/integration/persistence/model"
	"github.com/finance-tracker/zfinance/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server   *httptest.Server
	client   *http.Client
	headers  map[string]string
	response *response

	// Application
	cfg      *config.Config
	injector *dependency.Injector
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time
	ids      *mock.IDs

	// Captured values for {{placeholders}}
	lastTransactionID string
	transactionIDs    []string
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &TestContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		ids:      mock.NewIDs(),
		db: mock.NewDb(map[string]any{
			"transactions": &model.TransactionModel{},
			"key_values":   &model.KeyValueModel{},
		}),
		redis: mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.stopServer()
		return ctx, nil
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStorageSteps(ctx, test)
}

func (t *TestContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.lastTransactionID = ""
	t.transactionIDs = nil
	t.ids.Reset()
	t.timeMock.SetCurrentTime(time.Now())

	t.cfg = config.Load()
	t.cfg.Server.Environment = "test"
	t.cfg.Simulation.Enabled = false
	t.cfg.Categories.File = ""
	t.cfg.Locale.Locale = "fr-FR"
	t.cfg.Locale.Currency = "EUR"

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(t.redis)
}

// startServer wires the application over the chosen storage and serves it in-process.
func (t *TestContext) startServer(driver string) error {
	t.stopServer()

	var storage *dependency.Storage
	switch driver {
	case config.StorageDriverRedis:
		t.cfg.Storage.Driver = config.StorageDriverRedis
		storage = dependency.NewKeyValueStorage(persistence.NewRedisKeyValue(t.redis), t.cfg, func() bool {
			return t.redis.Ping(context.Background()).Err() == nil
		})
	case config.StorageDriverSQLite:
		t.cfg.Storage.Driver = config.StorageDriverSQLite
		storage = dependency.NewGormStorage(t.db.DbConn, t.cfg)
	default:
		return fmt.Errorf("unsupported storage %q", driver)
	}

	injector, err := dependency.NewInjector(t.cfg, storage, t.timeMock, t.ids)
	if err != nil {
		return err
	}
	t.injector = injector

	engine := injector.Router.Setup(t.cfg.Server.Environment)
	t.server = httptest.NewServer(engine)
	return nil
}

func (t *TestContext) stopServer() {
	if t.server != nil {
		t.server.Close()
		t.server = nil
	}
}
