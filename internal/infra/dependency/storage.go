package dependency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/zfinance/config"
	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/infra/db"
	"github.com/finance-tracker/zfinance/internal/integration/persistence"
	"github.com/finance-tracker/zfinance/internal/integration/persistence/model"
)

// Storage is the persistence wiring selected by configuration.
type Storage struct {
	Store adapter.TransactionStore
	// Legacy holds records written under the previous storage key.
	Legacy      adapter.LegacyTransactionStore
	HealthCheck func() bool
	closers     []func() error
}

// Close releases the underlying connections.
func (s *Storage) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewStorage opens the backend named by cfg.Storage.Driver.
func NewStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		kv := persistence.NewMemoryKeyValue(cfg.Storage.MemoryQuota)
		return NewKeyValueStorage(kv, cfg, func() bool { return true }), nil

	case config.StorageDriverRedis:
		client, err := db.NewRedisConnection(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		storage := NewKeyValueStorage(persistence.NewRedisKeyValue(client), cfg, func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx).Err() == nil
		})
		storage.closers = append(storage.closers, client.Close)
		return storage, nil

	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		var (
			database *db.Database
			err      error
		)
		if cfg.Storage.Driver == config.StorageDriverSQLite {
			database, err = db.NewSQLiteConnection(&cfg.Database)
		} else {
			database, err = db.NewPostgresConnection(&cfg.Database)
		}
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(&model.TransactionModel{}, &model.KeyValueModel{}); err != nil {
			_ = database.Close()
			return nil, err
		}
		storage := NewGormStorage(database.DB(), cfg)
		storage.HealthCheck = database.HealthCheck
		storage.closers = append(storage.closers, database.Close)
		return storage, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewKeyValueStorage keeps the collection and the legacy collection as two keys of kv.
func NewKeyValueStorage(kv persistence.KeyValue, cfg *config.Config, health func() bool) *Storage {
	return &Storage{
		Store:       simulate(persistence.NewKeyValueStore(kv, cfg.Storage.Key), cfg.Simulation),
		Legacy:      persistence.NewLegacyKeyValueStore(kv, cfg.Storage.LegacyKey),
		HealthCheck: health,
	}
}

// NewGormStorage keeps the collection in the transactions table and the legacy
// collection in the key_values table. The schema must already be migrated.
func NewGormStorage(gormDB *gorm.DB, cfg *config.Config) *Storage {
	return &Storage{
		Store:  simulate(persistence.NewTransactionRepository(gormDB), cfg.Simulation),
		Legacy: persistence.NewLegacyKeyValueStore(persistence.NewGormKeyValue(gormDB), cfg.Storage.LegacyKey),
		HealthCheck: func() bool {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
	}
}

func simulate(store adapter.TransactionStore, cfg config.SimulationConfig) adapter.TransactionStore {
	if !cfg.Enabled {
		return store
	}
	return persistence.NewSimulatedStore(store, persistence.SimulationOptions{
		MinDelay:  cfg.MinDelay,
		MaxDelay:  cfg.MaxDelay,
		ErrorRate: cfg.ErrorRate,
	})
}
