package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/zfinance/config"
)

// NewSQLiteConnection opens (and creates if needed) the SQLite database file at
// cfg.SQLitePath. The special path ":memory:" gives a private in-memory database.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
	sqlDB.SetMaxOpenConns(1)

	slog.Info("Database connection established",
		"driver", "sqlite",
		"path", cfg.SQLitePath,
	)

	return &Database{
		db:     db,
		cfg:    cfg,
		driver: config.StorageDriverSQLite,
	}, nil
}
