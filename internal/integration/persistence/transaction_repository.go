// Package persistence implements the transaction store on the supported backends.
package persistence

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
	"github.com/finance-tracker/zfinance/internal/integration/persistence/model"
)

// saveBatchSize bounds the rows per INSERT statement.
const saveBatchSize = 500

// transactionRepository stores the collection as one row per transaction.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a relational transaction store.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionStore {
	return &transactionRepository{
		db: db,
	}
}

// Load reads every row in saved order.
func (r *transactionRepository) Load(ctx context.Context) ([]entity.Transaction, error) {
	var models []model.TransactionModel
	result := r.db.WithContext(ctx).Order("position ASC").Find(&models)
	if result.Error != nil {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeStorageUnavailable,
			"failed to load transactions",
			result.Error,
		)
	}

	transactions := make([]entity.Transaction, 0, len(models))
	for i := range models {
		t := models[i].ToEntity()
		if t.Date.IsZero() {
			slog.WarnContext(ctx, "Stored transaction has an invalid date", "id", t.ID, "date", models[i].Date)
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// Save replaces all rows inside a single database transaction.
func (r *transactionRepository) Save(ctx context.Context, transactions []entity.Transaction) error {
	models := make([]*model.TransactionModel, 0, len(transactions))
	for i, t := range transactions {
		models = append(models, model.TransactionFromEntity(t, i+1))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, saveBatchSize).Error
	})
	if err != nil {
		return domainerror.NewStorageError(
			domainerror.ErrCodeStorageWriteFailed,
			"failed to save transactions",
			err,
		)
	}
	return nil
}
