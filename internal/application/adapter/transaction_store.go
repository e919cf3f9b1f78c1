// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// TransactionStore defines the persistence adapter for the transaction collection.
// The collection is read and written wholesale.
type TransactionStore interface {
	// Load returns the persisted collection in stored order.
	// An absent or corrupt collection loads as empty; only an unreachable medium is an error.
	Load(ctx context.Context) ([]entity.Transaction, error)

	// Save replaces the persisted collection. It fails with a storage error when the
	// medium rejects the write.
	Save(ctx context.Context, transactions []entity.Transaction) error
}

// LegacyTransactionStore is a store that can be discarded once its content has been migrated.
type LegacyTransactionStore interface {
	TransactionStore

	// Remove deletes the persisted collection entirely.
	Remove(ctx context.Context) error
}
