// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"slices"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// BulkDeleteTransactionsInput represents the input for bulk transaction deletion.
type BulkDeleteTransactionsInput struct {
	IDs []string
}

// BulkDeleteTransactionsOutput represents the output of bulk transaction deletion.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int
}

// BulkDeleteTransactionsUseCase handles bulk transaction deletion logic.
type BulkDeleteTransactionsUseCase struct {
	store adapter.TransactionStore
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(store adapter.TransactionStore) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{store: store}
}

// Execute removes every listed transaction in a single save. Nothing is removed
// unless all ids exist.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	if len(input.IDs) == 0 {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"ids",
			"transaction IDs list cannot be empty",
		)
	}

	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	targets, err := requireAll(transactions, input.IDs)
	if err != nil {
		return nil, err
	}

	remaining := slices.DeleteFunc(slices.Clone(transactions), func(t entity.Transaction) bool {
		_, ok := targets[t.ID]
		return ok
	})

	if err := uc.store.Save(ctx, remaining); err != nil {
		return nil, saveError(err)
	}

	deleted := len(transactions) - len(remaining)
	slog.InfoContext(ctx, "Transactions deleted", "count", deleted)

	return &BulkDeleteTransactionsOutput{DeletedCount: deleted}, nil
}

// requireAll returns the id set, or a not-found error for the first unknown id.
func requireAll(transactions []entity.Transaction, ids []string) (map[string]struct{}, error) {
	known := make(map[string]struct{}, len(transactions))
	for _, t := range transactions {
		known[t.ID] = struct{}{}
	}

	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, domainerror.NewNotFoundError(id)
		}
		targets[id] = struct{}{}
	}
	return targets, nil
}
