// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// BulkCategorizeTransactionsInput represents the input for bulk transaction categorization.
type BulkCategorizeTransactionsInput struct {
	IDs      []string
	Category string
}

// BulkCategorizeTransactionsOutput represents the output of bulk transaction categorization.
type BulkCategorizeTransactionsOutput struct {
	UpdatedCount int
}

// BulkCategorizeTransactionsUseCase handles bulk transaction categorization logic.
type BulkCategorizeTransactionsUseCase struct {
	store adapter.TransactionStore
	clock adapter.Clock
}

// NewBulkCategorizeTransactionsUseCase creates a new BulkCategorizeTransactionsUseCase instance.
func NewBulkCategorizeTransactionsUseCase(store adapter.TransactionStore, clock adapter.Clock) *BulkCategorizeTransactionsUseCase {
	return &BulkCategorizeTransactionsUseCase{
		store: store,
		clock: clock,
	}
}

// Execute moves every listed transaction to the given category in a single save.
func (uc *BulkCategorizeTransactionsUseCase) Execute(ctx context.Context, input BulkCategorizeTransactionsInput) (*BulkCategorizeTransactionsOutput, error) {
	if len(input.IDs) == 0 {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"ids",
			"transaction IDs list cannot be empty",
		)
	}

	category, err := validateCategory(&input.Category)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	targets, err := requireAll(transactions, input.IDs)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	updated := make([]entity.Transaction, len(transactions))
	count := 0
	for i, t := range transactions {
		if _, ok := targets[t.ID]; ok {
			t.Category = category
			t.UpdatedAt = now
			count++
		}
		updated[i] = t
	}

	if err := uc.store.Save(ctx, updated); err != nil {
		return nil, saveError(err)
	}

	slog.InfoContext(ctx, "Transactions categorized", "count", count, "category", category)

	return &BulkCategorizeTransactionsOutput{UpdatedCount: count}, nil
}
