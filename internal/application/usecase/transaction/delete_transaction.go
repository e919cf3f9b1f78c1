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

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID string
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	ID string
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	store adapter.TransactionStore
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(store adapter.TransactionStore) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{store: store}
}

// Execute removes the transaction, leaving the order of the others untouched.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	idx := entity.IndexOfTransaction(transactions, input.ID)
	if idx < 0 {
		return nil, domainerror.NewNotFoundError(input.ID)
	}

	remaining := slices.Delete(slices.Clone(transactions), idx, idx+1)
	if err := uc.store.Save(ctx, remaining); err != nil {
		return nil, saveError(err)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", input.ID)

	return &DeleteTransactionOutput{ID: input.ID}, nil
}
