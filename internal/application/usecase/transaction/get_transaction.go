// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// GetTransactionInput represents the input for a single transaction lookup.
type GetTransactionInput struct {
	ID string
}

// GetTransactionOutput represents the output of a single transaction lookup.
type GetTransactionOutput struct {
	Transaction entity.Transaction
}

// GetTransactionUseCase finds one transaction by id.
type GetTransactionUseCase struct {
	store adapter.TransactionStore
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(store adapter.TransactionStore) *GetTransactionUseCase {
	return &GetTransactionUseCase{store: store}
}

// Execute returns the transaction or a not-found error.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	idx := entity.IndexOfTransaction(transactions, input.ID)
	if idx < 0 {
		return nil, domainerror.NewNotFoundError(input.ID)
	}

	return &GetTransactionOutput{Transaction: transactions[idx]}, nil
}
