// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
// Zero values disable the corresponding option.
type ListTransactionsInput struct {
	Type      entity.FilterType
	Category  string
	StartDate entity.Date
	EndDate   entity.Date
	Limit     int
	Offset    int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []entity.Transaction
	// Total counts the matches before pagination.
	Total int
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	store adapter.TransactionStore
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(store adapter.TransactionStore) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{store: store}
}

// Execute returns the matching transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filterType := input.Type
	if filterType == "" {
		filterType = entity.FilterTypeAll
	}
	if !filterType.IsValid() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidFilter,
			"type",
			"type must be 'all', 'income' or 'expense'",
		)
	}
	if input.Limit < 0 || input.Offset < 0 {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidFilter,
			"limit",
			"limit and offset must not be negative",
		)
	}

	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	matches := dashboard.FilterTransactions(dashboard.NewestFirst(transactions), entity.FilterState{
		Type:     filterType,
		Category: input.Category,
		DateRange: entity.DateRange{
			Start: input.StartDate,
			End:   input.EndDate,
		},
	})

	return &ListTransactionsOutput{
		Transactions: paginate(matches, input.Offset, input.Limit),
		Total:        len(matches),
	}, nil
}

// paginate ignores the offset unless a limit is set.
func paginate(transactions []entity.Transaction, offset, limit int) []entity.Transaction {
	if limit == 0 {
		return transactions
	}
	if offset >= len(transactions) {
		return []entity.Transaction{}
	}
	return transactions[offset:min(offset+limit, len(transactions))]
}
