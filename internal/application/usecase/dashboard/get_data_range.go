package dashboard

import (
	"context"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// GetDataRangeOutput represents the output of getting the data range.
type GetDataRangeOutput struct {
	OldestDate        entity.Date
	NewestDate        entity.Date
	TotalTransactions int
	HasData           bool
}

// GetDataRangeUseCase handles getting the date range of the stored transactions.
type GetDataRangeUseCase struct {
	store adapter.TransactionStore
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(store adapter.TransactionStore) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		store: store,
	}
}

// Execute retrieves the oldest and newest transaction dates.
func (uc *GetDataRangeUseCase) Execute(ctx context.Context) (*GetDataRangeOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to get date range", err)
	}

	return DataRange(transactions), nil
}

// DataRange scans the collection for its oldest and newest dates. Undated records are ignored.
func DataRange(transactions []entity.Transaction) *GetDataRangeOutput {
	output := &GetDataRangeOutput{
		TotalTransactions: len(transactions),
	}

	for _, t := range transactions {
		if t.Date.IsZero() {
			continue
		}
		if output.OldestDate.IsZero() || t.Date.Before(output.OldestDate) {
			output.OldestDate = t.Date
		}
		if output.NewestDate.IsZero() || t.Date.After(output.NewestDate) {
			output.NewestDate = t.Date
		}
	}

	output.HasData = !output.OldestDate.IsZero()
	return output
}
