// Package dashboard contains the aggregation engine: pure filtering, sorting and
// statistics over a transaction collection, plus the summary use case built on them.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// GetSummaryInput represents the input for computing the monthly summary.
type GetSummaryInput struct {
	// ReferenceDate selects the current month. Defaults to now.
	ReferenceDate *time.Time
}

// GetSummaryOutput represents the monthly summary shown on the dashboard.
type GetSummaryOutput struct {
	ReferenceDate    time.Time
	Stats            entity.Stats
	IncomeEvolution  Evolution
	ExpenseEvolution Evolution
	LastMonthBalance decimal.Decimal
}

// GetSummaryUseCase computes the summary from the persisted collection.
type GetSummaryUseCase struct {
	store adapter.TransactionStore
	clock adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(store adapter.TransactionStore, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		store: store,
		clock: clock,
	}
}

// Execute loads the collection and derives the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to load transactions", err)
	}

	reference := uc.clock.Now()
	if input.ReferenceDate != nil {
		reference = *input.ReferenceDate
	}

	return Summarize(transactions, reference), nil
}

// Summarize derives the summary of a collection for the month containing reference.
func Summarize(transactions []entity.Transaction, reference time.Time) *GetSummaryOutput {
	stats := ComputeStats(transactions, reference)
	return &GetSummaryOutput{
		ReferenceDate:    reference,
		Stats:            stats,
		IncomeEvolution:  IncomeEvolution(stats),
		ExpenseEvolution: ExpenseEvolution(stats),
		LastMonthBalance: stats.LastMonthBalance(),
	}
}
