package datatransfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// ExportFilename returns the download name of an export made on the given day.
func ExportFilename(at time.Time, extension string) string {
	return fmt.Sprintf("zfinance-export-%s.%s", at.UTC().Format(entity.DateLayout), extension)
}

// ExportTransactionsOutput represents the output of a JSON export.
type ExportTransactionsOutput struct {
	Envelope *entity.ExportEnvelope
	Filename string
}

// ExportTransactionsUseCase snapshots the full persisted collection, not any filtered view.
type ExportTransactionsUseCase struct {
	store adapter.TransactionStore
	clock adapter.Clock
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(store adapter.TransactionStore, clock adapter.Clock) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		store: store,
		clock: clock,
	}
}

// Execute builds the export envelope.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context) (*ExportTransactionsOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to load transactions", err)
	}

	now := uc.clock.Now()
	envelope := entity.NewExportEnvelope(transactions, now)

	slog.InfoContext(ctx, "Transactions exported", "count", envelope.Count)

	return &ExportTransactionsOutput{
		Envelope: envelope,
		Filename: ExportFilename(now, "json"),
	}, nil
}
