package datatransfer

import (
	"context"
	"fmt"
	"io"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// ExportSpreadsheetInput represents the input for a spreadsheet export.
type ExportSpreadsheetInput struct {
	Writer io.Writer
}

// ExportSpreadsheetOutput represents the output of a spreadsheet export.
type ExportSpreadsheetOutput struct {
	Filename string
	Count    int
}

// ExportSpreadsheetUseCase writes the collection, newest first, as a spreadsheet.
type ExportSpreadsheetUseCase struct {
	store  adapter.TransactionStore
	clock  adapter.Clock
	writer adapter.SpreadsheetWriter
}

// NewExportSpreadsheetUseCase creates a new ExportSpreadsheetUseCase instance.
func NewExportSpreadsheetUseCase(
	store adapter.TransactionStore,
	clock adapter.Clock,
	writer adapter.SpreadsheetWriter,
) *ExportSpreadsheetUseCase {
	return &ExportSpreadsheetUseCase{
		store:  store,
		clock:  clock,
		writer: writer,
	}
}

// Execute streams the document to input.Writer.
func (uc *ExportSpreadsheetUseCase) Execute(ctx context.Context, input ExportSpreadsheetInput) (*ExportSpreadsheetOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to load transactions", err)
	}

	ordered := dashboard.NewestFirst(transactions)
	if err := uc.writer.WriteTransactions(input.Writer, ordered); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	return &ExportSpreadsheetOutput{
		Filename: ExportFilename(uc.clock.Now(), uc.writer.Extension()),
		Count:    len(ordered),
	}, nil
}
