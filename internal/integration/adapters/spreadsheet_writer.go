package adapters

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

const transactionsSheet = "Transactions"

var spreadsheetHeader = []any{
	"ID", "Date", "Description", "Category", "Amount", "Type", "Status", "Created At", "Updated At",
}

type xlsxWriter struct{}

// NewSpreadsheetWriter returns a writer producing XLSX workbooks.
func NewSpreadsheetWriter() adapter.SpreadsheetWriter {
	return xlsxWriter{}
}

func (xlsxWriter) Extension() string {
	return "xlsx"
}

// WriteTransactions writes one row per transaction below a header row, with the
// amount stored as a number.
func (xlsxWriter) WriteTransactions(w io.Writer, transactions []entity.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), transactionsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(transactionsSheet, "A1", &spreadsheetHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range transactions {
		amount, _ := t.Amount.Float64()
		row := []any{
			t.ID,
			t.Date.String(),
			t.Description,
			t.Category,
			amount,
			string(t.EffectiveType()),
			string(t.Status),
			t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(transactionsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
