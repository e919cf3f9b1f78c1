// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"io"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// SpreadsheetWriter renders a transaction collection as a spreadsheet document.
type SpreadsheetWriter interface {
	WriteTransactions(w io.Writer, transactions []entity.Transaction) error

	// Extension is the file extension of the produced document, without the dot.
	Extension() string
}
