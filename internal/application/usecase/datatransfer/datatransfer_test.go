package datatransfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

type memoryStore struct {
	transactions []entity.Transaction
	err          error
	saves        int
}

func (s *memoryStore) Load(context.Context) ([]entity.Transaction, error) {
	return slices.Clone(s.transactions), s.err
}

func (s *memoryStore) Save(_ context.Context, transactions []entity.Transaction) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.transactions = slices.Clone(transactions)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var exportTime = time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)

func record(id, amount, date string) entity.Transaction {
	a := decimal.RequireFromString(amount)
	return entity.Transaction{
		ID:       id,
		Amount:   a,
		Category: "Autres",
		Date:     entity.MustParseDate(date),
		Status:   entity.TransactionStatusCompleted,
		Type:     entity.TypeFromAmount(a),
	}
}

func storedIDs(s *memoryStore) []string {
	out := make([]string, len(s.transactions))
	for i, t := range s.transactions {
		out[i] = t.ID
	}
	return out
}

func TestExportTransactionsUseCase(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{
		record("a", "-1", "2024-03-01"),
		record("b", "2", "2024-03-02"),
	}}

	output, err := NewExportTransactionsUseCase(store, fixedClock{exportTime}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Filename != "zfinance-export-2024-03-15.json" {
		t.Errorf("unexpected filename %s", output.Filename)
	}
	if output.Envelope.Count != 2 || output.Envelope.App != entity.AppIdentifier {
		t.Errorf("unexpected envelope %+v", output.Envelope)
	}
	if output.Envelope.Transactions[0].ID != "a" {
		t.Error("expected stored order to be kept")
	}
}

func TestExportThenImportRoundTrip(t *testing.T) {
	source := &memoryStore{transactions: []entity.Transaction{
		record("a", "-45.99", "2024-01-05"),
		record("b", "1500", "2024-01-01"),
	}}
	for i := range source.transactions {
		source.transactions[i].Description = "desc"
		source.transactions[i].CreatedAt = exportTime
		source.transactions[i].UpdatedAt = exportTime
	}

	output, err := NewExportTransactionsUseCase(source, fixedClock{exportTime}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(output.Envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := ValidateImport(raw)
	if !result.Valid {
		t.Fatalf("expected exported file to validate, got %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	target := &memoryStore{}
	if _, err := NewImportTransactionsUseCase(target).Execute(context.Background(), ImportTransactionsInput{
		Transactions: result.Data.Transactions,
		Mode:         entity.ImportModeReplace,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, want := range source.transactions {
		got := target.transactions[i]
		if got.ID != want.ID || !got.Amount.Equal(want.Amount) || got.Date.Compare(want.Date) != 0 || !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("record %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestImportTransactionsUseCase(t *testing.T) {
	existing := func() *memoryStore {
		return &memoryStore{transactions: []entity.Transaction{
			record("a", "1", "2024-03-01"),
			record("b", "2", "2024-03-02"),
		}}
	}
	incoming := []entity.Transaction{
		record("a", "9", "2024-03-01"),
		record("c", "3", "2024-03-03"),
		record("c", "4", "2024-03-04"),
		record("d", "5", "2024-03-05"),
	}

	t.Run("merge appends new ids only", func(t *testing.T) {
		store := existing()
		output, err := NewImportTransactionsUseCase(store).Execute(context.Background(), ImportTransactionsInput{
			Transactions: incoming,
			Mode:         entity.ImportModeMerge,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Imported != 2 || output.Skipped != 2 {
			t.Errorf("expected 2 imported and 2 skipped, got %+v", output)
		}
		if got := storedIDs(store); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
			t.Errorf("unexpected store %v", got)
		}
		if !store.transactions[0].Amount.Equal(decimal.NewFromInt(1)) {
			t.Error("expected existing record to be kept")
		}
	})

	t.Run("replace stores the batch verbatim", func(t *testing.T) {
		store := existing()
		output, err := NewImportTransactionsUseCase(store).Execute(context.Background(), ImportTransactionsInput{
			Transactions: incoming,
			Mode:         entity.ImportModeReplace,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Imported != 4 || len(store.transactions) != 4 {
			t.Errorf("expected 4 stored, got %+v", output)
		}
	})

	t.Run("replace with nothing empties the store", func(t *testing.T) {
		store := existing()
		if _, err := NewImportTransactionsUseCase(store).Execute(context.Background(), ImportTransactionsInput{
			Mode: entity.ImportModeReplace,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.transactions == nil || len(store.transactions) != 0 {
			t.Errorf("expected empty collection, got %v", store.transactions)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		store := existing()
		_, err := NewImportTransactionsUseCase(store).Execute(context.Background(), ImportTransactionsInput{
			Transactions: incoming,
			Mode:         "append",
		})
		if !errors.Is(err, domainerror.ErrInvalidImportMode) {
			t.Errorf("expected invalid mode error, got %v", err)
		}
		if store.saves != 0 {
			t.Error("expected nothing to be saved")
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		store := &memoryStore{err: errors.New("quota")}
		_, err := NewImportTransactionsUseCase(store).Execute(context.Background(), ImportTransactionsInput{
			Transactions: incoming,
			Mode:         entity.ImportModeReplace,
		})
		if !errors.Is(err, domainerror.ErrStorage) {
			t.Errorf("expected storage error, got %v", err)
		}
	})
}

type recordingWriter struct {
	received []entity.Transaction
}

func (w *recordingWriter) WriteTransactions(out io.Writer, transactions []entity.Transaction) error {
	w.received = transactions
	_, err := out.Write([]byte("sheet"))
	return err
}

func (w *recordingWriter) Extension() string { return "xlsx" }

func TestExportSpreadsheetUseCase(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{
		record("old", "1", "2024-01-01"),
		record("new", "2", "2024-03-01"),
	}}
	writer := &recordingWriter{}

	var buf bytes.Buffer
	output, err := NewExportSpreadsheetUseCase(store, fixedClock{exportTime}, writer).Execute(context.Background(), ExportSpreadsheetInput{Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Filename != "zfinance-export-2024-03-15.xlsx" || output.Count != 2 {
		t.Errorf("unexpected output %+v", output)
	}
	if writer.received[0].ID != "new" {
		t.Error("expected newest first")
	}
	if buf.String() != "sheet" {
		t.Errorf("expected writer output, got %q", buf.String())
	}
}
