package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	"github.com/finance-tracker/zfinance/internal/integration/adapters"
)

type memoryStore struct {
	transactions []entity.Transaction
}

func (s *memoryStore) Load(context.Context) ([]entity.Transaction, error) {
	return slices.Clone(s.transactions), nil
}

func (s *memoryStore) Save(_ context.Context, transactions []entity.Transaction) error {
	s.transactions = slices.Clone(transactions)
	return nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }

func stored(id, amount, description, date string) entity.Transaction {
	a := decimal.RequireFromString(amount)
	ts := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	return entity.Transaction{
		ID:          id,
		Amount:      a,
		Description: description,
		Category:    "Autres",
		Date:        entity.MustParseDate(date),
		Status:      entity.TransactionStatusCompleted,
		Type:        entity.TypeFromAmount(a),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// newTestRoot wires the commands to an in-memory store and reports how many times
// the application was released.
func newTestRoot(t *testing.T, store *memoryStore) (*bytes.Buffer, func(args ...string) error, *int) {
	t.Helper()

	formatter, err := adapters.NewFormatter("en-US", "USD")
	if err != nil {
		t.Fatalf("failed to create formatter: %v", err)
	}
	clock := fixedClock{}
	released := 0

	open := func(context.Context) (*App, func() error, error) {
		sess := session.New(
			transaction.NewListTransactionsUseCase(store),
			transaction.NewCreateTransactionUseCase(store, clock, adapters.NewIDGenerator()),
			transaction.NewUpdateTransactionUseCase(store, clock),
			transaction.NewDeleteTransactionUseCase(store),
			datatransfer.NewImportTransactionsUseCase(store),
			clock,
			language.AmericanEnglish,
		)
		app := &App{
			Session:           sess,
			GetSummary:        dashboard.NewGetSummaryUseCase(store, clock),
			ExportJSON:        datatransfer.NewExportTransactionsUseCase(store, clock),
			ExportSpreadsheet: datatransfer.NewExportSpreadsheetUseCase(store, clock, adapters.NewSpreadsheetWriter()),
			Formatter:         formatter,
			Clock:             clock,
		}
		return app, func() error { released++; return nil }, nil
	}

	out := &bytes.Buffer{}
	run := func(args ...string) error {
		root := NewRootCommand(open)
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs(args)
		return root.ExecuteContext(context.Background())
	}
	return out, run, &released
}

func TestListCommand(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{
		stored("t1", "-20", "Cinema", "2024-03-10"),
		stored("t2", "1500", "Salary", "2024-03-01"),
		stored("t3", "-60", "Groceries", "2024-03-12"),
	}}

	t.Run("prints every transaction", func(t *testing.T) {
		out, run, released := newTestRoot(t, store)
		if err := run("list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Cinema", "Salary", "Groceries", "$1,500.00", "3 / 3"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
			}
		}
		if *released != 1 {
			t.Errorf("expected the application to be released once, got %d", *released)
		}
	})

	t.Run("applies filter and limit", func(t *testing.T) {
		out, run, _ := newTestRoot(t, store)
		if err := run("list", "--type", "expense", "--sort", "amount", "--order", "asc", "--limit", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Groceries") || strings.Contains(out.String(), "Cinema") {
			t.Errorf("expected only the largest expense, got:\n%s", out.String())
		}
		if !strings.Contains(out.String(), "1 / 3") {
			t.Errorf("expected footer 1 / 3, got:\n%s", out.String())
		}
	})

	t.Run("rejects bad flags", func(t *testing.T) {
		_, run, _ := newTestRoot(t, store)
		if err := run("list", "--type", "refunds"); err == nil {
			t.Error("expected an error for an unknown type")
		}
		if err := run("list", "--from", "yesterday"); err == nil {
			t.Error("expected an error for an invalid date")
		}
	})
}

func TestStatsCommand(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{
		stored("t1", "-20", "Cinema", "2024-03-10"),
		stored("t2", "1500", "Salary", "2024-03-01"),
		stored("t3", "1200", "Salary", "2024-02-01"),
	}}
	out, run, _ := newTestRoot(t, store)

	if err := run("stats"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	printed := strings.ToLower(out.String())
	for _, want := range []string{"march 2024", "$2,680.00", "+$300.00", "25.0%"} {
		if !strings.Contains(printed, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}

	if err := run("stats", "--date", "15-03-2024"); err == nil {
		t.Error("expected an error for an invalid date")
	}
}

func TestExportAndImportCommands(t *testing.T) {
	dir := t.TempDir()
	source := &memoryStore{transactions: []entity.Transaction{
		stored("t1", "-20", "Cinema", "2024-03-10"),
		stored("t2", "1500", "Salary", "2024-03-01"),
	}}
	out, run, _ := newTestRoot(t, source)

	path := filepath.Join(dir, "export.json")
	if err := run("export", "--out", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Exported 2 transactions") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var envelope entity.ExportEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if envelope.Count != 2 || envelope.App != entity.AppIdentifier {
		t.Errorf("unexpected envelope %+v", envelope)
	}

	t.Run("dry run leaves the store untouched", func(t *testing.T) {
		target := &memoryStore{}
		out, run, _ := newTestRoot(t, target)
		if err := run("import", path, "--dry-run"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "2 transactions are valid") || len(target.transactions) != 0 {
			t.Errorf("unexpected dry run result:\n%s", out.String())
		}
	})

	t.Run("merge", func(t *testing.T) {
		target := &memoryStore{transactions: []entity.Transaction{stored("t1", "-20", "Cinema", "2024-03-10")}}
		out, run, _ := newTestRoot(t, target)
		if err := run("import", path, "--mode", "merge"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Imported 1, skipped 1 (merge)") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
		if len(target.transactions) != 2 {
			t.Errorf("expected 2 stored transactions, got %d", len(target.transactions))
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(bad, []byte(`{"transactions":[{"id":1}]}`), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		_, run, _ := newTestRoot(t, &memoryStore{})
		if err := run("import", bad); !errors.Is(err, ErrInvalidImportFile) {
			t.Errorf("expected ErrInvalidImportFile, got %v", err)
		}
	})
}

func TestExportCommand_Spreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	_, run, _ := newTestRoot(t, &memoryStore{transactions: []entity.Transaction{
		stored("t1", "-20", "Cinema", "2024-03-10"),
	}})

	if err := run("export", "--format", "xlsx", "--out", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty spreadsheet, got %v", err)
	}

	if err := run("export", "--format", "csv"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
