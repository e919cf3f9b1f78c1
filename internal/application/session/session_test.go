package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

type memoryStore struct {
	mu           sync.Mutex
	transactions []entity.Transaction
	failSave     bool
	failLoad     bool
}

func (s *memoryStore) Load(context.Context) ([]entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLoad {
		return nil, errors.New("unreachable")
	}
	return slices.Clone(s.transactions), nil
}

func (s *memoryStore) Save(_ context.Context, transactions []entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("quota exceeded")
	}
	s.transactions = slices.Clone(transactions)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type counterIDs struct {
	mu sync.Mutex
	n  int
}

func (g *counterIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("n%d", g.n), nil
}

// gatedStore blocks each Load until a value is sent on release.
type gatedStore struct {
	memoryStore
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) Load(ctx context.Context) ([]entity.Transaction, error) {
	s.entered <- struct{}{}
	<-s.release
	return s.memoryStore.Load(ctx)
}

func newSession(store adapter.TransactionStore) *Session {
	clock := fixedClock{time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
	return New(
		transaction.NewListTransactionsUseCase(store),
		transaction.NewCreateTransactionUseCase(store, clock, &counterIDs{}),
		transaction.NewUpdateTransactionUseCase(store, clock),
		transaction.NewDeleteTransactionUseCase(store),
		datatransfer.NewImportTransactionsUseCase(store),
		clock,
		language.French,
	)
}

func seed(id, amount, date, category string) entity.Transaction {
	a := decimal.RequireFromString(amount)
	return entity.Transaction{
		ID:          id,
		Amount:      a,
		Description: id,
		Category:    category,
		Date:        entity.MustParseDate(date),
		Status:      entity.TransactionStatusCompleted,
		Type:        entity.TypeFromAmount(a),
	}
}

func viewIDs(s Snapshot) []string {
	out := make([]string, len(s.Transactions))
	for i, t := range s.Transactions {
		out[i] = t.ID
	}
	return out
}

func input(amount, description, category string) entity.TransactionInput {
	a := decimal.RequireFromString(amount)
	return entity.TransactionInput{Amount: &a, Description: &description, Category: &category}
}

func TestSession_InitialState(t *testing.T) {
	s := newSession(&memoryStore{})
	snap := s.Snapshot()

	if snap.Transactions == nil || len(snap.Transactions) != 0 {
		t.Errorf("expected empty list, got %v", snap.Transactions)
	}
	if snap.Filter != entity.DefaultFilterState() || snap.Sort != entity.DefaultSortState() {
		t.Errorf("unexpected defaults %+v %+v", snap.Filter, snap.Sort)
	}
	if snap.Loading || snap.Error != nil {
		t.Errorf("unexpected flags %+v", snap)
	}
}

func TestSession_LoadFilterSort(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{
		seed("a", "-20", "2024-03-10", "Loisirs"),
		seed("b", "1500", "2024-03-01", "Salaire"),
		seed("c", "-60", "2024-03-12", "Courses"),
	}}
	s := newSession(store)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := viewIDs(s.Snapshot()); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("expected newest first, got %v", got)
	}

	if err := s.SetFilter(entity.FilterState{Type: entity.FilterTypeExpense}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetSort(entity.SortState{By: entity.SortByAmount, Order: entity.SortDesc}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if got := viewIDs(snap); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("expected filtered then sorted view, got %v", got)
	}
	if snap.Filter.Category != entity.CategoryAll {
		t.Errorf("expected empty category to mean all, got %q", snap.Filter.Category)
	}
	// Stats cover the whole collection
	if snap.Stats.Count != 3 || !snap.Stats.Balance.Equal(decimal.NewFromInt(1420)) {
		t.Errorf("unexpected stats %+v", snap.Stats)
	}
}

func TestSession_RejectsInvalidSettings(t *testing.T) {
	s := newSession(&memoryStore{})

	if err := s.SetFilter(entity.FilterState{Type: "refunds"}); !errors.Is(err, domainerror.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := s.SetSort(entity.SortState{By: "name", Order: entity.SortAsc}); !errors.Is(err, domainerror.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := s.SetSort(entity.SortState{By: entity.SortByDate, Order: "up"}); !errors.Is(err, domainerror.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	snap := s.Snapshot()
	if snap.Filter != entity.DefaultFilterState() || snap.Sort != entity.DefaultSortState() {
		t.Error("expected settings to be unchanged")
	}
}

func TestSession_CreateUpdateDelete(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{seed("a", "-20", "2024-03-10", "Loisirs")}}
	s := newSession(store)
	ctx := context.Background()
	_ = s.Load(ctx)

	created, err := s.Create(ctx, input("-45.99", "Carrefour", "Courses"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "n1" || created.Date.String() != "2024-03-15" {
		t.Errorf("unexpected transaction %+v", created)
	}
	if got := viewIDs(s.Snapshot()); !slices.Equal(got, []string{"n1", "a"}) {
		t.Errorf("expected the new transaction in the view, got %v", got)
	}

	description := "Carrefour Market"
	if _, err := s.Update(ctx, "n1", entity.TransactionPatch{Description: &description}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().Transactions[0].Description != description {
		t.Error("expected the updated record in the view")
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := viewIDs(s.Snapshot()); !slices.Equal(got, []string{"n1"}) {
		t.Errorf("expected a to be gone, got %v", got)
	}
	if len(store.transactions) != 1 {
		t.Errorf("expected the store to follow, got %d records", len(store.transactions))
	}
}

func TestSession_FailuresFillTheErrorSlot(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{seed("a", "-20", "2024-03-10", "Loisirs")}}
	s := newSession(store)
	ctx := context.Background()
	_ = s.Load(ctx)

	t.Run("validation", func(t *testing.T) {
		_, err := s.Create(ctx, input("1", "", "Courses"))
		if err == nil {
			t.Fatal("expected error")
		}
		snap := s.Snapshot()
		if snap.Error == nil || snap.Error.Code != string(domainerror.ErrCodeMissingDescription) {
			t.Errorf("unexpected error slot %+v", snap.Error)
		}
		if snap.Error.Retryable {
			t.Error("expected validation errors not to be retryable")
		}
		if len(snap.Transactions) != 1 {
			t.Error("expected the list to be untouched")
		}
	})

	t.Run("clear", func(t *testing.T) {
		s.ClearError()
		if s.Snapshot().Error != nil {
			t.Error("expected the slot to be empty")
		}
	})

	t.Run("storage", func(t *testing.T) {
		store.failSave = true
		defer func() { store.failSave = false }()

		if err := s.Delete(ctx, "a"); !errors.Is(err, domainerror.ErrStorage) {
			t.Fatalf("expected storage error, got %v", err)
		}
		snap := s.Snapshot()
		if snap.Error == nil || snap.Error.Code != string(domainerror.ErrCodeStorageWriteFailed) {
			t.Fatalf("unexpected error slot %+v", snap.Error)
		}
		if !snap.Error.Retryable {
			t.Error("expected storage errors to be retryable")
		}
		if len(snap.Transactions) != 1 {
			t.Error("expected the list to be untouched")
		}
	})

	t.Run("success clears the slot", func(t *testing.T) {
		if err := s.Load(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Snapshot().Error != nil {
			t.Error("expected the slot to be empty")
		}
	})

	t.Run("load failure keeps the list", func(t *testing.T) {
		store.failLoad = true
		defer func() { store.failLoad = false }()

		if err := s.Load(ctx); err == nil {
			t.Fatal("expected error")
		}
		snap := s.Snapshot()
		if snap.Loading {
			t.Error("expected loading to be reset")
		}
		if len(snap.Transactions) != 1 || snap.Error == nil {
			t.Errorf("unexpected snapshot %+v", snap)
		}
	})
}

func TestSession_Import(t *testing.T) {
	store := &memoryStore{transactions: []entity.Transaction{seed("a", "-20", "2024-03-10", "Loisirs")}}
	s := newSession(store)
	ctx := context.Background()
	_ = s.Load(ctx)

	output, err := s.Import(ctx, []entity.Transaction{
		seed("a", "-20", "2024-03-10", "Loisirs"),
		seed("b", "5", "2024-03-11", "Autres"),
	}, entity.ImportModeMerge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Imported != 1 || output.Skipped != 1 {
		t.Errorf("unexpected output %+v", output)
	}
	if len(s.Snapshot().Transactions) != 2 {
		t.Error("expected the list to be reloaded")
	}

	if _, err := s.Import(ctx, nil, "append"); !errors.Is(err, domainerror.ErrInvalidImportMode) {
		t.Errorf("expected invalid mode, got %v", err)
	}
	if s.Snapshot().Error == nil {
		t.Error("expected the error slot to be filled")
	}
}

func TestSession_CancelledRequestStillCompletesTheWrite(t *testing.T) {
	store := &memoryStore{}
	s := newSession(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Create(ctx, input("3", "Pain", "Courses")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.transactions) != 1 {
		t.Error("expected the write to reach the store")
	}
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := newSession(&memoryStore{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, input("1", "x", "y"))
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = s.SetFilter(entity.DefaultFilterState())
		}()
	}
	wg.Wait()

	if err := s.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.Snapshot().Transactions); got == 0 {
		t.Error("expected transactions after concurrent creates")
	}
}

func TestSession_LoadingStaysSetUntilTheLastLoadEnds(t *testing.T) {
	store := &gatedStore{entered: make(chan struct{}), release: make(chan struct{})}
	s := newSession(store)
	ctx := context.Background()

	done := make(chan error, 2)
	for range 2 {
		go func() { done <- s.Load(ctx) }()
	}
	<-store.entered
	<-store.entered

	if !s.Snapshot().Loading {
		t.Fatal("expected loading while both loads are in flight")
	}

	store.release <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().Loading {
		t.Error("expected loading while one load is still in flight")
	}

	store.release <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().Loading {
		t.Error("expected loading to clear after the last load")
	}
}
