// Package session holds the in-memory view of the transaction collection that the
// consumer surfaces read: the loaded list, the filter and sort settings, a loading
// flag and the last error. Every mutation goes through the use cases; the derived
// view is recomputed from the list on each snapshot.
package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// ErrorState is the content of the error slot.
type ErrorState struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Snapshot is a consistent copy of the session state with the derived view.
type Snapshot struct {
	// Transactions is the filtered and sorted view.
	Transactions []entity.Transaction `json:"transactions"`
	// Stats is computed over the whole loaded collection, not the filtered view.
	Stats   entity.Stats       `json:"stats"`
	Filter  entity.FilterState `json:"filter"`
	Sort    entity.SortState   `json:"sort"`
	Loading bool               `json:"loading"`
	Error   *ErrorState        `json:"error"`
}

// Session mediates create, update, delete and import intents and keeps the
// resulting state. It is safe for concurrent use; the lock guards the in-memory
// state only and is never held while the store is accessed.
type Session struct {
	list     *transaction.ListTransactionsUseCase
	create   *transaction.CreateTransactionUseCase
	update   *transaction.UpdateTransactionUseCase
	remove   *transaction.DeleteTransactionUseCase
	importer *datatransfer.ImportTransactionsUseCase
	clock    adapter.Clock
	locale   language.Tag

	mu           sync.RWMutex
	transactions []entity.Transaction
	filter       entity.FilterState
	sort         entity.SortState
	inFlight     int
	lastErr      *ErrorState
}

// New creates a session with the default filter and sort state and an empty list.
func New(
	list *transaction.ListTransactionsUseCase,
	create *transaction.CreateTransactionUseCase,
	update *transaction.UpdateTransactionUseCase,
	remove *transaction.DeleteTransactionUseCase,
	importer *datatransfer.ImportTransactionsUseCase,
	clock adapter.Clock,
	locale language.Tag,
) *Session {
	return &Session{
		list:         list,
		create:       create,
		update:       update,
		remove:       remove,
		importer:     importer,
		clock:        clock,
		locale:       locale,
		transactions: []entity.Transaction{},
		filter:       entity.DefaultFilterState(),
		sort:         entity.DefaultSortState(),
	}
}

// Load replaces the in-memory list with the persisted collection.
func (s *Session) Load(ctx context.Context) error {
	s.beginLoad()
	defer s.endLoad()

	output, err := s.list.Execute(ctx, transaction.ListTransactionsInput{})
	if err != nil {
		s.fail(ctx, "load", err)
		return err
	}

	s.mu.Lock()
	s.transactions = output.Transactions
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Create records a new transaction and prepends it to the list.
func (s *Session) Create(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	output, err := s.create.Execute(context.WithoutCancel(ctx), transaction.CreateTransactionInput{Transaction: input})
	if err != nil {
		s.fail(ctx, "create", err)
		return nil, err
	}

	s.mu.Lock()
	s.transactions = append([]entity.Transaction{output.Transaction}, s.transactions...)
	s.lastErr = nil
	s.mu.Unlock()
	return &output.Transaction, nil
}

// Update applies a patch and swaps the updated record into the list.
func (s *Session) Update(ctx context.Context, id string, patch entity.TransactionPatch) (*entity.Transaction, error) {
	output, err := s.update.Execute(context.WithoutCancel(ctx), transaction.UpdateTransactionInput{ID: id, Patch: patch})
	if err != nil {
		s.fail(ctx, "update", err)
		return nil, err
	}

	s.mu.Lock()
	updated := slices.Clone(s.transactions)
	if idx := entity.IndexOfTransaction(updated, id); idx >= 0 {
		updated[idx] = output.Transaction
	} else {
		updated = append([]entity.Transaction{output.Transaction}, updated...)
	}
	s.transactions = updated
	s.lastErr = nil
	s.mu.Unlock()
	return &output.Transaction, nil
}

// Delete removes a transaction from the store and from the list.
func (s *Session) Delete(ctx context.Context, id string) error {
	if _, err := s.remove.Execute(context.WithoutCancel(ctx), transaction.DeleteTransactionInput{ID: id}); err != nil {
		s.fail(ctx, "delete", err)
		return err
	}

	s.mu.Lock()
	s.transactions = slices.DeleteFunc(slices.Clone(s.transactions), func(t entity.Transaction) bool {
		return t.ID == id
	})
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Import applies validated transactions and reloads the list from the store.
func (s *Session) Import(
	ctx context.Context,
	transactions []entity.Transaction,
	mode entity.ImportMode,
) (*datatransfer.ImportTransactionsOutput, error) {
	output, err := s.importer.Execute(context.WithoutCancel(ctx), datatransfer.ImportTransactionsInput{
		Transactions: transactions,
		Mode:         mode,
	})
	if err != nil {
		s.fail(ctx, "import", err)
		return nil, err
	}

	if err := s.Load(ctx); err != nil {
		return output, err
	}
	return output, nil
}

// SetFilter replaces the filter state.
func (s *Session) SetFilter(filter entity.FilterState) error {
	if filter.Type == "" {
		filter.Type = entity.FilterTypeAll
	}
	if filter.Category == "" {
		filter.Category = entity.CategoryAll
	}
	if !filter.Type.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidFilter,
			"type",
			"type must be 'all', 'income' or 'expense'",
		)
	}

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return nil
}

// SetSort replaces the sort state.
func (s *Session) SetSort(sort entity.SortState) error {
	if !sort.By.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidSort,
			"by",
			"sort field must be 'date', 'amount', 'category' or 'description'",
		)
	}
	if !sort.Order.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidSort,
			"order",
			"sort order must be 'asc' or 'desc'",
		)
	}

	s.mu.Lock()
	s.sort = sort
	s.mu.Unlock()
	return nil
}

// ClearError empties the error slot.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// Snapshot returns the current state. The view is filtered first, then sorted.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	transactions := s.transactions
	filter := s.filter
	sort := s.sort
	loading := s.inFlight > 0
	var lastErr *ErrorState
	if s.lastErr != nil {
		copied := *s.lastErr
		lastErr = &copied
	}
	s.mu.RUnlock()

	// The list is never mutated in place, so it can be read without the lock.
	view := dashboard.SortTransactions(dashboard.FilterTransactions(transactions, filter), sort, s.locale)

	return Snapshot{
		Transactions: view,
		Stats:        dashboard.ComputeStats(transactions, s.clock.Now()),
		Filter:       filter,
		Sort:         sort,
		Loading:      loading,
		Error:        lastErr,
	}
}

// beginLoad and endLoad count overlapping loads; the flag clears with the last one.
func (s *Session) beginLoad() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
}

func (s *Session) endLoad() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

// fail records the error in the slot and leaves the list untouched.
func (s *Session) fail(ctx context.Context, intent string, err error) {
	state := &ErrorState{
		Message:   err.Error(),
		Retryable: domainerror.IsRetryable(err),
	}
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		state.Message = txnErr.Message
		state.Code = string(txnErr.Code)
	}

	slog.WarnContext(ctx, "Session intent failed", "intent", intent, "error", err)

	s.mu.Lock()
	s.lastErr = state
	s.mu.Unlock()
}
