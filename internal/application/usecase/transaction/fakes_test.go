package transaction

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// fakeStore keeps the collection in memory and can be told to fail.
type fakeStore struct {
	transactions []entity.Transaction
	loadErr      error
	saveErr      error
	saves        int
}

func (s *fakeStore) Load(context.Context) ([]entity.Transaction, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return slices.Clone(s.transactions), nil
}

func (s *fakeStore) Save(_ context.Context, transactions []entity.Transaction) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.transactions = slices.Clone(transactions)
	return nil
}

// fakeLegacyStore is a fakeStore that can be removed.
type fakeLegacyStore struct {
	fakeStore
	removed bool
}

func (s *fakeLegacyStore) Remove(context.Context) error {
	s.removed = true
	s.transactions = nil
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

type sequentialIDs struct{ n int }

func (g *sequentialIDs) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

func ptr[T any](v T) *T { return &v }

func amountPtr(s string) *decimal.Decimal {
	return ptr(decimal.RequireFromString(s))
}

func stored(id, amount, date string) entity.Transaction {
	a := decimal.RequireFromString(amount)
	d := entity.MustParseDate(date)
	return entity.Transaction{
		ID:          id,
		Amount:      a,
		Description: "desc " + id,
		Category:    "Autres",
		Date:        d,
		Status:      entity.TransactionStatusCompleted,
		Type:        entity.TypeFromAmount(a),
		CreatedAt:   d.Time(),
		UpdatedAt:   d.Time(),
	}
}
