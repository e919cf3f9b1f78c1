package dashboard

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// SortTransactions returns a sorted copy of the transactions. Text fields are compared
// with the collation rules of the given locale; dates and amounts are compared
// chronologically and numerically. The sort is stable in both directions: equal keys keep
// their original relative order.
func SortTransactions(transactions []entity.Transaction, state entity.SortState, locale language.Tag) []entity.Transaction {
	sorted := slices.Clone(transactions)
	if sorted == nil {
		sorted = []entity.Transaction{}
	}

	compare := comparatorFor(state.By, locale)
	if state.Order == entity.SortDesc {
		ascending := compare
		compare = func(a, b entity.Transaction) int { return -ascending(a, b) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparatorFor(field entity.SortField, locale language.Tag) func(a, b entity.Transaction) int {
	switch field {
	case entity.SortByAmount:
		return func(a, b entity.Transaction) int {
			return a.Amount.Cmp(b.Amount)
		}
	case entity.SortByCategory:
		// Collators keep internal buffers, so each sort gets its own.
		c := collate.New(locale)
		return func(a, b entity.Transaction) int {
			return c.CompareString(a.Category, b.Category)
		}
	case entity.SortByDescription:
		c := collate.New(locale)
		return func(a, b entity.Transaction) int {
			return c.CompareString(a.Description, b.Description)
		}
	default:
		return func(a, b entity.Transaction) int {
			return a.Date.Compare(b.Date)
		}
	}
}

// NewestFirst orders transactions by date descending, keeping stored order for equal dates.
func NewestFirst(transactions []entity.Transaction) []entity.Transaction {
	return SortTransactions(transactions, entity.DefaultSortState(), language.Und)
}
