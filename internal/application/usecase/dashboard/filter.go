package dashboard

import (
	"strings"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// FilterTransactions returns the transactions matching every predicate of the filter,
// in their original order. The input slice is not modified.
func FilterTransactions(transactions []entity.Transaction, filter entity.FilterState) []entity.Transaction {
	search := strings.ToLower(filter.Search)

	result := make([]entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !matchesType(t, filter.Type) {
			continue
		}
		if !matchesCategory(t, filter.Category) {
			continue
		}
		if !matchesSearch(t, search) {
			continue
		}
		if !matchesDateRange(t, filter.DateRange) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// matchesType filters on the sign of the amount. Zero amounts are neither income nor expense.
func matchesType(t entity.Transaction, filterType entity.FilterType) bool {
	switch filterType {
	case entity.FilterTypeIncome:
		return t.Amount.Sign() > 0
	case entity.FilterTypeExpense:
		return t.Amount.Sign() < 0
	default:
		return true
	}
}

func matchesCategory(t entity.Transaction, category string) bool {
	if category == "" || category == entity.CategoryAll {
		return true
	}
	return t.Category == category
}

// matchesSearch expects an already lower-cased needle.
func matchesSearch(t entity.Transaction, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.Category), needle)
}

func matchesDateRange(t entity.Transaction, r entity.DateRange) bool {
	if !r.Start.IsZero() && t.Date.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.Date.After(r.End) {
		return false
	}
	return true
}
