// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// FilterType selects transactions by the sign of their amount.
type FilterType string

const (
	FilterTypeAll     FilterType = "all"
	FilterTypeIncome  FilterType = "income"
	FilterTypeExpense FilterType = "expense"
)

// IsValid reports whether the filter type is one of the known values.
func (f FilterType) IsValid() bool {
	return f == FilterTypeAll || f == FilterTypeIncome || f == FilterTypeExpense
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// DateRange bounds a transaction date, inclusive on both ends. Zero bounds are open.
type DateRange struct {
	Start Date
	End   Date
}

// FilterState is the ephemeral filter applied to the transaction list.
type FilterState struct {
	Type      FilterType
	Category  string
	Search    string
	DateRange DateRange
}

// DefaultFilterState returns a filter that keeps every transaction.
func DefaultFilterState() FilterState {
	return FilterState{
		Type:     FilterTypeAll,
		Category: CategoryAll,
	}
}

// SortField is a field the transaction list can be sorted on.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByCategory    SortField = "category"
	SortByDescription SortField = "description"
)

// IsValid reports whether the sort field is one of the known values.
func (f SortField) IsValid() bool {
	switch f {
	case SortByDate, SortByAmount, SortByCategory, SortByDescription:
		return true
	}
	return false
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid reports whether the order is one of the known values.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// SortState holds the sort preference of the transaction list.
type SortState struct {
	By    SortField
	Order SortOrder
}

// DefaultSortState returns the default sort (date descending, newest first).
func DefaultSortState() SortState {
	return SortState{
		By:    SortByDate,
		Order: SortDesc,
	}
}

// PeriodTotals groups a total with its current and last month windows.
type PeriodTotals struct {
	Total        decimal.Decimal
	CurrentMonth decimal.Decimal
	LastMonth    decimal.Decimal
}

// Stats are the statistics derived from a transaction collection.
// Expense totals are absolute values.
type Stats struct {
	Balance             decimal.Decimal
	Income              PeriodTotals
	Expense             PeriodTotals
	Count               int
	CurrentMonthBalance decimal.Decimal
}

// LastMonthBalance returns income minus expense for the previous month.
func (s Stats) LastMonthBalance() decimal.Decimal {
	return s.Income.LastMonth.Sub(s.Expense.LastMonth)
}
