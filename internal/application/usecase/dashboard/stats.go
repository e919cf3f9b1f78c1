package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// ComputeStats derives balance and monthly income/expense totals from the whole collection.
// Income and expense are bucketed by the transaction type; expense totals are absolute values.
// The current month is the calendar month containing referenceDate.
func ComputeStats(transactions []entity.Transaction, referenceDate time.Time) entity.Stats {
	current := GetMonthBounds(referenceDate)
	previous := GetPreviousMonthBounds(referenceDate)

	stats := entity.Stats{
		Balance: decimal.Zero,
		Income: entity.PeriodTotals{
			Total:        decimal.Zero,
			CurrentMonth: decimal.Zero,
			LastMonth:    decimal.Zero,
		},
		Expense: entity.PeriodTotals{
			Total:        decimal.Zero,
			CurrentMonth: decimal.Zero,
			LastMonth:    decimal.Zero,
		},
		Count: len(transactions),
	}

	for _, t := range transactions {
		stats.Balance = stats.Balance.Add(t.Amount)

		bucket := &stats.Income
		value := t.Amount
		if t.EffectiveType() == entity.TransactionTypeExpense {
			bucket = &stats.Expense
			value = t.Amount.Abs()
		}

		bucket.Total = bucket.Total.Add(value)
		if current.Contains(t.Date) {
			bucket.CurrentMonth = bucket.CurrentMonth.Add(value)
		}
		if previous.Contains(t.Date) {
			bucket.LastMonth = bucket.LastMonth.Add(value)
		}
	}

	stats.CurrentMonthBalance = stats.Income.CurrentMonth.Sub(stats.Expense.CurrentMonth)
	return stats
}
