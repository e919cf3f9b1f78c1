package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Evolution compares a monthly total with the previous month.
type Evolution struct {
	Percent  decimal.Decimal
	Amount   decimal.Decimal
	IsBetter bool
}

// IsFlat reports whether there is nothing to show (no change in either unit).
func (e Evolution) IsFlat() bool {
	return e.Percent.IsZero() && e.Amount.IsZero()
}

// PercentEvolution returns current*100/previous - 100, or zero when previous is zero.
func PercentEvolution(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Mul(hundred).Div(previous).Sub(hundred)
}

// AmountEvolution returns current - previous.
func AmountEvolution(current, previous decimal.Decimal) decimal.Decimal {
	return current.Sub(previous)
}

// IncomeEvolution compares this month's income with last month's. More income is better.
func IncomeEvolution(stats entity.Stats) Evolution {
	amount := AmountEvolution(stats.Income.CurrentMonth, stats.Income.LastMonth)
	return Evolution{
		Percent:  PercentEvolution(stats.Income.CurrentMonth, stats.Income.LastMonth),
		Amount:   amount,
		IsBetter: amount.Sign() >= 0,
	}
}

// ExpenseEvolution compares this month's expenses with last month's. Spending less is better.
func ExpenseEvolution(stats entity.Stats) Evolution {
	amount := AmountEvolution(stats.Expense.CurrentMonth, stats.Expense.LastMonth)
	return Evolution{
		Percent:  PercentEvolution(stats.Expense.CurrentMonth, stats.Expense.LastMonth),
		Amount:   amount,
		IsBetter: amount.Sign() <= 0,
	}
}
