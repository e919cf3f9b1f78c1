// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// DateStyle selects how much of a date the formatter renders.
type DateStyle string

const (
	DateStyleShort DateStyle = "short"
	DateStyleLong  DateStyle = "long"
	DateStyleDay   DateStyle = "day"
	DateStyleMonth DateStyle = "month"
)

// AmountFormatter renders amounts and dates for display.
type AmountFormatter interface {
	// FormatAmount renders the amount in the configured currency.
	FormatAmount(amount decimal.Decimal) (string, error)

	// FormatDate renders the date in the configured locale.
	FormatDate(date entity.Date, style DateStyle) (string, error)

	// Currency returns the configured ISO currency code.
	Currency() string
}
