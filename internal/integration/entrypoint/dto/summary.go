// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// amount writes a decimal as a JSON number.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// PeriodTotalsResponse represents a total with its monthly windows.
type PeriodTotalsResponse struct {
	Total        json.Number `json:"total"`
	CurrentMonth json.Number `json:"currentMonth"`
	LastMonth    json.Number `json:"lastMonth"`
}

// StatsResponse represents the statistics of a collection.
type StatsResponse struct {
	Balance             json.Number          `json:"balance"`
	Income              PeriodTotalsResponse `json:"income"`
	Expense             PeriodTotalsResponse `json:"expense"`
	Count               int                  `json:"count"`
	CurrentMonthBalance json.Number          `json:"currentMonthBalance"`
}

// ToStatsResponse converts stats into a response.
func ToStatsResponse(stats entity.Stats) StatsResponse {
	return StatsResponse{
		Balance:             amount(stats.Balance),
		Income:              toPeriodTotals(stats.Income),
		Expense:             toPeriodTotals(stats.Expense),
		Count:               stats.Count,
		CurrentMonthBalance: amount(stats.CurrentMonthBalance),
	}
}

func toPeriodTotals(p entity.PeriodTotals) PeriodTotalsResponse {
	return PeriodTotalsResponse{
		Total:        amount(p.Total),
		CurrentMonth: amount(p.CurrentMonth),
		LastMonth:    amount(p.LastMonth),
	}
}

// EvolutionResponse represents a month-over-month comparison.
type EvolutionResponse struct {
	Percent         json.Number `json:"percent"`
	Amount          json.Number `json:"amount"`
	IsBetter        bool        `json:"isBetter"`
	Flat            bool        `json:"flat"`
	FormattedAmount string      `json:"formattedAmount"`
}

// FormattedSummary holds the display strings of the summary.
type FormattedSummary struct {
	Balance             string `json:"balance"`
	IncomeCurrentMonth  string `json:"incomeCurrentMonth"`
	ExpenseCurrentMonth string `json:"expenseCurrentMonth"`
	CurrentMonthBalance string `json:"currentMonthBalance"`
	LastMonthBalance    string `json:"lastMonthBalance"`
	Month               string `json:"month"`
}

// SummaryResponse represents the monthly dashboard summary.
type SummaryResponse struct {
	ReferenceDate    entity.Date       `json:"referenceDate"`
	Currency         string            `json:"currency"`
	Stats            StatsResponse     `json:"stats"`
	IncomeEvolution  EvolutionResponse `json:"incomeEvolution"`
	ExpenseEvolution EvolutionResponse `json:"expenseEvolution"`
	LastMonthBalance json.Number       `json:"lastMonthBalance"`
	Formatted        FormattedSummary  `json:"formatted"`
}

// ToSummaryResponse converts the summary output into a response, rendering display
// strings with the formatter.
func ToSummaryResponse(output *dashboard.GetSummaryOutput, formatter adapter.AmountFormatter) (SummaryResponse, error) {
	stats := output.Stats
	reference := entity.DateOf(output.ReferenceDate)

	f := &formatted{formatter: formatter}
	response := SummaryResponse{
		ReferenceDate:    reference,
		Currency:         formatter.Currency(),
		Stats:            ToStatsResponse(stats),
		IncomeEvolution:  f.evolution(output.IncomeEvolution),
		ExpenseEvolution: f.evolution(output.ExpenseEvolution),
		LastMonthBalance: amount(output.LastMonthBalance),
		Formatted: FormattedSummary{
			Balance:             f.amount(stats.Balance),
			IncomeCurrentMonth:  f.amount(stats.Income.CurrentMonth),
			ExpenseCurrentMonth: f.amount(stats.Expense.CurrentMonth),
			CurrentMonthBalance: f.amount(stats.CurrentMonthBalance),
			LastMonthBalance:    f.amount(output.LastMonthBalance),
			Month:               f.date(reference, adapter.DateStyleMonth),
		},
	}
	if f.err != nil {
		return SummaryResponse{}, f.err
	}
	return response, nil
}

// formatted keeps the first formatting error so the conversion reads linearly.
type formatted struct {
	formatter adapter.AmountFormatter
	err       error
}

func (f *formatted) amount(d decimal.Decimal) string {
	if f.err != nil {
		return ""
	}
	s, err := f.formatter.FormatAmount(d)
	f.err = err
	return s
}

func (f *formatted) date(d entity.Date, style adapter.DateStyle) string {
	if f.err != nil {
		return ""
	}
	s, err := f.formatter.FormatDate(d, style)
	f.err = err
	return s
}

func (f *formatted) evolution(e dashboard.Evolution) EvolutionResponse {
	return EvolutionResponse{
		Percent:         amount(e.Percent.Round(1)),
		Amount:          amount(e.Amount),
		IsBetter:        e.IsBetter,
		Flat:            e.IsFlat(),
		FormattedAmount: f.amount(e.Amount),
	}
}

// DataRangeResponse represents the date span of the collection.
type DataRangeResponse struct {
	OldestDate        entity.Date `json:"oldestDate"`
	NewestDate        entity.Date `json:"newestDate"`
	TotalTransactions int         `json:"totalTransactions"`
	HasData           bool        `json:"hasData"`
}

// ToDataRangeResponse converts the data range output into a response.
func ToDataRangeResponse(output *dashboard.GetDataRangeOutput) DataRangeResponse {
	return DataRangeResponse{
		OldestDate:        output.OldestDate,
		NewestDate:        output.NewestDate,
		TotalTransactions: output.TotalTransactions,
		HasData:           output.HasData,
	}
}
