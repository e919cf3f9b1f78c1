package cli

import (
	"context"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

func newStatsCommand(open Opener) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the balance and the month-over-month summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *App, out io.Writer) error {
				return runStats(ctx, app, out, date)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "reference day of the current month (YYYY-MM-DD)")
	return cmd
}

func runStats(ctx context.Context, app *App, out io.Writer, date string) error {
	input := dashboard.GetSummaryInput{}
	if date != "" {
		d, err := entity.ParseDate(date)
		if err != nil {
			return err
		}
		reference := d.Time()
		input.ReferenceDate = &reference
	}

	summary, err := app.GetSummary.Execute(ctx, input)
	if err != nil {
		return err
	}

	month, err := app.Formatter.FormatDate(entity.DateOf(summary.ReferenceDate), adapter.DateStyleMonth)
	if err != nil {
		return err
	}

	f := app.Formatter
	stats := summary.Stats
	rows := []struct {
		label     string
		value     decimal.Decimal
		evolution *dashboard.Evolution
	}{
		{"Balance", stats.Balance, nil},
		{"Income (this month)", stats.Income.CurrentMonth, &summary.IncomeEvolution},
		{"Expense (this month)", stats.Expense.CurrentMonth, &summary.ExpenseEvolution},
		{"Balance (this month)", stats.CurrentMonthBalance, nil},
		{"Balance (last month)", summary.LastMonthBalance, nil},
		{"Income (all time)", stats.Income.Total, nil},
		{"Expense (all time)", stats.Expense.Total, nil},
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(month)
	t.AppendHeader(table.Row{"", "Amount", "vs last month"})

	for _, row := range rows {
		amount, err := f.FormatAmount(row.value)
		if err != nil {
			return err
		}
		change := ""
		if row.evolution != nil {
			if change, err = formatEvolution(f, *row.evolution); err != nil {
				return err
			}
		}
		t.AppendRow(table.Row{row.label, amount, change})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{text.Bold.Sprint("Transactions"), text.Bold.Sprint(stats.Count), ""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.Render()
	return nil
}

func formatEvolution(f adapter.AmountFormatter, e dashboard.Evolution) (string, error) {
	if e.IsFlat() {
		return text.FgHiBlack.Sprint("-"), nil
	}

	amount, err := f.FormatAmount(e.Amount)
	if err != nil {
		return "", err
	}
	if e.Amount.Sign() > 0 {
		amount = "+" + amount
	}

	s := amount + " (" + e.Percent.StringFixed(1) + "%)"
	if e.IsBetter {
		return text.FgGreen.Sprint(s), nil
	}
	return text.FgRed.Sprint(s), nil
}
