package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

type listOptions struct {
	filterType string
	category   string
	search     string
	from       string
	to         string
	sortBy     string
	order      string
	limit      int
}

func newListCommand(open Opener) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with the session filter and sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *App, out io.Writer) error {
				return runList(ctx, app, out, opts)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.filterType, "type", string(entity.FilterTypeAll), "all, income or expense")
	flags.StringVar(&opts.category, "category", entity.CategoryAll, "exact category, or all")
	flags.StringVar(&opts.search, "search", "", "case-insensitive text in description or category")
	flags.StringVar(&opts.from, "from", "", "first date (YYYY-MM-DD)")
	flags.StringVar(&opts.to, "to", "", "last date (YYYY-MM-DD)")
	flags.StringVar(&opts.sortBy, "sort", string(entity.SortByDate), "date, amount, category or description")
	flags.StringVar(&opts.order, "order", string(entity.SortDesc), "asc or desc")
	flags.IntVar(&opts.limit, "limit", 0, "maximum rows to print (0 prints all)")
	return cmd
}

func runList(ctx context.Context, app *App, out io.Writer, opts listOptions) error {
	dateRange, err := parseRange(opts.from, opts.to)
	if err != nil {
		return err
	}

	if err := app.Session.SetFilter(entity.FilterState{
		Type:      entity.FilterType(opts.filterType),
		Category:  opts.category,
		Search:    opts.search,
		DateRange: dateRange,
	}); err != nil {
		return err
	}
	if err := app.Session.SetSort(entity.SortState{
		By:    entity.SortField(opts.sortBy),
		Order: entity.SortOrder(opts.order),
	}); err != nil {
		return err
	}
	if err := app.Session.Load(ctx); err != nil {
		return err
	}

	snapshot := app.Session.Snapshot()
	rows := snapshot.Transactions
	if opts.limit > 0 && len(rows) > opts.limit {
		rows = rows[:opts.limit]
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Date", "Description", "Category", "Status", "Amount"})

	for _, tx := range rows {
		formatted, err := app.Formatter.FormatAmount(tx.Amount)
		if err != nil {
			return err
		}
		amount := text.FgGreen.Sprint(formatted)
		if tx.Amount.Sign() < 0 {
			amount = text.FgRed.Sprint(formatted)
		}
		t.AppendRow(table.Row{tx.Date.String(), tx.Description, tx.Category, string(tx.Status), amount})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Shown"), text.Bold.Sprintf("%d / %d", len(rows), snapshot.Stats.Count)})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
	return nil
}

func parseRange(from, to string) (entity.DateRange, error) {
	var r entity.DateRange
	var err error
	if from != "" {
		if r.Start, err = entity.ParseDate(from); err != nil {
			return r, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if to != "" {
		if r.End, err = entity.ParseDate(to); err != nil {
			return r, fmt.Errorf("invalid --to: %w", err)
		}
	}
	return r, nil
}
