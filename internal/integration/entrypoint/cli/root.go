// Package cli implements the operator command line: listing, statistics, export and
// import against the configured store.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
)

// App is what the commands need from the wired application.
type App struct {
	Session           *session.Session
	GetSummary        *dashboard.GetSummaryUseCase
	ExportJSON        *datatransfer.ExportTransactionsUseCase
	ExportSpreadsheet *datatransfer.ExportSpreadsheetUseCase
	Formatter         adapter.AmountFormatter
	Clock             adapter.Clock
}

// Opener builds the application for one command run. The returned function releases it.
type Opener func(ctx context.Context) (*App, func() error, error)

// NewRootCommand creates the zfinance command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "zfinance",
		Short:         "Inspect and move zFinance transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCommand(open),
		newStatsCommand(open),
		newExportCommand(open),
		newImportCommand(open),
	)
	return root
}

// withApp opens the application, runs fn and releases the application.
func withApp(cmd *cobra.Command, open Opener, fn func(ctx context.Context, app *App, out io.Writer) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, release, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := release(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(ctx, app, cmd.OutOrStdout())
}
