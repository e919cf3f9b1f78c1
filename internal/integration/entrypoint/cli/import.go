package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// ErrInvalidImportFile is returned when the file does not pass validation.
var ErrInvalidImportFile = errors.New("import file is invalid")

func newImportCommand(open Opener) *cobra.Command {
	var mode string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate an export file and apply it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			return withApp(cmd, open, func(ctx context.Context, app *App, out io.Writer) error {
				return runImport(ctx, app, out, raw, entity.ImportMode(mode), dryRun)
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(entity.ImportModeMerge), "merge or replace")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only")
	return cmd
}

func runImport(ctx context.Context, app *App, out io.Writer, raw []byte, mode entity.ImportMode, dryRun bool) error {
	result := datatransfer.ValidateImport(raw)

	for _, w := range result.Warnings {
		fmt.Fprintln(out, text.FgYellow.Sprint("warning: "+w))
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintln(out, text.FgRed.Sprint(e))
		}
		return ErrInvalidImportFile
	}

	fmt.Fprintf(out, "%d transactions are valid\n", result.Stats.Valid)
	if dryRun {
		return nil
	}

	output, err := app.Session.Import(ctx, result.Data.Transactions, mode)
	if err != nil && output == nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Imported %d, skipped %d (%s)\n", output.Imported, output.Skipped, mode)
	return err
}
