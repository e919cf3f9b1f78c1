package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

func newExportCommand(open Opener) *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole collection to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatJSON && format != formatXLSX {
				return fmt.Errorf("unknown format %q (expected %s or %s)", format, formatJSON, formatXLSX)
			}
			return withApp(cmd, open, func(ctx context.Context, app *App, out io.Writer) error {
				return runExport(ctx, app, out, format, outPath)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "json or xlsx")
	cmd.Flags().StringVar(&outPath, "out", "", "destination file (default zfinance-export-<date>.<format>)")
	return cmd
}

func runExport(ctx context.Context, app *App, out io.Writer, format, outPath string) error {
	if outPath == "" {
		outPath = datatransfer.ExportFilename(app.Clock.Now(), format)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	count, err := writeExport(ctx, app, file, format)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(outPath)
		return err
	}

	_, err = fmt.Fprintf(out, "Exported %d transactions to %s\n", count, outPath)
	return err
}

func writeExport(ctx context.Context, app *App, w io.Writer, format string) (int, error) {
	if format == formatXLSX {
		output, err := app.ExportSpreadsheet.Execute(ctx, datatransfer.ExportSpreadsheetInput{Writer: w})
		if err != nil {
			return 0, err
		}
		return output.Count, nil
	}

	output, err := app.ExportJSON.Execute(ctx)
	if err != nil {
		return 0, err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output.Envelope); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}
	return output.Envelope.Count, nil
}
