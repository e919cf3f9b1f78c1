// Package main is the entry point for the zFinance operator CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/zfinance/config"
	"github.com/finance-tracker/zfinance/internal/infra/dependency"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/cli"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	// Logs go to stderr so command output stays clean.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	root := cli.NewRootCommand(func(ctx context.Context) (*cli.App, func() error, error) {
		injector, err := dependency.NewApplication(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		app := &cli.App{
			Session:           injector.Session,
			GetSummary:        injector.UseCases.GetSummary,
			ExportJSON:        injector.UseCases.ExportTransactions,
			ExportSpreadsheet: injector.UseCases.ExportSpreadsheet,
			Formatter:         injector.Formatter,
			Clock:             injector.Clock,
		}
		return app, injector.Storage.Close, nil
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
