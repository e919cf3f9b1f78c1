package dependency

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/zfinance/config"
	"github.com/finance-tracker/zfinance/internal/integration/adapters"
)

// NewApplication opens the configured storage, wires the injector and migrates records
// left under the legacy key. The caller owns Storage and must close it.
func NewApplication(ctx context.Context, cfg *config.Config) (*Injector, error) {
	storage, err := NewStorage(cfg)
	if err != nil {
		return nil, err
	}

	injector, err := NewInjector(cfg, storage, adapters.NewSystemClock(), adapters.NewIDGenerator())
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	migrated, err := injector.UseCases.MigrateLegacyData.Execute(ctx)
	if err != nil {
		// Migration is retried on the next start; the current collection stays usable.
		slog.WarnContext(ctx, "Legacy data migration failed", "error", err)
	} else if migrated.Saved {
		slog.InfoContext(ctx, "Legacy data migrated",
			"merged", migrated.Merged,
			"backfilled", migrated.Backfilled,
		)
	}

	return injector, nil
}
