// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// MigrateLegacyDataOutput reports what the startup migration changed.
type MigrateLegacyDataOutput struct {
	// Merged counts records pulled in from the legacy store.
	Merged int
	// Backfilled counts records that were missing at least one field.
	Backfilled int
	// Saved is true when the collection was written back.
	Saved bool
	// LegacyKept is true when the legacy collection could not be decoded and was
	// left in place.
	LegacyKept bool
}

// MigrateLegacyDataUseCase brings the persisted collection up to the current shape:
// records left under the legacy key are merged in, and records written before a field
// existed get that field filled in.
type MigrateLegacyDataUseCase struct {
	store  adapter.TransactionStore
	legacy adapter.LegacyTransactionStore
	clock  adapter.Clock
	ids    adapter.IDGenerator
}

// NewMigrateLegacyDataUseCase creates a new MigrateLegacyDataUseCase instance.
// legacy may be nil when the backend has no legacy key.
func NewMigrateLegacyDataUseCase(
	store adapter.TransactionStore,
	legacy adapter.LegacyTransactionStore,
	clock adapter.Clock,
	ids adapter.IDGenerator,
) *MigrateLegacyDataUseCase {
	return &MigrateLegacyDataUseCase{
		store:  store,
		legacy: legacy,
		clock:  clock,
		ids:    ids,
	}
}

// Execute runs the migration. The collection is saved only if something changed, and
// the legacy collection is removed only after that save succeeded. Legacy content that
// cannot be decoded is neither merged nor removed.
func (uc *MigrateLegacyDataUseCase) Execute(ctx context.Context) (*MigrateLegacyDataOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	output := &MigrateLegacyDataOutput{}

	if uc.legacy != nil {
		old, err := uc.legacy.Load(ctx)
		switch {
		case errors.Is(err, domainerror.ErrCorruptData):
			slog.WarnContext(ctx, "Legacy transactions could not be decoded, leaving them in place", "error", err)
			output.LegacyKept = true
		case err != nil:
			return nil, loadError(err)
		default:
			transactions, output.Merged = mergeByID(transactions, old)
		}
	}

	now := uc.clock.Now().UTC()
	for i := range transactions {
		filled, err := uc.backfill(&transactions[i], now)
		if err != nil {
			return nil, err
		}
		if filled {
			output.Backfilled++
		}
	}

	if output.Merged > 0 || output.Backfilled > 0 {
		if err := uc.store.Save(ctx, transactions); err != nil {
			return nil, saveError(err)
		}
		output.Saved = true
	}

	if uc.legacy != nil && !output.LegacyKept {
		if err := uc.legacy.Remove(ctx); err != nil {
			return nil, saveError(err)
		}
	}

	if output.Saved {
		slog.InfoContext(ctx, "Data migration completed",
			"merged", output.Merged,
			"backfilled", output.Backfilled,
		)
	}

	return output, nil
}

// mergeByID appends the legacy records whose id is not already present. Records
// without an id are always appended; backfill gives them one.
func mergeByID(current, legacy []entity.Transaction) ([]entity.Transaction, int) {
	existing := make(map[string]struct{}, len(current))
	for _, t := range current {
		if t.ID != "" {
			existing[t.ID] = struct{}{}
		}
	}

	merged := current
	count := 0
	for _, t := range legacy {
		if _, ok := existing[t.ID]; ok {
			continue
		}
		merged = append(merged, t)
		count++
	}
	return merged, count
}

// backfill fills the fields older records may lack and reports whether it changed anything.
func (uc *MigrateLegacyDataUseCase) backfill(t *entity.Transaction, now time.Time) (bool, error) {
	changed := false

	if t.ID == "" {
		id, err := uc.ids.NewID()
		if err != nil {
			return false, fmt.Errorf("failed to generate transaction id: %w", err)
		}
		t.ID = id
		changed = true
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
		if !t.Date.IsZero() {
			t.CreatedAt = t.Date.Time()
		}
		changed = true
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
		changed = true
	}
	if !t.Status.IsValid() {
		t.Status = entity.TransactionStatusCompleted
		changed = true
	}
	if !t.Type.IsValid() {
		t.Type = entity.TypeFromAmount(t.Amount)
		changed = true
	}

	return changed, nil
}
