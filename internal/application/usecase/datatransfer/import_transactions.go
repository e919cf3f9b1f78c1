package datatransfer

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// ImportTransactionsInput represents the input for applying an import.
type ImportTransactionsInput struct {
	Transactions []entity.Transaction
	Mode         entity.ImportMode
}

// ImportTransactionsOutput represents the output of an import.
type ImportTransactionsOutput struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportTransactionsUseCase applies already validated transactions to the store.
type ImportTransactionsUseCase struct {
	store adapter.TransactionStore
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(store adapter.TransactionStore) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{store: store}
}

// Execute replaces the stored collection or appends the records whose id is new,
// depending on the mode.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	var (
		result *ImportTransactionsOutput
		err    error
	)

	switch input.Mode {
	case entity.ImportModeReplace:
		result, err = uc.replace(ctx, input.Transactions)
	case entity.ImportModeMerge:
		result, err = uc.merge(ctx, input.Transactions)
	default:
		return nil, domainerror.NewInvalidModeError(string(input.Mode))
	}
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Transactions imported",
		"mode", input.Mode,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)

	return result, nil
}

func (uc *ImportTransactionsUseCase) replace(ctx context.Context, incoming []entity.Transaction) (*ImportTransactionsOutput, error) {
	if incoming == nil {
		incoming = []entity.Transaction{}
	}
	if err := uc.store.Save(ctx, incoming); err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageWriteFailed, "failed to save transactions", err)
	}
	return &ImportTransactionsOutput{Imported: len(incoming)}, nil
}

// merge skips records whose id is already stored or already seen earlier in the batch.
func (uc *ImportTransactionsUseCase) merge(ctx context.Context, incoming []entity.Transaction) (*ImportTransactionsOutput, error) {
	existing, err := uc.store.Load(ctx)
	if err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to load transactions", err)
	}

	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
	}

	result := &ImportTransactionsOutput{}
	merged := make([]entity.Transaction, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	for _, t := range incoming {
		if _, dup := seen[t.ID]; dup {
			result.Skipped++
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
		result.Imported++
	}

	if err := uc.store.Save(ctx, merged); err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageWriteFailed, "failed to save transactions", err)
	}
	return result, nil
}
