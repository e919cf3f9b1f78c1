// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	ID    string
	Patch entity.TransactionPatch
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	store adapter.TransactionStore
	clock adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(store adapter.TransactionStore, clock adapter.Clock) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		store: store,
		clock: clock,
	}
}

// Execute merges the patch into the stored record, keeping its id, creation time and
// position in the collection.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	idx := entity.IndexOfTransaction(transactions, input.ID)
	if idx < 0 {
		return nil, domainerror.NewNotFoundError(input.ID)
	}

	merged, err := applyPatch(transactions[idx], input.Patch)
	if err != nil {
		return nil, err
	}
	merged.UpdatedAt = uc.clock.Now().UTC()

	updated := make([]entity.Transaction, len(transactions))
	copy(updated, transactions)
	updated[idx] = merged

	if err := uc.store.Save(ctx, updated); err != nil {
		return nil, saveError(err)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", merged.ID)

	return &UpdateTransactionOutput{Transaction: merged}, nil
}

// applyPatch validates each supplied field. The type is taken from the patch when
// present, otherwise the stored type is kept; records without a stored type get the
// type derived from the merged amount.
func applyPatch(current entity.Transaction, patch entity.TransactionPatch) (entity.Transaction, error) {
	if patch.Amount != nil {
		current.Amount = *patch.Amount
	}

	if patch.Description != nil {
		description, err := validateDescription(patch.Description)
		if err != nil {
			return entity.Transaction{}, err
		}
		current.Description = description
	}

	if patch.Category != nil {
		category, err := validateCategory(patch.Category)
		if err != nil {
			return entity.Transaction{}, err
		}
		current.Category = category
	}

	if patch.Date != nil {
		date, err := validateDate(*patch.Date)
		if err != nil {
			return entity.Transaction{}, err
		}
		current.Date = date
	}

	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return entity.Transaction{}, err
		}
		current.Status = *patch.Status
	}

	switch {
	case patch.Type != nil:
		if err := validateType(*patch.Type); err != nil {
			return entity.Transaction{}, err
		}
		current.Type = *patch.Type
	case !current.Type.IsValid():
		current.Type = entity.TypeFromAmount(current.Amount)
	}

	return current, nil
}
