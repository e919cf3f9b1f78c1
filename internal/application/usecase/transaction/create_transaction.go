// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Transaction entity.TransactionInput
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	store adapter.TransactionStore
	clock adapter.Clock
	ids   adapter.IDGenerator
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	store adapter.TransactionStore,
	clock adapter.Clock,
	ids adapter.IDGenerator,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		store: store,
		clock: clock,
		ids:   ids,
	}
}

// Execute validates the input, fills in the defaults and prepends the new
// transaction to the stored collection.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction, err := uc.build(input.Transaction)
	if err != nil {
		return nil, err
	}

	existing, err := uc.store.Load(ctx)
	if err != nil {
		return nil, loadError(err)
	}

	updated := make([]entity.Transaction, 0, len(existing)+1)
	updated = append(updated, transaction)
	updated = append(updated, existing...)

	if err := uc.store.Save(ctx, updated); err != nil {
		return nil, saveError(err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", transaction.ID,
		"amount", transaction.Amount.String(),
		"category", transaction.Category,
	)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// build turns a raw input into a complete record. Fields are checked in the order
// amount, description, category, date, status, type.
func (uc *CreateTransactionUseCase) build(input entity.TransactionInput) (entity.Transaction, error) {
	amount, err := validateAmount(input.Amount)
	if err != nil {
		return entity.Transaction{}, err
	}

	description, err := validateDescription(input.Description)
	if err != nil {
		return entity.Transaction{}, err
	}

	category, err := validateCategory(input.Category)
	if err != nil {
		return entity.Transaction{}, err
	}

	now := uc.clock.Now()

	date := entity.DateOf(now)
	if input.Date != nil && *input.Date != "" {
		if date, err = validateDate(*input.Date); err != nil {
			return entity.Transaction{}, err
		}
	}

	status := entity.TransactionStatusCompleted
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return entity.Transaction{}, err
		}
		status = *input.Status
	}

	transactionType := entity.TypeFromAmount(amount)
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return entity.Transaction{}, err
		}
		transactionType = *input.Type
	}

	id, err := uc.ids.NewID()
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	stamp := now.UTC()
	return entity.Transaction{
		ID:          id,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
		Status:      status,
		Type:        transactionType,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}, nil
}
