// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// TransactionStatus represents the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// IsValid reports whether the status is one of the known values.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusPending, TransactionStatusFailed:
		return true
	}
	return false
}

// TypeFromAmount derives the transaction type from the sign of the amount.
// Zero counts as income.
func TypeFromAmount(amount decimal.Decimal) TransactionType {
	if amount.Sign() >= 0 {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

// Transaction represents a stored, fully populated financial transaction.
// Amount is negative for expenses and positive for income.
type Transaction struct {
	ID          string            `json:"id"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Date        Date              `json:"date"`
	Status      TransactionStatus `json:"status"`
	Type        TransactionType   `json:"type"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// MarshalJSON writes the amount as a JSON number instead of decimal's quoted string.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{
		plain:  plain(t),
		Amount: json.Number(t.Amount.String()),
	})
}

// EffectiveType returns the stored type, or the sign-derived type for records
// that predate the type field.
func (t Transaction) EffectiveType() TransactionType {
	if t.Type.IsValid() {
		return t.Type
	}
	return TypeFromAmount(t.Amount)
}

// TransactionInput is the raw, pre-validation payload of a create intent.
// Nil fields were not supplied by the caller.
type TransactionInput struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *string
	Status      *TransactionStatus
	Type        *TransactionType
}

// TransactionPatch is the raw payload of an update intent. Nil fields are left unchanged.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *string
	Status      *TransactionStatus
	Type        *TransactionType
}

// IsEmpty reports whether the patch carries no field at all.
func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.Category == nil &&
		p.Date == nil && p.Status == nil && p.Type == nil
}

// IndexOfTransaction returns the position of the transaction with the given id, or -1.
func IndexOfTransaction(transactions []Transaction, id string) int {
	for i := range transactions {
		if transactions[i].ID == id {
			return i
		}
	}
	return -1
}
