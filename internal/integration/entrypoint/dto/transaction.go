// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// TransactionRequest represents the request body for transaction creation and update.
// Absent fields decode to nil: on create they take their defaults, on update they are
// left unchanged. The amount may be sent as a JSON number or a numeric string.
type TransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date"`
	Status      *string          `json:"status"`
	Type        *string          `json:"type"`
}

// ToInput converts the request into a create payload.
func (r TransactionRequest) ToInput() entity.TransactionInput {
	return entity.TransactionInput{
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        r.Date,
		Status:      statusPtr(r.Status),
		Type:        typePtr(r.Type),
	}
}

// ToPatch converts the request into an update payload.
func (r TransactionRequest) ToPatch() entity.TransactionPatch {
	return entity.TransactionPatch{
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        r.Date,
		Status:      statusPtr(r.Status),
		Type:        typePtr(r.Type),
	}
}

func statusPtr(s *string) *entity.TransactionStatus {
	if s == nil {
		return nil
	}
	status := entity.TransactionStatus(*s)
	return &status
}

func typePtr(s *string) *entity.TransactionType {
	if s == nil {
		return nil
	}
	t := entity.TransactionType(*s)
	return &t
}

// BulkDeleteTransactionsRequest represents the request body for bulk transaction deletion.
type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkCategorizeTransactionsRequest represents the request body for bulk transaction categorization.
type BulkCategorizeTransactionsRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1"`
	Category string   `json:"category" binding:"required"`
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Transaction entity.Transaction `json:"transaction"`
}

// TransactionListResponse represents a page of transactions.
type TransactionListResponse struct {
	Transactions []entity.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Limit        int                  `json:"limit,omitempty"`
	Offset       int                  `json:"offset,omitempty"`
}

// ToTransactionListResponse converts the list use case output into a response.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput, input transaction.ListTransactionsInput) TransactionListResponse {
	transactions := output.Transactions
	if transactions == nil {
		transactions = []entity.Transaction{}
	}
	return TransactionListResponse{
		Transactions: transactions,
		Total:        output.Total,
		Limit:        input.Limit,
		Offset:       input.Offset,
	}
}

// BulkDeleteTransactionsResponse represents the response for bulk deletion.
type BulkDeleteTransactionsResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// BulkCategorizeTransactionsResponse represents the response for bulk categorization.
type BulkCategorizeTransactionsResponse struct {
	UpdatedCount int `json:"updatedCount"`
}
