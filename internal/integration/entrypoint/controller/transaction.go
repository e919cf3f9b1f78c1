// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints. Single-record mutations go
// through the session so the shared view stays in sync; bulk operations run their
// use case and reload the session afterwards.
type TransactionController struct {
	session               *session.Session
	listUseCase           *transaction.ListTransactionsUseCase
	getUseCase            *transaction.GetTransactionUseCase
	bulkDeleteUseCase     *transaction.BulkDeleteTransactionsUseCase
	bulkCategorizeUseCase *transaction.BulkCategorizeTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	sess *session.Session,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	bulkDeleteUseCase *transaction.BulkDeleteTransactionsUseCase,
	bulkCategorizeUseCase *transaction.BulkCategorizeTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		session:               sess,
		listUseCase:           listUseCase,
		getUseCase:            getUseCase,
		bulkDeleteUseCase:     bulkDeleteUseCase,
		bulkCategorizeUseCase: bulkCategorizeUseCase,
	}
}

// List handles GET /transactions requests.
// Results are ordered newest first and can be narrowed by type, category and date range.
func (c *TransactionController) List(ctx *gin.Context) {
	input := transaction.ListTransactionsInput{
		Type:     entity.FilterType(ctx.DefaultQuery("type", string(entity.FilterTypeAll))),
		Category: ctx.Query("category"),
	}

	var ok bool
	if input.StartDate, ok = queryDate(ctx, "startDate"); !ok {
		return
	}
	if input.EndDate, ok = queryDate(ctx, "endDate"); !ok {
		return
	}
	if input.Limit, ok = queryInt(ctx, "limit"); !ok {
		return
	}
	if input.Offset, ok = queryInt(ctx, "offset"); !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output, input))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		ID: ctx.Param("id"),
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionResponse{Transaction: output.Transaction})
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	created, err := c.session.Create(ctx.Request.Context(), req.ToInput())
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransactionResponse{Transaction: *created})
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	updated, err := c.session.Update(ctx.Request.Context(), ctx.Param("id"), req.ToPatch())
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionResponse{Transaction: *updated})
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	if err := c.session.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// BulkDelete handles POST /transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "ids must be a non-empty list")
		return
	}

	output, err := c.bulkDeleteUseCase.Execute(ctx.Request.Context(), transaction.BulkDeleteTransactionsInput{
		IDs: req.IDs,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}
	c.refresh(ctx)

	ctx.JSON(http.StatusOK, dto.BulkDeleteTransactionsResponse{DeletedCount: output.DeletedCount})
}

// BulkCategorize handles POST /transactions/bulk-categorize requests.
func (c *TransactionController) BulkCategorize(ctx *gin.Context) {
	var req dto.BulkCategorizeTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "ids and category are required")
		return
	}

	output, err := c.bulkCategorizeUseCase.Execute(ctx.Request.Context(), transaction.BulkCategorizeTransactionsInput{
		IDs:      req.IDs,
		Category: req.Category,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}
	c.refresh(ctx)

	ctx.JSON(http.StatusOK, dto.BulkCategorizeTransactionsResponse{UpdatedCount: output.UpdatedCount})
}

// refresh reloads the session after a bulk write. The write already succeeded, so a
// failed reload only lands in the session error slot.
func (c *TransactionController) refresh(ctx *gin.Context) {
	_ = c.session.Load(ctx.Request.Context())
}
