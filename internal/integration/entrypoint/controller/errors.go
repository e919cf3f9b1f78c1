// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		response := dto.ErrorResponse{
			Error:     txnErr.Message,
			Code:      string(txnErr.Code),
			Retryable: domainerror.IsRetryable(err),
		}
		if txnErr.Field != "" {
			response.Details = map[string]string{"field": txnErr.Field}
		}
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), response)
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Unhandled error", "path", ctx.FullPath(), "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeMissingDescription,
		domainerror.ErrCodeMissingCategory,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionStatus,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidFilter,
		domainerror.ErrCodeInvalidSort,
		domainerror.ErrCodeInvalidImportData,
		domainerror.ErrCodeEmptyTransactionIDs,
		domainerror.ErrCodeMalformedRequest,
		domainerror.ErrCodeInvalidImportMode:
		return http.StatusBadRequest
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeStorageUnavailable,
		domainerror.ErrCodeStorageWriteFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// badRequest writes a malformed request response.
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeMalformedRequest),
	})
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(ctx *gin.Context, name string) (entity.Date, bool) {
	value := ctx.Query(name)
	if value == "" {
		return entity.Date{}, true
	}
	d, err := entity.ParseDate(value)
	if err != nil {
		badRequest(ctx, "Invalid "+name+" (expected format: YYYY-MM-DD)")
		return entity.Date{}, false
	}
	return d, true
}

// queryInt parses an optional integer query parameter.
func queryInt(ctx *gin.Context, name string) (int, bool) {
	value := ctx.Query(name)
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		badRequest(ctx, "Invalid "+name+": must be an integer")
		return 0, false
	}
	return n, true
}
