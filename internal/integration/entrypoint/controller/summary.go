// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

// SummaryController handles dashboard summary endpoints.
type SummaryController struct {
	getSummaryUseCase   *dashboard.GetSummaryUseCase
	getDataRangeUseCase *dashboard.GetDataRangeUseCase
	formatter           adapter.AmountFormatter
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	getDataRangeUseCase *dashboard.GetDataRangeUseCase,
	formatter adapter.AmountFormatter,
) *SummaryController {
	return &SummaryController{
		getSummaryUseCase:   getSummaryUseCase,
		getDataRangeUseCase: getDataRangeUseCase,
		formatter:           formatter,
	}
}

// Get handles GET /summary requests.
// The optional date query parameter (YYYY-MM-DD) selects the current month.
func (c *SummaryController) Get(ctx *gin.Context) {
	date, ok := queryDate(ctx, "date")
	if !ok {
		return
	}

	input := dashboard.GetSummaryInput{}
	if !date.IsZero() {
		reference := date.Time()
		input.ReferenceDate = &reference
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	response, err := dto.ToSummaryResponse(output, c.formatter)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetDataRange handles GET /summary/range requests.
func (c *SummaryController) GetDataRange(ctx *gin.Context) {
	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}
