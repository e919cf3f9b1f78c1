// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/application/usecase/category"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{listUseCase: listUseCase}
}

// List handles GET /categories requests.
// startDate and endDate bound the per-category statistics.
func (c *CategoryController) List(ctx *gin.Context) {
	var (
		input category.ListCategoriesInput
		ok    bool
	)
	if input.StartDate, ok = queryDate(ctx, "startDate"); !ok {
		return
	}
	if input.EndDate, ok = queryDate(ctx, "endDate"); !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}
