// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"

	"github.com/finance-tracker/zfinance/internal/application/usecase/category"
)

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	Name             string      `json:"name"`
	Suggested        bool        `json:"suggested"`
	TransactionCount int         `json:"transactionCount"`
	PeriodTotal      json.Number `json:"periodTotal"`
}

// CategoryListResponse represents the list of categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryListResponse converts the use case output into a response.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, 0, len(output.Categories))
	for _, c := range output.Categories {
		categories = append(categories, CategoryResponse{
			Name:             c.Name,
			Suggested:        c.Suggested,
			TransactionCount: c.TransactionCount,
			PeriodTotal:      amount(c.PeriodTotal),
		})
	}
	return CategoryListResponse{Categories: categories}
}
