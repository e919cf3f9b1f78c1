// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	StartDate entity.Date // Optional start date for statistics
	EndDate   entity.Date // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	Name             string
	Suggested        bool
	TransactionCount int
	PeriodTotal      decimal.Decimal
}

// ListCategoriesUseCase merges the suggested categories with those found in the collection.
type ListCategoriesUseCase struct {
	catalog adapter.CategoryCatalog
	store   adapter.TransactionStore
	locale  language.Tag
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	catalog adapter.CategoryCatalog,
	store adapter.TransactionStore,
	locale language.Tag,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		catalog: catalog,
		store:   store,
		locale:  locale,
	}
}

// Execute lists suggestions in catalog order, followed by the other categories in use
// sorted by the locale's collation. Statistics cover transactions inside the optional
// date range.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	suggestions, err := uc.catalog.Suggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category suggestions: %w", err)
	}

	transactions, err := uc.store.Load(ctx)
	if err != nil {
		return nil, domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to load transactions", err)
	}

	byName := make(map[string]*CategoryOutput)
	var categories []*CategoryOutput
	for _, name := range suggestions {
		if _, dup := byName[name]; dup {
			continue
		}
		c := &CategoryOutput{Name: name, Suggested: true, PeriodTotal: decimal.Zero}
		byName[name] = c
		categories = append(categories, c)
	}

	var extra []*CategoryOutput
	for _, t := range transactions {
		c, ok := byName[t.Category]
		if !ok {
			c = &CategoryOutput{Name: t.Category, PeriodTotal: decimal.Zero}
			byName[t.Category] = c
			extra = append(extra, c)
		}
		if !inRange(t.Date, input.StartDate, input.EndDate) {
			continue
		}
		c.TransactionCount++
		c.PeriodTotal = c.PeriodTotal.Add(t.Amount)
	}

	collator := collate.New(uc.locale)
	slices.SortStableFunc(extra, func(a, b *CategoryOutput) int {
		return collator.CompareString(a.Name, b.Name)
	})

	return &ListCategoriesOutput{Categories: append(categories, extra...)}, nil
}

func inRange(d, start, end entity.Date) bool {
	if !start.IsZero() && d.Before(start) {
		return false
	}
	return end.IsZero() || !d.After(end)
}
