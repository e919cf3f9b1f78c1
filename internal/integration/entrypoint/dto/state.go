// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// FilterRequest represents the request body for replacing the filter.
// Empty type and category mean "all"; empty dates leave the range open.
type FilterRequest struct {
	Type      string      `json:"type"`
	Category  string      `json:"category"`
	Search    string      `json:"search"`
	StartDate entity.Date `json:"startDate"`
	EndDate   entity.Date `json:"endDate"`
}

// ToFilterState converts the request into a filter state.
func (r FilterRequest) ToFilterState() entity.FilterState {
	return entity.FilterState{
		Type:     entity.FilterType(r.Type),
		Category: r.Category,
		Search:   r.Search,
		DateRange: entity.DateRange{
			Start: r.StartDate,
			End:   r.EndDate,
		},
	}
}

// SortRequest represents the request body for replacing the sort preference.
type SortRequest struct {
	By    string `json:"by" binding:"required"`
	Order string `json:"order" binding:"required"`
}

// ToSortState converts the request into a sort state.
func (r SortRequest) ToSortState() entity.SortState {
	return entity.SortState{
		By:    entity.SortField(r.By),
		Order: entity.SortOrder(r.Order),
	}
}

// FilterResponse mirrors the filter state.
type FilterResponse struct {
	Type      entity.FilterType `json:"type"`
	Category  string            `json:"category"`
	Search    string            `json:"search"`
	StartDate entity.Date       `json:"startDate"`
	EndDate   entity.Date       `json:"endDate"`
}

// SortResponse mirrors the sort state.
type SortResponse struct {
	By    entity.SortField `json:"by"`
	Order entity.SortOrder `json:"order"`
}

// StateResponse is the session snapshot: the filtered and sorted view, the stats of
// the whole collection and the current settings.
type StateResponse struct {
	Transactions []entity.Transaction `json:"transactions"`
	Stats        StatsResponse        `json:"stats"`
	Filter       FilterResponse       `json:"filter"`
	Sort         SortResponse         `json:"sort"`
	Loading      bool                 `json:"loading"`
	Error        *session.ErrorState  `json:"error"`
}

// ToStateResponse converts a snapshot into a response.
func ToStateResponse(snapshot session.Snapshot) StateResponse {
	return StateResponse{
		Transactions: snapshot.Transactions,
		Stats:        ToStatsResponse(snapshot.Stats),
		Filter: FilterResponse{
			Type:      snapshot.Filter.Type,
			Category:  snapshot.Filter.Category,
			Search:    snapshot.Filter.Search,
			StartDate: snapshot.Filter.DateRange.Start,
			EndDate:   snapshot.Filter.DateRange.End,
		},
		Sort: SortResponse{
			By:    snapshot.Sort.By,
			Order: snapshot.Sort.Order,
		},
		Loading: snapshot.Loading,
		Error:   snapshot.Error,
	}
}
