// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

// StateController exposes the session: the filtered and sorted view with its stats,
// and the filter, sort and error slot settings.
type StateController struct {
	session *session.Session
}

// NewStateController creates a new state controller instance.
func NewStateController(sess *session.Session) *StateController {
	return &StateController{session: sess}
}

// Get handles GET /state requests.
func (c *StateController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToStateResponse(c.session.Snapshot()))
}

// SetFilter handles PUT /state/filter requests.
func (c *StateController) SetFilter(ctx *gin.Context) {
	var req dto.FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid filter")
		return
	}

	if err := c.session.SetFilter(req.ToFilterState()); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStateResponse(c.session.Snapshot()))
}

// SetSort handles PUT /state/sort requests.
func (c *StateController) SetSort(ctx *gin.Context) {
	var req dto.SortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "by and order are required")
		return
	}

	if err := c.session.SetSort(req.ToSortState()); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStateResponse(c.session.Snapshot()))
}

// ClearError handles DELETE /state/error requests.
func (c *StateController) ClearError(ctx *gin.Context) {
	c.session.ClearError()
	ctx.Status(http.StatusNoContent)
}

// Refresh handles POST /state/refresh requests.
func (c *StateController) Refresh(ctx *gin.Context) {
	if err := c.session.Load(ctx.Request.Context()); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStateResponse(c.session.Snapshot()))
}
