// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	transactionController  *controller.TransactionController
	stateController        *controller.StateController
	summaryController      *controller.SummaryController
	categoryController     *controller.CategoryController
	dataTransferController *controller.DataTransferController
	importRateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	stateController *controller.StateController,
	summaryController *controller.SummaryController,
	categoryController *controller.CategoryController,
	dataTransferController *controller.DataTransferController,
	importRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:       healthController,
		transactionController:  transactionController,
		stateController:        stateController,
		summaryController:      summaryController,
		categoryController:     categoryController,
		dataTransferController: dataTransferController,
		importRateLimiter:      importRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.POST("/bulk-delete", r.transactionController.BulkDelete)
			transactions.POST("/bulk-categorize", r.transactionController.BulkCategorize)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		state := v1.Group("/state")
		{
			state.GET("", r.stateController.Get)
			state.PUT("/filter", r.stateController.SetFilter)
			state.PUT("/sort", r.stateController.SetSort)
			state.DELETE("/error", r.stateController.ClearError)
			state.POST("/refresh", r.stateController.Refresh)
		}

		summary := v1.Group("/summary")
		{
			summary.GET("", r.summaryController.Get)
			summary.GET("/range", r.summaryController.GetDataRange)
		}

		v1.GET("/categories", r.categoryController.List)

		export := v1.Group("/export")
		{
			export.GET("", r.dataTransferController.Export)
			export.GET("/xlsx", r.dataTransferController.ExportSpreadsheet)
		}

		imports := v1.Group("/import")
		imports.Use(r.importRateLimiter.Middleware())
		{
			imports.POST("", r.dataTransferController.Import)
			imports.POST("/validate", r.dataTransferController.Validate)
		}
	}
}
