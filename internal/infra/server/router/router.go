// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expensebot/backend/internal/integration/entrypoint/controller"
	"github.com/expensebot/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	transactionController *controller.TransactionController
	recurringController   *controller.RecurringController
	budgetController      *controller.BudgetController
	rateLimiter           *middleware.RateLimiter
	accountMiddleware     *middleware.AccountMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	recurringController *controller.RecurringController,
	budgetController *controller.BudgetController,
	rateLimiter *middleware.RateLimiter,
	accountMiddleware *middleware.AccountMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		transactionController: transactionController,
		recurringController:   recurringController,
		budgetController:      budgetController,
		rateLimiter:           rateLimiter,
		accountMiddleware:     accountMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Everything except health
// and the generation trigger is scoped to the calling account.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	// Generation trigger for an external scheduler; account-agnostic, it
	// evaluates every account's rules in one pass.
	if r.recurringController != nil {
		v1.POST("/rules/generate", r.recurringController.GenerateDue)
	}

	scoped := v1.Group("")
	scoped.Use(r.accountMiddleware.Identify())
	{
		if r.transactionController != nil {
			transactions := scoped.Group("/transactions")
			{
				transactions.POST("", r.transactionController.Post)
				transactions.GET("", r.transactionController.List)
				transactions.GET("/search", r.transactionController.Search)
				transactions.GET("/summary", r.transactionController.Summary)
				transactions.GET("/compare", r.transactionController.Compare)
				transactions.PATCH("/:ref", r.transactionController.Update)
				transactions.DELETE("/:ref", r.transactionController.Delete)
			}
		}

		if r.recurringController != nil {
			rules := scoped.Group("/rules")
			{
				rules.POST("", r.recurringController.Create)
				rules.GET("", r.recurringController.List)
				rules.PATCH("/:ref", r.recurringController.UpdateState)
			}
		}

		if r.budgetController != nil {
			budgets := scoped.Group("/budgets")
			{
				budgets.POST("", r.budgetController.Add)
				budgets.GET("", r.budgetController.List)
				budgets.GET("/alerts", r.budgetController.Alerts)
				budgets.GET("/:ref/progress", r.budgetController.Progress)
				budgets.DELETE("/:ref", r.budgetController.Delete)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
