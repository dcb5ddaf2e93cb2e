// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                  *gin.Engine
	healthController        *controller.HealthController
	transactionController   *controller.TransactionController
	installmentController   *controller.InstallmentController
	categoryController      *controller.CategoryController
	paymentMethodController *controller.PaymentMethodController
	writeRateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
// Controllers may be nil when the database is unavailable; their routes are then skipped.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	installmentController *controller.InstallmentController,
	categoryController *controller.CategoryController,
	paymentMethodController *controller.PaymentMethodController,
	writeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:        healthController,
		transactionController:   transactionController,
		installmentController:   installmentController,
		categoryController:      categoryController,
		paymentMethodController: paymentMethodController,
		writeRateLimiter:        writeRateLimiter,
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
	r.engine.Use(middleware.RequestID())

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
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	limit := r.writeLimit()

	// Transaction routes
	if r.transactionController != nil {
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", limit, r.transactionController.Create)
			transactions.DELETE("/:id", limit, r.transactionController.Delete)
		}
	}

	// Installment purchase routes
	if r.installmentController != nil {
		installments := v1.Group("/installments")
		{
			installments.GET("", r.installmentController.List)
			installments.GET("/stats", r.installmentController.Stats)
			installments.POST("", limit, r.installmentController.Create)
			installments.POST("/:id/pay", limit, r.installmentController.Pay)
			installments.DELETE("/:id", limit, r.installmentController.Delete)
		}
	}

	// Category routes
	if r.categoryController != nil {
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", limit, r.categoryController.Create)
		}
	}

	// Payment method routes
	if r.paymentMethodController != nil {
		paymentMethods := v1.Group("/payment-methods")
		{
			paymentMethods.GET("", r.paymentMethodController.List)
			paymentMethods.POST("", limit, r.paymentMethodController.Create)
		}
	}
}

// writeLimit returns the rate limiting handler for write routes, or a pass-through.
func (r *Router) writeLimit() gin.HandlerFunc {
	if r.writeRateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.writeRateLimiter.Middleware()
}
