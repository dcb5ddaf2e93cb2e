// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"

	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/config"
	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/category"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/installment"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/paymentmethod"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet-api/internal/infra/server/router"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/wallet-api/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil db leaves only the health endpoint available.
func NewInjector(cfg *config.Config, db *gorm.DB, dbHealthChecker func() bool, statsCache adapter.StatsCache) *Injector {
	var cacheHealthChecker func(ctx context.Context) bool
	if cfg.Cache.Enabled {
		cacheHealthChecker = statsCache.Ping
	}
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	if db == nil {
		return &Injector{
			Config:      cfg,
			RateLimiter: rateLimiter,
			Router:      router.NewRouter(healthController, nil, nil, nil, nil, rateLimiter),
		}
	}

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	installmentRepo := persistence.NewInstallmentRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	paymentMethodRepo := persistence.NewPaymentMethodRepository(db)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, paymentMethodRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create installment use cases
	listInstallmentGroupsUseCase := installment.NewListInstallmentGroupsUseCase(transactionRepo)
	getInstallmentStatsUseCase := installment.NewGetInstallmentStatsUseCase(transactionRepo, statsCache)
	createInstallmentPurchaseUseCase := installment.NewCreateInstallmentPurchaseUseCase(installmentRepo, categoryRepo, paymentMethodRepo, statsCache)
	payInstallmentUseCase := installment.NewPayInstallmentUseCase(installmentRepo, statsCache)
	deleteInstallmentPurchaseUseCase := installment.NewDeleteInstallmentPurchaseUseCase(installmentRepo, statsCache)

	// Create category and payment method use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listPaymentMethodsUseCase := paymentmethod.NewListPaymentMethodsUseCase(paymentMethodRepo)
	createPaymentMethodUseCase := paymentmethod.NewCreatePaymentMethodUseCase(paymentMethodRepo)

	// Create controllers
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
	)

	installmentController := controller.NewInstallmentController(
		listInstallmentGroupsUseCase,
		getInstallmentStatsUseCase,
		createInstallmentPurchaseUseCase,
		payInstallmentUseCase,
		deleteInstallmentPurchaseUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
	)

	paymentMethodController := controller.NewPaymentMethodController(
		listPaymentMethodsUseCase,
		createPaymentMethodUseCase,
	)

	// Create router
	r := router.NewRouter(
		healthController,
		transactionController,
		installmentController,
		categoryController,
		paymentMethodController,
		rateLimiter,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		RateLimiter: rateLimiter,
		Router:      r,
	}
}
