// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	CategoryIDs     []int64
	PaymentMethodID *int64
	Type            *entity.TransactionType
	Search          string // Case-insensitive description match
	InstallmentOnly bool   // Only transactions that belong to an installment purchase
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its relationships by ID.
	FindByID(ctx context.Context, id int64) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	// Relationships (category, payment method, installment) are loaded.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindByInstallmentID retrieves every transaction of an installment purchase,
	// ordered by installment number.
	FindByInstallmentID(ctx context.Context, installmentID int64) ([]*entity.Transaction, error)

	// GetTotals calculates totals for transactions based on filter criteria.
	GetTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotals, error)

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id int64) error
}
