// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID              int64
	Date            time.Time
	Description     string
	Amount          decimal.Decimal
	Type            entity.TransactionType
	CategoryID      *int64
	Category        *CategoryOutput
	PaymentMethodID *int64
	PaymentMethod   *PaymentMethodOutput
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	// Installment purchase fields
	InstallmentID      *int64
	InstallmentNumber  *int // Position of this occurrence inside the purchase
	InstallmentCount   *int // Total number of installments of the purchase
	CurrentInstallment *int // Installments reported as paid
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    int64
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// PaymentMethodOutput represents payment method information in transaction output.
type PaymentMethodOutput struct {
	ID    int64
	Name  string
	Type  entity.PaymentMethodType
	Color string
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// NewTransactionOutput maps a transaction entity and its loaded relationships.
func NewTransactionOutput(txn *entity.Transaction) *TransactionOutput {
	output := &TransactionOutput{
		ID:                txn.ID,
		Date:              txn.Date,
		Description:       txn.Description,
		Amount:            txn.Amount,
		Type:              txn.Type,
		CategoryID:        txn.CategoryID,
		PaymentMethodID:   txn.PaymentMethodID,
		Notes:             txn.Notes,
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.UpdatedAt,
		InstallmentID:     txn.InstallmentID,
		InstallmentNumber: txn.InstallmentNumber,
	}

	if txn.Category != nil {
		output.Category = NewCategoryOutput(txn.Category)
	}
	if txn.PaymentMethod != nil {
		output.PaymentMethod = NewPaymentMethodOutput(txn.PaymentMethod)
	}
	if txn.Installment != nil {
		output.InstallmentCount = txn.Installment.InstallmentCount
		output.CurrentInstallment = txn.Installment.CurrentInstallment
	}

	return output
}

// NewCategoryOutput maps a category entity.
func NewCategoryOutput(category *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
		Icon:  category.Icon,
		Type:  category.Type,
	}
}

// NewPaymentMethodOutput maps a payment method entity.
func NewPaymentMethodOutput(paymentMethod *entity.PaymentMethod) *PaymentMethodOutput {
	return &PaymentMethodOutput{
		ID:    paymentMethod.ID,
		Name:  paymentMethod.Name,
		Type:  paymentMethod.Type,
		Color: paymentMethod.Color,
	}
}

// NormalizePagination applies the default page and limit bounds.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
