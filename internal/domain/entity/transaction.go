// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// InstallmentRef is the installment sub-record carried by a transaction that is
// one occurrence of a multi-installment purchase.
// Counts are optional: upstream data may omit them, and defaults are resolved
// only when an installment group is built.
type InstallmentRef struct {
	ID                 int64
	InstallmentCount   *int
	CurrentInstallment *int
}

// Transaction represents a financial transaction in the wallet.
type Transaction struct {
	ID              int64
	Description     string
	Amount          decimal.Decimal // Stored as absolute value, sign inferred from Type
	Type            TransactionType
	Date            time.Time
	CategoryID      *int64
	PaymentMethodID *int64
	Notes           string

	// Installment fields, present only for installment purchase occurrences
	InstallmentID     *int64
	InstallmentNumber *int

	// Relationships, nil when not loaded
	Category      *Category
	PaymentMethod *PaymentMethod
	Installment   *InstallmentRef

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *int64,
	paymentMethodID *int64,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		Date:            date,
		Description:     description,
		Amount:          amount.Abs(),
		Type:            transactionType,
		CategoryID:      categoryID,
		PaymentMethodID: paymentMethodID,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsInstallment reports whether the transaction is one occurrence of an installment
// purchase. Both the installment sub-record and a non-zero installment ID are required.
func (t *Transaction) IsInstallment() bool {
	return t.Installment != nil && t.InstallmentID != nil && *t.InstallmentID != 0
}

// SignedAmount returns the amount with the sign implied by the transaction type.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Abs().Neg()
	}
	return t.Amount.Abs()
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
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
