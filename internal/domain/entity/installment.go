package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Installment represents a purchase paid over several installments.
// Each installment is materialized as a Transaction referencing the purchase.
type Installment struct {
	ID                 int64
	Description        string
	TotalAmount        decimal.Decimal
	InstallmentCount   int
	CurrentInstallment int // Number of installments reported as paid
	Type               TransactionType
	CategoryID         *int64
	PaymentMethodID    *int64
	FirstDueDate       time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// NewInstallment creates a new Installment entity.
func NewInstallment(
	description string,
	totalAmount decimal.Decimal,
	installmentCount int,
	currentInstallment int,
	transactionType TransactionType,
	categoryID *int64,
	paymentMethodID *int64,
	firstDueDate time.Time,
) *Installment {
	now := time.Now().UTC()

	return &Installment{
		Description:        description,
		TotalAmount:        totalAmount.Abs(),
		InstallmentCount:   installmentCount,
		CurrentInstallment: currentInstallment,
		Type:               transactionType,
		CategoryID:         categoryID,
		PaymentMethodID:    paymentMethodID,
		FirstDueDate:       firstDueDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Ref returns the installment sub-record attached to each of the purchase's transactions.
func (i *Installment) Ref() *InstallmentRef {
	count := i.InstallmentCount
	current := i.CurrentInstallment
	return &InstallmentRef{
		ID:                 i.ID,
		InstallmentCount:   &count,
		CurrentInstallment: &current,
	}
}

// IsCompleted reports whether every installment has been paid.
func (i *Installment) IsCompleted() bool {
	return i.CurrentInstallment >= i.InstallmentCount
}

// InstallmentGroup is the derived view of one installment purchase built from
// a flat transaction list. It is recomputed on every aggregation and never persisted.
//
// InstallmentCount and PaidInstallments are snapshots of the first transaction seen
// for the group, so they can disagree with len(Transactions) when the input is a
// truncated page.
type InstallmentGroup struct {
	InstallmentID    int64
	Description      string
	TotalAmount      decimal.Decimal
	InstallmentCount int
	PaidInstallments int
	Category         *Category
	PaymentMethod    *PaymentMethod
	Type             TransactionType
	Transactions     []*Transaction
}

// RemainingInstallments returns how many installments are still to be paid, never negative.
func (g *InstallmentGroup) RemainingInstallments() int {
	return max(0, g.InstallmentCount-g.PaidInstallments)
}

// IsCompleted reports whether the group is fully paid. Equality counts as complete.
func (g *InstallmentGroup) IsCompleted() bool {
	return g.PaidInstallments >= g.InstallmentCount
}

// PositionLabel returns the "number/count" label of a transaction inside the group.
// An unknown position is rendered as "?".
func (g *InstallmentGroup) PositionLabel(t *Transaction) string {
	if t == nil || t.InstallmentNumber == nil {
		return fmt.Sprintf("?/%d", g.InstallmentCount)
	}
	return fmt.Sprintf("%d/%d", *t.InstallmentNumber, g.InstallmentCount)
}

// InstallmentGrouping is the result of partitioning a transaction list.
type InstallmentGrouping struct {
	InstallmentGroups   []*InstallmentGroup
	RegularTransactions []*Transaction
}

// InstallmentStatsSummary aggregates progress across all installment groups.
type InstallmentStatsSummary struct {
	TotalGroups          int
	CompletedGroups      int
	ActiveGroups         int
	TotalAmount          decimal.Decimal
	PaidAmount           decimal.Decimal
	RemainingAmount      decimal.Decimal
	CompletionPercentage decimal.Decimal
}
