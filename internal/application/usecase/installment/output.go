// Package installment contains installment purchase use cases.
package installment

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// GroupTransactionOutput is one occurrence inside an installment group.
type GroupTransactionOutput struct {
	*transaction.TransactionOutput
	PositionLabel string // "n/count", "?/count" when the position is unknown
}

// GroupOutput represents an installment group with its derived display fields.
type GroupOutput struct {
	InstallmentID         int64
	Description           string
	TotalAmount           decimal.Decimal
	InstallmentCount      int
	PaidInstallments      int
	RemainingInstallments int
	IsCompleted           bool
	Type                  entity.TransactionType
	Category              *transaction.CategoryOutput
	PaymentMethod         *transaction.PaymentMethodOutput
	Transactions          []*GroupTransactionOutput
}

// StatsOutput summarizes progress across installment groups.
type StatsOutput struct {
	TotalGroups          int
	CompletedGroups      int
	ActiveGroups         int
	TotalAmount          decimal.Decimal
	PaidAmount           decimal.Decimal
	RemainingAmount      decimal.Decimal
	CompletionPercentage decimal.Decimal
}

// ProgressOutput reports the payment progress of one purchase.
type ProgressOutput struct {
	InstallmentID         int64
	InstallmentCount      int
	PaidInstallments      int
	RemainingInstallments int
	IsCompleted           bool
}

func newGroupOutput(group *entity.InstallmentGroup) *GroupOutput {
	output := &GroupOutput{
		InstallmentID:         group.InstallmentID,
		Description:           group.Description,
		TotalAmount:           group.TotalAmount,
		InstallmentCount:      group.InstallmentCount,
		PaidInstallments:      group.PaidInstallments,
		RemainingInstallments: group.RemainingInstallments(),
		IsCompleted:           group.IsCompleted(),
		Type:                  group.Type,
		Transactions:          make([]*GroupTransactionOutput, len(group.Transactions)),
	}

	if group.Category != nil {
		output.Category = transaction.NewCategoryOutput(group.Category)
	}
	if group.PaymentMethod != nil {
		output.PaymentMethod = transaction.NewPaymentMethodOutput(group.PaymentMethod)
	}
	for i, txn := range group.Transactions {
		output.Transactions[i] = &GroupTransactionOutput{
			TransactionOutput: transaction.NewTransactionOutput(txn),
			PositionLabel:     group.PositionLabel(txn),
		}
	}

	return output
}

func newStatsOutput(stats *entity.InstallmentStatsSummary) *StatsOutput {
	return &StatsOutput{
		TotalGroups:          stats.TotalGroups,
		CompletedGroups:      stats.CompletedGroups,
		ActiveGroups:         stats.ActiveGroups,
		TotalAmount:          stats.TotalAmount,
		PaidAmount:           stats.PaidAmount,
		RemainingAmount:      stats.RemainingAmount,
		CompletionPercentage: stats.CompletionPercentage,
	}
}

func newProgressOutput(installment *entity.Installment) *ProgressOutput {
	return &ProgressOutput{
		InstallmentID:         installment.ID,
		InstallmentCount:      installment.InstallmentCount,
		PaidInstallments:      installment.CurrentInstallment,
		RemainingInstallments: max(0, installment.InstallmentCount-installment.CurrentInstallment),
		IsCompleted:           installment.IsCompleted(),
	}
}
