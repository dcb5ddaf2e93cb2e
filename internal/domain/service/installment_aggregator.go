// Package service contains pure domain computations shared by the use cases.
package service

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

const (
	// DefaultInstallmentCount replaces a missing or non-positive installment count.
	DefaultInstallmentCount = 1
	// DefaultPaidInstallments replaces a missing or non-positive paid installment count.
	DefaultPaidInstallments = 0
)

var hundred = decimal.NewFromInt(100)

// GroupTransactionsByInstallment partitions transactions into installment groups,
// keyed by installment ID, and regular transactions.
//
// Groups are returned in the order their installment ID was first seen and each
// group keeps its transactions in input order. Group metadata (description,
// category, payment method, type and progress counts) is taken from the first
// transaction of the group only. Every input transaction ends up in exactly one
// of the two outputs.
func GroupTransactionsByInstallment(transactions []*entity.Transaction) *entity.InstallmentGrouping {
	result := &entity.InstallmentGrouping{
		InstallmentGroups:   []*entity.InstallmentGroup{},
		RegularTransactions: []*entity.Transaction{},
	}

	// installment ID -> index into result.InstallmentGroups
	index := make(map[int64]int)

	for _, txn := range transactions {
		if txn == nil || !txn.IsInstallment() {
			result.RegularTransactions = append(result.RegularTransactions, txn)
			continue
		}

		id := *txn.InstallmentID
		pos, ok := index[id]
		if !ok {
			pos = len(result.InstallmentGroups)
			index[id] = pos
			result.InstallmentGroups = append(result.InstallmentGroups, newInstallmentGroup(id, txn))
		}

		group := result.InstallmentGroups[pos]
		group.Transactions = append(group.Transactions, txn)
		group.TotalAmount = group.TotalAmount.Add(txn.Amount.Abs())
	}

	return result
}

// CalculateInstallmentStats summarizes progress over the installment groups found in
// transactions.
//
// The paid amount is estimated from each group's completion ratio, assuming equally
// sized installments, because individual transaction rows carry no paid flag.
func CalculateInstallmentStats(transactions []*entity.Transaction) *entity.InstallmentStatsSummary {
	grouping := GroupTransactionsByInstallment(transactions)

	stats := &entity.InstallmentStatsSummary{
		TotalGroups:          len(grouping.InstallmentGroups),
		TotalAmount:          decimal.Zero,
		PaidAmount:           decimal.Zero,
		RemainingAmount:      decimal.Zero,
		CompletionPercentage: decimal.Zero,
	}

	for _, group := range grouping.InstallmentGroups {
		if group.IsCompleted() {
			stats.CompletedGroups++
		}
		stats.TotalAmount = stats.TotalAmount.Add(group.TotalAmount)
		stats.PaidAmount = stats.PaidAmount.Add(paidAmount(group))
	}

	stats.ActiveGroups = stats.TotalGroups - stats.CompletedGroups
	stats.RemainingAmount = stats.TotalAmount.Sub(stats.PaidAmount)

	if stats.TotalAmount.IsPositive() {
		stats.CompletionPercentage = stats.PaidAmount.Mul(hundred).Div(stats.TotalAmount)
	}

	return stats
}

// newInstallmentGroup seeds a group from the first transaction seen for it.
func newInstallmentGroup(id int64, first *entity.Transaction) *entity.InstallmentGroup {
	return &entity.InstallmentGroup{
		InstallmentID:    id,
		Description:      first.Description,
		TotalAmount:      decimal.Zero,
		InstallmentCount: resolveCount(first.Installment.InstallmentCount, DefaultInstallmentCount),
		PaidInstallments: resolveCount(first.Installment.CurrentInstallment, DefaultPaidInstallments),
		Category:         first.Category,
		PaymentMethod:    first.PaymentMethod,
		Type:             first.Type,
		Transactions:     []*entity.Transaction{},
	}
}

// resolveCount returns value when it is set and positive, fallback otherwise.
func resolveCount(value *int, fallback int) int {
	if value == nil || *value <= 0 {
		return fallback
	}
	return *value
}

// paidAmount returns totalAmount * min(1, paid/count) for a group.
func paidAmount(group *entity.InstallmentGroup) decimal.Decimal {
	if group.IsCompleted() {
		return group.TotalAmount
	}
	if group.PaidInstallments <= 0 {
		return decimal.Zero
	}
	// Multiply before dividing so whole ratios stay exact.
	return group.TotalAmount.
		Mul(decimal.NewFromInt(int64(group.PaidInstallments))).
		Div(decimal.NewFromInt(int64(group.InstallmentCount)))
}
