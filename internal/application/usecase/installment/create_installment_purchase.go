package installment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/domain/service"
)

const (
	// MinInstallments is the smallest number of installments a purchase can be split into.
	MinInstallments = 2
	// MaxInstallments is the largest number of installments a purchase can be split into.
	MaxInstallments = 72
)

// CreateInstallmentPurchaseInput represents the input for creating an installment purchase.
type CreateInstallmentPurchaseInput struct {
	Description      string
	TotalAmount      decimal.Decimal
	InstallmentCount int
	PaidInstallments int                    // Installments already paid, defaults to 0
	Type             entity.TransactionType // Defaults to expense
	CategoryID       *int64
	PaymentMethodID  *int64
	FirstDueDate     time.Time
	Notes            string
}

// CreateInstallmentPurchaseOutput represents the created purchase grouped with its occurrences.
type CreateInstallmentPurchaseOutput struct {
	Group *GroupOutput
}

// CreateInstallmentPurchaseUseCase splits a purchase into monthly transactions.
type CreateInstallmentPurchaseUseCase struct {
	installmentRepo   adapter.InstallmentRepository
	categoryRepo      adapter.CategoryRepository
	paymentMethodRepo adapter.PaymentMethodRepository
	statsCache        adapter.StatsCache
}

// NewCreateInstallmentPurchaseUseCase creates a new CreateInstallmentPurchaseUseCase instance.
func NewCreateInstallmentPurchaseUseCase(
	installmentRepo adapter.InstallmentRepository,
	categoryRepo adapter.CategoryRepository,
	paymentMethodRepo adapter.PaymentMethodRepository,
	statsCache adapter.StatsCache,
) *CreateInstallmentPurchaseUseCase {
	return &CreateInstallmentPurchaseUseCase{
		installmentRepo:   installmentRepo,
		categoryRepo:      categoryRepo,
		paymentMethodRepo: paymentMethodRepo,
		statsCache:        statsCache,
	}
}

// Execute validates the purchase, creates it with one transaction per installment
// and invalidates cached statistics.
func (uc *CreateInstallmentPurchaseUseCase) Execute(ctx context.Context, input CreateInstallmentPurchaseInput) (*CreateInstallmentPurchaseOutput, error) {
	if strings.TrimSpace(input.Description) == "" || input.FirstDueDate.IsZero() {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeMissingInstallmentFields,
			"description and first due date are required",
			nil,
		)
	}
	if len(input.Description) > transaction.MaxDescriptionLength {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInstallmentDescription,
			fmt.Sprintf("description must not exceed %d characters", transaction.MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if input.InstallmentCount < MinInstallments || input.InstallmentCount > MaxInstallments {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentCount,
			fmt.Sprintf("installment count must be between %d and %d", MinInstallments, MaxInstallments),
			domainerror.ErrInvalidInstallmentCount,
		)
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentAmount,
			"total amount must be greater than zero",
			domainerror.ErrInvalidInstallmentAmount,
		)
	}
	if input.PaidInstallments < 0 || input.PaidInstallments > input.InstallmentCount {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidPaidInstallments,
			"paid installments must be between 0 and the installment count",
			domainerror.ErrInvalidPaidInstallments,
		)
	}

	txnType := input.Type
	if txnType == "" {
		txnType = entity.TransactionTypeExpense
	}
	if !txnType.IsValid() {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewInstallmentError(
					domainerror.ErrCodeInstallmentCategory,
					"category not found",
					domainerror.ErrCategoryNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		category = cat
	}

	var paymentMethod *entity.PaymentMethod
	if input.PaymentMethodID != nil {
		pm, err := uc.paymentMethodRepo.FindByID(ctx, *input.PaymentMethodID)
		if err != nil {
			if errors.Is(err, domainerror.ErrPaymentMethodNotFound) {
				return nil, domainerror.NewInstallmentError(
					domainerror.ErrCodeInstallmentPaymentMethod,
					"payment method not found",
					domainerror.ErrPaymentMethodNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find payment method: %w", err)
		}
		paymentMethod = pm
	}

	purchase := entity.NewInstallment(
		input.Description,
		input.TotalAmount,
		input.InstallmentCount,
		input.PaidInstallments,
		txnType,
		input.CategoryID,
		input.PaymentMethodID,
		input.FirstDueDate,
	)

	amounts := SplitAmount(purchase.TotalAmount, purchase.InstallmentCount)
	transactions := make([]*entity.Transaction, purchase.InstallmentCount)
	for i := range transactions {
		number := i + 1
		txn := entity.NewTransaction(
			DueDate(purchase.FirstDueDate, i),
			purchase.Description,
			amounts[i],
			txnType,
			input.CategoryID,
			input.PaymentMethodID,
			input.Notes,
		)
		txn.InstallmentNumber = &number
		transactions[i] = txn
	}

	if err := uc.installmentRepo.CreateWithTransactions(ctx, purchase, transactions); err != nil {
		return nil, fmt.Errorf("failed to create installment purchase: %w", err)
	}

	for _, txn := range transactions {
		txn.Category = category
		txn.PaymentMethod = paymentMethod
		txn.Installment = purchase.Ref()
	}

	invalidateStats(ctx, uc.statsCache)

	slog.InfoContext(ctx, "installment purchase created",
		"installment_id", purchase.ID,
		"installment_count", purchase.InstallmentCount,
		"total_amount", purchase.TotalAmount.String(),
	)

	grouping := service.GroupTransactionsByInstallment(transactions)
	return &CreateInstallmentPurchaseOutput{
		Group: newGroupOutput(grouping.InstallmentGroups[0]),
	}, nil
}

// SplitAmount divides total into count parts of whole cents. Every part gets the
// truncated share and the first part also carries the leftover cents, so the parts
// always sum to total.
func SplitAmount(total decimal.Decimal, count int) []decimal.Decimal {
	n := decimal.NewFromInt(int64(count))
	share := total.Div(n).Truncate(2)
	remainder := total.Sub(share.Mul(n))

	parts := make([]decimal.Decimal, count)
	for i := range parts {
		parts[i] = share
	}
	parts[0] = parts[0].Add(remainder)
	return parts
}

// DueDate returns the due date of the installment at index (0 for the first one).
// The day of month is clamped to the last day of shorter months, so a purchase
// starting on January 31 falls due on February 28 or 29.
func DueDate(first time.Time, index int) time.Time {
	year, month, day := first.Date()
	target := time.Date(year, month+time.Month(index), 1, 0, 0, 0, 0, first.Location())
	lastDayOfMonth := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, first.Location()).Day()
	if day > lastDayOfMonth {
		day = lastDayOfMonth
	}
	hour, minute, sec := first.Clock()
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, first.Nanosecond(), first.Location())
}

// invalidateStats drops cached statistics. Failures are logged only.
func invalidateStats(ctx context.Context, cache adapter.StatsCache) {
	if err := cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate installment stats cache", "error", err)
	}
}
