package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date            time.Time
	Description     string
	Amount          decimal.Decimal
	Type            entity.TransactionType
	CategoryID      *int64
	PaymentMethodID *int64
	Notes           string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo   adapter.TransactionRepository
	categoryRepo      adapter.CategoryRepository
	paymentMethodRepo adapter.PaymentMethodRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	paymentMethodRepo adapter.PaymentMethodRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo:   transactionRepo,
		categoryRepo:      categoryRepo,
		paymentMethodRepo: paymentMethodRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if strings.TrimSpace(input.Description) == "" || input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"date and description are required",
			nil,
		)
	}

	// Validate description length
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	// Validate notes length
	if len(input.Notes) > MaxNotesLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Amount.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFoundForTransaction,
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
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTxnPaymentMethodNotFound,
					"payment method not found",
					domainerror.ErrPaymentMethodNotFoundForTransaction,
				)
			}
			return nil, fmt.Errorf("failed to find payment method: %w", err)
		}
		paymentMethod = pm
	}

	transaction := entity.NewTransaction(
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.PaymentMethodID,
		input.Notes,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	transaction.Category = category
	transaction.PaymentMethod = paymentMethod

	slog.InfoContext(ctx, "transaction created",
		"transaction_id", transaction.ID,
		"type", transaction.Type,
	)

	return &CreateTransactionOutput{
		Transaction: NewTransactionOutput(transaction),
	}, nil
}
