package paymentmethod

import (
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/category"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

// MaxPaymentMethodNameLength is the maximum allowed length for payment method names.
const MaxPaymentMethodNameLength = 50

// CreatePaymentMethodInput represents the input for payment method creation.
type CreatePaymentMethodInput struct {
	Name  string
	Type  entity.PaymentMethodType
	Color string // Optional, defaults to DefaultPaymentMethodColor
}

// CreatePaymentMethodOutput represents the output of payment method creation.
type CreatePaymentMethodOutput struct {
	PaymentMethod *PaymentMethodOutput
}

// CreatePaymentMethodUseCase handles payment method creation.
type CreatePaymentMethodUseCase struct {
	paymentMethodRepo adapter.PaymentMethodRepository
}

// NewCreatePaymentMethodUseCase creates a new CreatePaymentMethodUseCase instance.
func NewCreatePaymentMethodUseCase(paymentMethodRepo adapter.PaymentMethodRepository) *CreatePaymentMethodUseCase {
	return &CreatePaymentMethodUseCase{
		paymentMethodRepo: paymentMethodRepo,
	}
}

// Execute performs the payment method creation.
func (uc *CreatePaymentMethodUseCase) Execute(ctx context.Context, input CreatePaymentMethodInput) (*CreatePaymentMethodOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewPaymentMethodError(
			domainerror.ErrCodeMissingPaymentFields,
			"name is required",
			nil,
		)
	}
	if len(name) > MaxPaymentMethodNameLength {
		return nil, domainerror.NewPaymentMethodError(
			domainerror.ErrCodePaymentMethodNameTooLong,
			fmt.Sprintf("payment method name must not exceed %d characters", MaxPaymentMethodNameLength),
			domainerror.ErrPaymentMethodNameTooLong,
		)
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewPaymentMethodError(
			domainerror.ErrCodeInvalidPaymentMethodType,
			"type must be one of credit_card, debit_card, cash, pix, bank_transfer",
			domainerror.ErrInvalidPaymentMethodType,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultPaymentMethodColor
	}
	if !category.HexColorRegex.MatchString(color) {
		return nil, domainerror.NewPaymentMethodError(
			domainerror.ErrCodePaymentMethodColor,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	exists, err := uc.paymentMethodRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check payment method name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewPaymentMethodError(
			domainerror.ErrCodePaymentMethodNameExists,
			"a payment method with this name already exists",
			domainerror.ErrPaymentMethodNameExists,
		)
	}

	paymentMethod := entity.NewPaymentMethod(name, input.Type, color)
	if err := uc.paymentMethodRepo.Create(ctx, paymentMethod); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	return &CreatePaymentMethodOutput{
		PaymentMethod: toPaymentMethodOutput(paymentMethod),
	}, nil
}
