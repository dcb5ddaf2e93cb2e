// Package paymentmethod contains payment method use cases.
package paymentmethod

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// PaymentMethodOutput represents a single payment method in the output.
type PaymentMethodOutput struct {
	ID        int64
	Name      string
	Type      entity.PaymentMethodType
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListPaymentMethodsOutput represents the output of listing payment methods.
type ListPaymentMethodsOutput struct {
	PaymentMethods []*PaymentMethodOutput
}

// ListPaymentMethodsUseCase handles listing payment methods.
type ListPaymentMethodsUseCase struct {
	paymentMethodRepo adapter.PaymentMethodRepository
}

// NewListPaymentMethodsUseCase creates a new ListPaymentMethodsUseCase instance.
func NewListPaymentMethodsUseCase(paymentMethodRepo adapter.PaymentMethodRepository) *ListPaymentMethodsUseCase {
	return &ListPaymentMethodsUseCase{
		paymentMethodRepo: paymentMethodRepo,
	}
}

// Execute returns every payment method ordered by name.
func (uc *ListPaymentMethodsUseCase) Execute(ctx context.Context) (*ListPaymentMethodsOutput, error) {
	paymentMethods, err := uc.paymentMethodRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	output := &ListPaymentMethodsOutput{
		PaymentMethods: make([]*PaymentMethodOutput, len(paymentMethods)),
	}
	for i, pm := range paymentMethods {
		output.PaymentMethods[i] = toPaymentMethodOutput(pm)
	}
	return output, nil
}

func toPaymentMethodOutput(pm *entity.PaymentMethod) *PaymentMethodOutput {
	return &PaymentMethodOutput{
		ID:        pm.ID,
		Name:      pm.Name,
		Type:      pm.Type,
		Color:     pm.Color,
		CreatedAt: pm.CreatedAt,
		UpdatedAt: pm.UpdatedAt,
	}
}
