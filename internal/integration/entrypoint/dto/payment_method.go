package dto

import (
	"time"

	"github.com/finance-tracker/wallet-api/internal/application/usecase/paymentmethod"
)

// CreatePaymentMethodRequest represents the request body for payment method creation.
type CreatePaymentMethodRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Type  string `json:"type" binding:"required"`
	Color string `json:"color,omitempty"`
}

// PaymentMethodResponse represents a payment method in API responses.
type PaymentMethodResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentMethodListResponse represents the response for listing payment methods.
type PaymentMethodListResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
}

// ToPaymentMethodResponse converts a PaymentMethodOutput to a PaymentMethodResponse DTO.
func ToPaymentMethodResponse(output *paymentmethod.PaymentMethodOutput) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        output.ID,
		Name:      output.Name,
		Type:      string(output.Type),
		Color:     output.Color,
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}
}

// ToPaymentMethodListResponse converts a ListPaymentMethodsOutput to PaymentMethodListResponse.
func ToPaymentMethodListResponse(output *paymentmethod.ListPaymentMethodsOutput) PaymentMethodListResponse {
	paymentMethods := make([]PaymentMethodResponse, len(output.PaymentMethods))
	for i, pm := range output.PaymentMethods {
		paymentMethods[i] = ToPaymentMethodResponse(pm)
	}
	return PaymentMethodListResponse{PaymentMethods: paymentMethods}
}
