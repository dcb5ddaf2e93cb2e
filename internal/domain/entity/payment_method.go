package entity

import "time"

// PaymentMethodType represents how a transaction was paid.
type PaymentMethodType string

const (
	PaymentMethodTypeCreditCard   PaymentMethodType = "credit_card"
	PaymentMethodTypeDebitCard    PaymentMethodType = "debit_card"
	PaymentMethodTypeCash         PaymentMethodType = "cash"
	PaymentMethodTypePix          PaymentMethodType = "pix"
	PaymentMethodTypeBankTransfer PaymentMethodType = "bank_transfer"
)

// DefaultPaymentMethodColor is the default color for payment methods.
const DefaultPaymentMethodColor = "#0EA5E9"

// IsValid reports whether the payment method type is supported.
func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentMethodTypeCreditCard,
		PaymentMethodTypeDebitCard,
		PaymentMethodTypeCash,
		PaymentMethodTypePix,
		PaymentMethodTypeBankTransfer:
		return true
	}
	return false
}

// PaymentMethod represents a wallet, card or other means of payment.
type PaymentMethod struct {
	ID        int64
	Name      string
	Type      PaymentMethodType
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewPaymentMethod creates a new PaymentMethod entity.
func NewPaymentMethod(name string, methodType PaymentMethodType, color string) *PaymentMethod {
	now := time.Now().UTC()

	return &PaymentMethod{
		Name:      name,
		Type:      methodType,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
