package error

import "errors"

// Payment method domain errors.
var (
	// ErrPaymentMethodNotFound is returned when a payment method is not found.
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// ErrPaymentMethodNameExists is returned when the name is already in use.
	ErrPaymentMethodNameExists = errors.New("payment method name already exists")

	// ErrPaymentMethodNameTooLong is returned when the name exceeds the maximum length.
	ErrPaymentMethodNameTooLong = errors.New("payment method name too long")

	// ErrInvalidPaymentMethodType is returned when the type is not supported.
	ErrInvalidPaymentMethodType = errors.New("invalid payment method type")
)

// PaymentMethodErrorCode defines error codes for payment method errors.
type PaymentMethodErrorCode string

const (
	ErrCodePaymentMethodNameTooLong PaymentMethodErrorCode = "PMT-010001"
	ErrCodeInvalidPaymentMethodType PaymentMethodErrorCode = "PMT-010002"
	ErrCodePaymentMethodColor       PaymentMethodErrorCode = "PMT-010003"
	ErrCodePaymentMethodNotFound    PaymentMethodErrorCode = "PMT-010004"
	ErrCodePaymentMethodNameExists  PaymentMethodErrorCode = "PMT-010005"
	ErrCodeMissingPaymentFields     PaymentMethodErrorCode = "PMT-010006"
)

// PaymentMethodError represents a payment method error with code and message.
type PaymentMethodError struct {
	Code    PaymentMethodErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentMethodError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentMethodError) Unwrap() error {
	return e.Err
}

// NewPaymentMethodError creates a new PaymentMethodError with the given code and message.
func NewPaymentMethodError(code PaymentMethodErrorCode, message string, err error) *PaymentMethodError {
	return &PaymentMethodError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
