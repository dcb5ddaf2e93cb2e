package error

import "errors"

// Installment domain errors.
var (
	// ErrInstallmentNotFound is returned when an installment purchase does not exist.
	ErrInstallmentNotFound = errors.New("installment purchase not found")

	// ErrInvalidInstallmentCount is returned when the number of installments is out of range.
	ErrInvalidInstallmentCount = errors.New("invalid installment count")

	// ErrInvalidInstallmentAmount is returned when the purchase total is not positive.
	ErrInvalidInstallmentAmount = errors.New("invalid installment amount")

	// ErrInvalidPaidInstallments is returned when the paid count is negative or above the total.
	ErrInvalidPaidInstallments = errors.New("invalid paid installments")

	// ErrInstallmentAlreadyCompleted is returned when paying a purchase that is fully paid.
	ErrInstallmentAlreadyCompleted = errors.New("installment purchase already completed")
)

// InstallmentErrorCode defines error codes for installment errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InstallmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidInstallmentCount   InstallmentErrorCode = "INS-010001"
	ErrCodeInvalidInstallmentAmount  InstallmentErrorCode = "INS-010002"
	ErrCodeInvalidPaidInstallments   InstallmentErrorCode = "INS-010003"
	ErrCodeInvalidInstallmentDate    InstallmentErrorCode = "INS-010004"
	ErrCodeInstallmentDescription    InstallmentErrorCode = "INS-010005"
	ErrCodeMissingInstallmentFields  InstallmentErrorCode = "INS-010006"
	ErrCodeInstallmentCategory       InstallmentErrorCode = "INS-010007"
	ErrCodeInstallmentPaymentMethod  InstallmentErrorCode = "INS-010008"
	ErrCodeInvalidInstallmentType    InstallmentErrorCode = "INS-010009"

	// State errors (02XXXX)
	ErrCodeInstallmentNotFound       InstallmentErrorCode = "INS-020001"
	ErrCodeInstallmentCompleted      InstallmentErrorCode = "INS-020002"
)

// InstallmentError represents an installment error with code and message.
type InstallmentError struct {
	Code    InstallmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InstallmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InstallmentError) Unwrap() error {
	return e.Err
}

// NewInstallmentError creates a new InstallmentError with the given code and message.
func NewInstallmentError(code InstallmentErrorCode, message string, err error) *InstallmentError {
	return &InstallmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
