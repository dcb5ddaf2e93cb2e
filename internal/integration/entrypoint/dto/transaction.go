package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// DateLayout is the date format used in requests and responses.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date            string  `json:"date" binding:"required"`
	Description     string  `json:"description" binding:"required,min=1,max=255"`
	Amount          float64 `json:"amount" binding:"required"`
	Type            string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID      *int64  `json:"category_id,omitempty"`
	PaymentMethodID *int64  `json:"payment_method_id,omitempty"`
	Notes           string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionPaymentMethodResponse represents payment method information in transaction response.
type TransactionPaymentMethodResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// TransactionInstallmentResponse is the installment sub-record of a transaction.
type TransactionInstallmentResponse struct {
	ID                 int64 `json:"id"`
	InstallmentCount   *int  `json:"installment_count,omitempty"`
	CurrentInstallment *int  `json:"current_installment,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                int64                             `json:"id"`
	Date              string                            `json:"date"`
	Description       string                            `json:"description"`
	Amount            string                            `json:"amount"`
	Type              string                            `json:"type"`
	CategoryID        *int64                            `json:"category_id,omitempty"`
	Category          *TransactionCategoryResponse      `json:"category,omitempty"`
	PaymentMethodID   *int64                            `json:"payment_method_id,omitempty"`
	PaymentMethod     *TransactionPaymentMethodResponse `json:"payment_method,omitempty"`
	Notes             string                            `json:"notes"`
	InstallmentID     *int64                            `json:"installment_id,omitempty"`
	InstallmentNumber *int                              `json:"installment_number,omitempty"`
	Installment       *TransactionInstallmentResponse   `json:"installment,omitempty"`
	CreatedAt         time.Time                         `json:"created_at"`
	UpdatedAt         time.Time                         `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:                txn.ID,
		Date:              txn.Date.Format(DateLayout),
		Description:       txn.Description,
		Amount:            txn.Amount.String(),
		Type:              string(txn.Type),
		CategoryID:        txn.CategoryID,
		PaymentMethodID:   txn.PaymentMethodID,
		Notes:             txn.Notes,
		InstallmentID:     txn.InstallmentID,
		InstallmentNumber: txn.InstallmentNumber,
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.UpdatedAt,
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID,
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}
	if txn.PaymentMethod != nil {
		response.PaymentMethod = &TransactionPaymentMethodResponse{
			ID:    txn.PaymentMethod.ID,
			Name:  txn.PaymentMethod.Name,
			Type:  string(txn.PaymentMethod.Type),
			Color: txn.PaymentMethod.Color,
		}
	}
	if txn.InstallmentID != nil {
		response.Installment = &TransactionInstallmentResponse{
			ID:                 *txn.InstallmentID,
			InstallmentCount:   txn.InstallmentCount,
			CurrentInstallment: txn.CurrentInstallment,
		}
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination:   toPaginationResponse(output.Pagination),
		Totals: TransactionTotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal.String(),
			ExpenseTotal: output.Totals.ExpenseTotal.String(),
			NetTotal:     output.Totals.NetTotal.String(),
		},
	}
}

// ToEntity converts a transaction in API shape back to a domain entity.
// It is used by tooling that consumes exported transaction lists.
func (r TransactionResponse) ToEntity() (*entity.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %d: invalid amount %q: %w", r.ID, r.Amount, err)
	}

	var date time.Time
	if r.Date != "" {
		date, err = time.Parse(DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: invalid date %q: %w", r.ID, r.Date, err)
		}
	}

	txn := &entity.Transaction{
		ID:                r.ID,
		Date:              date,
		Description:       r.Description,
		Amount:            amount.Abs(),
		Type:              entity.TransactionType(r.Type),
		CategoryID:        r.CategoryID,
		PaymentMethodID:   r.PaymentMethodID,
		Notes:             r.Notes,
		InstallmentID:     r.InstallmentID,
		InstallmentNumber: r.InstallmentNumber,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if r.Category != nil {
		txn.Category = &entity.Category{
			ID:    r.Category.ID,
			Name:  r.Category.Name,
			Color: r.Category.Color,
			Icon:  r.Category.Icon,
			Type:  entity.CategoryType(r.Category.Type),
		}
	}
	if r.PaymentMethod != nil {
		txn.PaymentMethod = &entity.PaymentMethod{
			ID:    r.PaymentMethod.ID,
			Name:  r.PaymentMethod.Name,
			Type:  entity.PaymentMethodType(r.PaymentMethod.Type),
			Color: r.PaymentMethod.Color,
		}
	}
	if r.Installment != nil {
		txn.Installment = &entity.InstallmentRef{
			ID:                 r.Installment.ID,
			InstallmentCount:   r.Installment.InstallmentCount,
			CurrentInstallment: r.Installment.CurrentInstallment,
		}
		if txn.InstallmentID == nil {
			id := r.Installment.ID
			txn.InstallmentID = &id
		}
	}

	return txn, nil
}

func toPaginationResponse(p transaction.PaginationOutput) TransactionPaginationResponse {
	return TransactionPaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}
