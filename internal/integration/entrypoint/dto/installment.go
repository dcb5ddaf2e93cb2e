package dto

import (
	"github.com/finance-tracker/wallet-api/internal/application/usecase/installment"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
)

// CreateInstallmentRequest represents the request body for creating an installment purchase.
type CreateInstallmentRequest struct {
	Description      string  `json:"description" binding:"required,min=1,max=255"`
	TotalAmount      float64 `json:"total_amount" binding:"required,gt=0"`
	InstallmentCount int     `json:"installment_count" binding:"required"`
	PaidInstallments int     `json:"paid_installments,omitempty"`
	Type             string  `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID       *int64  `json:"category_id,omitempty"`
	PaymentMethodID  *int64  `json:"payment_method_id,omitempty"`
	FirstDueDate     string  `json:"first_due_date" binding:"required"`
	Notes            string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// PayInstallmentRequest represents the optional request body for recording payments.
// Without paid_installments one more installment is marked as paid.
type PayInstallmentRequest struct {
	PaidInstallments *int `json:"paid_installments,omitempty"`
}

// InstallmentGroupTransactionResponse is a transaction inside an installment group.
type InstallmentGroupTransactionResponse struct {
	TransactionResponse
	PositionLabel string `json:"position_label"`
}

// InstallmentGroupResponse represents an installment group in API responses.
type InstallmentGroupResponse struct {
	InstallmentID         int64                                 `json:"installment_id"`
	Description           string                                `json:"description"`
	TotalAmount           string                                `json:"total_amount"`
	InstallmentCount      int                                   `json:"installment_count"`
	PaidInstallments      int                                   `json:"paid_installments"`
	RemainingInstallments int                                   `json:"remaining_installments"`
	IsCompleted           bool                                  `json:"is_completed"`
	Type                  string                                `json:"type"`
	Category              *TransactionCategoryResponse          `json:"category,omitempty"`
	PaymentMethod         *TransactionPaymentMethodResponse     `json:"payment_method,omitempty"`
	Transactions          []InstallmentGroupTransactionResponse `json:"transactions"`
}

// InstallmentGroupListResponse represents one page split into groups and regular transactions.
type InstallmentGroupListResponse struct {
	InstallmentGroups   []InstallmentGroupResponse    `json:"installment_groups"`
	RegularTransactions []TransactionResponse         `json:"regular_transactions"`
	Pagination          TransactionPaginationResponse `json:"pagination"`
}

// InstallmentStatsResponse represents installment statistics in API responses.
type InstallmentStatsResponse struct {
	TotalGroups          int    `json:"total_groups"`
	CompletedGroups      int    `json:"completed_groups"`
	ActiveGroups         int    `json:"active_groups"`
	TotalAmount          string `json:"total_amount"`
	PaidAmount           string `json:"paid_amount"`
	RemainingAmount      string `json:"remaining_amount"`
	CompletionPercentage string `json:"completion_percentage"`
}

// InstallmentProgressResponse represents purchase progress after a payment.
type InstallmentProgressResponse struct {
	InstallmentID         int64 `json:"installment_id"`
	InstallmentCount      int   `json:"installment_count"`
	PaidInstallments      int   `json:"paid_installments"`
	RemainingInstallments int   `json:"remaining_installments"`
	IsCompleted           bool  `json:"is_completed"`
}

// DeleteInstallmentResponse represents the response for purchase deletion.
type DeleteInstallmentResponse struct {
	DeletedTransactions int64 `json:"deleted_transactions"`
}

// ToInstallmentGroupResponse converts a GroupOutput to its API shape.
func ToInstallmentGroupResponse(group *installment.GroupOutput) InstallmentGroupResponse {
	response := InstallmentGroupResponse{
		InstallmentID:         group.InstallmentID,
		Description:           group.Description,
		TotalAmount:           group.TotalAmount.StringFixed(2),
		InstallmentCount:      group.InstallmentCount,
		PaidInstallments:      group.PaidInstallments,
		RemainingInstallments: group.RemainingInstallments,
		IsCompleted:           group.IsCompleted,
		Type:                  string(group.Type),
		Transactions:          make([]InstallmentGroupTransactionResponse, len(group.Transactions)),
	}

	if group.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    group.Category.ID,
			Name:  group.Category.Name,
			Color: group.Category.Color,
			Icon:  group.Category.Icon,
			Type:  string(group.Category.Type),
		}
	}
	if group.PaymentMethod != nil {
		response.PaymentMethod = &TransactionPaymentMethodResponse{
			ID:    group.PaymentMethod.ID,
			Name:  group.PaymentMethod.Name,
			Type:  string(group.PaymentMethod.Type),
			Color: group.PaymentMethod.Color,
		}
	}
	for i, txn := range group.Transactions {
		response.Transactions[i] = InstallmentGroupTransactionResponse{
			TransactionResponse: ToTransactionResponse(txn.TransactionOutput),
			PositionLabel:       txn.PositionLabel,
		}
	}

	return response
}

// ToInstallmentGroupListResponse converts a ListInstallmentGroupsOutput to its API shape.
func ToInstallmentGroupListResponse(output *installment.ListInstallmentGroupsOutput) InstallmentGroupListResponse {
	groups := make([]InstallmentGroupResponse, len(output.InstallmentGroups))
	for i, group := range output.InstallmentGroups {
		groups[i] = ToInstallmentGroupResponse(group)
	}

	return InstallmentGroupListResponse{
		InstallmentGroups:   groups,
		RegularTransactions: toTransactionResponses(output.RegularTransactions),
		Pagination:          toPaginationResponse(output.Pagination),
	}
}

// ToInstallmentStatsResponse converts statistics to their API shape.
// Amounts keep two decimal places and the percentage is rounded to two places.
func ToInstallmentStatsResponse(stats *installment.StatsOutput) InstallmentStatsResponse {
	return InstallmentStatsResponse{
		TotalGroups:          stats.TotalGroups,
		CompletedGroups:      stats.CompletedGroups,
		ActiveGroups:         stats.ActiveGroups,
		TotalAmount:          stats.TotalAmount.StringFixed(2),
		PaidAmount:           stats.PaidAmount.StringFixed(2),
		RemainingAmount:      stats.RemainingAmount.StringFixed(2),
		CompletionPercentage: stats.CompletionPercentage.StringFixed(2),
	}
}

// ToInstallmentProgressResponse converts progress to its API shape.
func ToInstallmentProgressResponse(progress *installment.ProgressOutput) InstallmentProgressResponse {
	return InstallmentProgressResponse{
		InstallmentID:         progress.InstallmentID,
		InstallmentCount:      progress.InstallmentCount,
		PaidInstallments:      progress.PaidInstallments,
		RemainingInstallments: progress.RemainingInstallments,
		IsCompleted:           progress.IsCompleted,
	}
}

func toTransactionResponses(transactions []*transaction.TransactionOutput) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, txn := range transactions {
		responses[i] = ToTransactionResponse(txn)
	}
	return responses
}
