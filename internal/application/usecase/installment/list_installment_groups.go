package installment

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	"github.com/finance-tracker/wallet-api/internal/domain/service"
)

// FilterInput holds the query options shared by the grouped listing and the statistics.
type FilterInput struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Type            *entity.TransactionType
	PaymentMethodID *int64
	CategoryID      *int64
}

func (f FilterInput) toTransactionFilter() adapter.TransactionFilter {
	filter := adapter.TransactionFilter{
		StartDate:       f.StartDate,
		EndDate:         f.EndDate,
		Type:            f.Type,
		PaymentMethodID: f.PaymentMethodID,
	}
	if f.CategoryID != nil {
		filter.CategoryIDs = []int64{*f.CategoryID}
	}
	return filter
}

// ListInstallmentGroupsInput represents the input for the grouped transaction listing.
type ListInstallmentGroupsInput struct {
	FilterInput
	Page  int
	Limit int
}

// ListInstallmentGroupsOutput represents one page of transactions split into
// installment groups and regular transactions.
type ListInstallmentGroupsOutput struct {
	InstallmentGroups   []*GroupOutput
	RegularTransactions []*transaction.TransactionOutput
	Pagination          transaction.PaginationOutput
}

// ListInstallmentGroupsUseCase groups a page of transactions by installment purchase.
type ListInstallmentGroupsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListInstallmentGroupsUseCase creates a new ListInstallmentGroupsUseCase instance.
func NewListInstallmentGroupsUseCase(transactionRepo adapter.TransactionRepository) *ListInstallmentGroupsUseCase {
	return &ListInstallmentGroupsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute loads the requested page and groups it.
// Groups reflect only the occurrences present on the page; their counts come from
// the purchase, so a group may hold fewer transactions than InstallmentCount.
func (uc *ListInstallmentGroupsUseCase) Execute(ctx context.Context, input ListInstallmentGroupsInput) (*ListInstallmentGroupsOutput, error) {
	page, limit := transaction.NormalizePagination(input.Page, input.Limit)

	result, err := uc.transactionRepo.FindByFilter(ctx, input.toTransactionFilter(), adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	grouping := service.GroupTransactionsByInstallment(result.Transactions)

	output := &ListInstallmentGroupsOutput{
		InstallmentGroups:   make([]*GroupOutput, len(grouping.InstallmentGroups)),
		RegularTransactions: make([]*transaction.TransactionOutput, 0, len(grouping.RegularTransactions)),
		Pagination: transaction.PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}

	for i, group := range grouping.InstallmentGroups {
		output.InstallmentGroups[i] = newGroupOutput(group)
	}
	for _, txn := range grouping.RegularTransactions {
		if txn == nil {
			continue
		}
		output.RegularTransactions = append(output.RegularTransactions, transaction.NewTransactionOutput(txn))
	}

	return output, nil
}
