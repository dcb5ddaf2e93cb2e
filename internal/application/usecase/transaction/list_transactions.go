package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 20
	// MaxLimit is the largest page size a caller can request.
	MaxLimit = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	StartDate       *time.Time
	EndDate         *time.Time
	CategoryIDs     []int64
	PaymentMethodID *int64
	Type            *entity.TransactionType
	Search          string
	Page            int
	Limit           int
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
// The page and the totals are fetched concurrently; a totals failure is logged
// and reported as zero totals rather than failing the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	page, limit := NormalizePagination(input.Page, input.Limit)

	filter := adapter.TransactionFilter{
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		CategoryIDs:     input.CategoryIDs,
		PaymentMethodID: input.PaymentMethodID,
		Type:            input.Type,
		Search:          input.Search,
	}
	pagination := adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	}

	var (
		result *adapter.TransactionListResult
		totals *adapter.TransactionTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = uc.transactionRepo.FindByFilter(gctx, filter, pagination)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = uc.transactionRepo.GetTotals(gctx, filter)
		if err != nil {
			slog.WarnContext(ctx, "failed to compute transaction totals", "error", err)
			totals = &adapter.TransactionTotals{
				IncomeTotal:  decimal.Zero,
				ExpenseTotal: decimal.Zero,
				NetTotal:     decimal.Zero,
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			NetTotal:     totals.NetTotal,
		},
	}

	for i, txn := range result.Transactions {
		output.Transactions[i] = NewTransactionOutput(txn)
	}

	return output, nil
}
