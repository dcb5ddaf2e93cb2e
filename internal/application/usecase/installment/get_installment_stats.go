package installment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	"github.com/finance-tracker/wallet-api/internal/domain/service"
)

const dateKeyLayout = "2006-01-02"

// GetInstallmentStatsInput represents the input for installment statistics.
type GetInstallmentStatsInput struct {
	FilterInput
}

// GetInstallmentStatsOutput represents installment statistics.
type GetInstallmentStatsOutput struct {
	Stats  *StatsOutput
	Cached bool
}

// GetInstallmentStatsUseCase summarizes every installment purchase matching a filter.
type GetInstallmentStatsUseCase struct {
	transactionRepo adapter.TransactionRepository
	statsCache      adapter.StatsCache
}

// NewGetInstallmentStatsUseCase creates a new GetInstallmentStatsUseCase instance.
func NewGetInstallmentStatsUseCase(transactionRepo adapter.TransactionRepository, statsCache adapter.StatsCache) *GetInstallmentStatsUseCase {
	return &GetInstallmentStatsUseCase{
		transactionRepo: transactionRepo,
		statsCache:      statsCache,
	}
}

// Execute returns cached statistics when available, otherwise loads every matching
// installment transaction and computes them.
func (uc *GetInstallmentStatsUseCase) Execute(ctx context.Context, input GetInstallmentStatsInput) (*GetInstallmentStatsOutput, error) {
	key := statsCacheKey(input.FilterInput)

	lookup, cacheErr := uc.statsCache.Get(ctx, key)
	if cacheErr != nil {
		slog.WarnContext(ctx, "installment stats cache read failed", "error", cacheErr, "key", key)
	}
	if lookup.Hit() {
		return &GetInstallmentStatsOutput{Stats: newStatsOutput(lookup.Stats), Cached: true}, nil
	}

	filter := input.toTransactionFilter()
	filter.InstallmentOnly = true

	transactions, err := uc.loadAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := service.CalculateInstallmentStats(transactions)

	// Without a version from the read, a write could land in a newer generation.
	if cacheErr == nil {
		if err := uc.statsCache.Set(ctx, key, lookup.Version, stats); err != nil {
			slog.WarnContext(ctx, "installment stats cache write failed", "error", err, "key", key)
		}
	}

	return &GetInstallmentStatsOutput{Stats: newStatsOutput(stats)}, nil
}

// loadAll walks every page of the filtered listing.
func (uc *GetInstallmentStatsUseCase) loadAll(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var transactions []*entity.Transaction

	for page := 1; ; page++ {
		result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{
			Page:  page,
			Limit: transaction.MaxLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load installment transactions: %w", err)
		}
		transactions = append(transactions, result.Transactions...)

		if page >= result.TotalPages || len(result.Transactions) == 0 {
			return transactions, nil
		}
	}
}

// statsCacheKey renders the filter as a stable key, e.g.
// "start=2024-01-01|end=|type=expense|pm=3|cat=".
func statsCacheKey(f FilterInput) string {
	var sb strings.Builder

	sb.WriteString("start=")
	if f.StartDate != nil {
		sb.WriteString(f.StartDate.Format(dateKeyLayout))
	}
	sb.WriteString("|end=")
	if f.EndDate != nil {
		sb.WriteString(f.EndDate.Format(dateKeyLayout))
	}
	sb.WriteString("|type=")
	if f.Type != nil {
		sb.WriteString(string(*f.Type))
	}
	sb.WriteString("|pm=")
	if f.PaymentMethodID != nil {
		sb.WriteString(strconv.FormatInt(*f.PaymentMethodID, 10))
	}
	sb.WriteString("|cat=")
	if f.CategoryID != nil {
		sb.WriteString(strconv.FormatInt(*f.CategoryID, 10))
	}

	return sb.String()
}
