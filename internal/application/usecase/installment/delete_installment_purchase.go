package installment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

// DeleteInstallmentPurchaseInput represents the input for deleting a purchase.
type DeleteInstallmentPurchaseInput struct {
	InstallmentID int64
}

// DeleteInstallmentPurchaseOutput represents the output of purchase deletion.
type DeleteInstallmentPurchaseOutput struct {
	DeletedTransactions int64
}

// DeleteInstallmentPurchaseUseCase removes a purchase together with its transactions.
type DeleteInstallmentPurchaseUseCase struct {
	installmentRepo adapter.InstallmentRepository
	statsCache      adapter.StatsCache
}

// NewDeleteInstallmentPurchaseUseCase creates a new DeleteInstallmentPurchaseUseCase instance.
func NewDeleteInstallmentPurchaseUseCase(installmentRepo adapter.InstallmentRepository, statsCache adapter.StatsCache) *DeleteInstallmentPurchaseUseCase {
	return &DeleteInstallmentPurchaseUseCase{
		installmentRepo: installmentRepo,
		statsCache:      statsCache,
	}
}

// Execute performs the deletion.
func (uc *DeleteInstallmentPurchaseUseCase) Execute(ctx context.Context, input DeleteInstallmentPurchaseInput) (*DeleteInstallmentPurchaseOutput, error) {
	deleted, err := uc.installmentRepo.DeleteWithTransactions(ctx, input.InstallmentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInstallmentNotFound) {
			return nil, domainerror.NewInstallmentError(
				domainerror.ErrCodeInstallmentNotFound,
				"installment purchase not found",
				domainerror.ErrInstallmentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to delete installment purchase: %w", err)
	}

	invalidateStats(ctx, uc.statsCache)

	slog.InfoContext(ctx, "installment purchase deleted",
		"installment_id", input.InstallmentID,
		"transactions", deleted,
	)

	return &DeleteInstallmentPurchaseOutput{
		DeletedTransactions: deleted,
	}, nil
}
