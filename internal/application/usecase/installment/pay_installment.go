package installment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

// PayInstallmentInput represents the input for recording installment payments.
type PayInstallmentInput struct {
	InstallmentID int64
	// PaidInstallments sets the paid count directly. When nil, one more installment is paid.
	PaidInstallments *int
}

// PayInstallmentOutput represents the purchase progress after the payment.
type PayInstallmentOutput struct {
	Progress *ProgressOutput
}

// PayInstallmentUseCase records payment progress on an installment purchase.
type PayInstallmentUseCase struct {
	installmentRepo adapter.InstallmentRepository
	statsCache      adapter.StatsCache
}

// NewPayInstallmentUseCase creates a new PayInstallmentUseCase instance.
func NewPayInstallmentUseCase(installmentRepo adapter.InstallmentRepository, statsCache adapter.StatsCache) *PayInstallmentUseCase {
	return &PayInstallmentUseCase{
		installmentRepo: installmentRepo,
		statsCache:      statsCache,
	}
}

// Execute advances the paid count and invalidates cached statistics.
func (uc *PayInstallmentUseCase) Execute(ctx context.Context, input PayInstallmentInput) (*PayInstallmentOutput, error) {
	var (
		purchase *entity.Installment
		err      error
	)
	if input.PaidInstallments == nil {
		purchase, err = uc.payNext(ctx, input.InstallmentID)
	} else {
		purchase, err = uc.setPaid(ctx, input.InstallmentID, *input.PaidInstallments)
	}
	if err != nil {
		return nil, err
	}

	invalidateStats(ctx, uc.statsCache)

	slog.InfoContext(ctx, "installment progress updated",
		"installment_id", purchase.ID,
		"paid", purchase.CurrentInstallment,
		"count", purchase.InstallmentCount,
	)

	return &PayInstallmentOutput{
		Progress: newProgressOutput(purchase),
	}, nil
}

// payNext increments the paid count in the repository.
func (uc *PayInstallmentUseCase) payNext(ctx context.Context, id int64) (*entity.Installment, error) {
	purchase, err := uc.installmentRepo.IncrementProgress(ctx, id)
	switch {
	case err == nil:
		return purchase, nil
	case errors.Is(err, domainerror.ErrInstallmentNotFound):
		return nil, installmentNotFoundError()
	case errors.Is(err, domainerror.ErrInstallmentAlreadyCompleted):
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInstallmentCompleted,
			"every installment is already paid",
			domainerror.ErrInstallmentAlreadyCompleted,
		)
	default:
		return nil, fmt.Errorf("failed to update installment progress: %w", err)
	}
}

// setPaid overwrites the paid count with an absolute value.
func (uc *PayInstallmentUseCase) setPaid(ctx context.Context, id int64, paid int) (*entity.Installment, error) {
	purchase, err := uc.installmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrInstallmentNotFound) {
			return nil, installmentNotFoundError()
		}
		return nil, fmt.Errorf("failed to find installment purchase: %w", err)
	}

	if paid < 0 || paid > purchase.InstallmentCount {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidPaidInstallments,
			fmt.Sprintf("paid installments must be between 0 and %d", purchase.InstallmentCount),
			domainerror.ErrInvalidPaidInstallments,
		)
	}

	if err := uc.installmentRepo.UpdateProgress(ctx, purchase.ID, paid); err != nil {
		if errors.Is(err, domainerror.ErrInstallmentNotFound) {
			return nil, installmentNotFoundError()
		}
		return nil, fmt.Errorf("failed to update installment progress: %w", err)
	}
	purchase.CurrentInstallment = paid
	return purchase, nil
}

func installmentNotFoundError() error {
	return domainerror.NewInstallmentError(
		domainerror.ErrCodeInstallmentNotFound,
		"installment purchase not found",
		domainerror.ErrInstallmentNotFound,
	)
}
