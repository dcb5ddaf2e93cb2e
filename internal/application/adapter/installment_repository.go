package adapter

import (
	"context"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// InstallmentRepository defines persistence operations for installment purchases.
type InstallmentRepository interface {
	// CreateWithTransactions stores the purchase and its occurrences atomically.
	// IDs are assigned to the purchase and to every transaction, and each
	// transaction is linked to the purchase.
	CreateWithTransactions(ctx context.Context, installment *entity.Installment, transactions []*entity.Transaction) error

	// FindByID retrieves an installment purchase by ID.
	FindByID(ctx context.Context, id int64) (*entity.Installment, error)

	// UpdateProgress sets the number of installments reported as paid.
	UpdateProgress(ctx context.Context, id int64, currentInstallment int) error

	// IncrementProgress atomically marks one more installment as paid and returns the
	// updated purchase. Returns ErrInstallmentAlreadyCompleted when nothing is left to pay.
	IncrementProgress(ctx context.Context, id int64) (*entity.Installment, error)

	// DeleteWithTransactions soft-deletes the purchase and all of its transactions.
	// Returns the number of transactions removed.
	DeleteWithTransactions(ctx context.Context, id int64) (int64, error)
}
