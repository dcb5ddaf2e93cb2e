package adapter

import (
	"context"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// PaymentMethodRepository defines the interface for payment method persistence operations.
type PaymentMethodRepository interface {
	// Create creates a new payment method in the database.
	Create(ctx context.Context, paymentMethod *entity.PaymentMethod) error

	// FindByID retrieves a payment method by its ID.
	FindByID(ctx context.Context, id int64) (*entity.PaymentMethod, error)

	// FindAll retrieves all payment methods ordered by name.
	FindAll(ctx context.Context) ([]*entity.PaymentMethod, error)

	// ExistsByName checks if a payment method with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}
