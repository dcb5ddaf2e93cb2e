package adapter

import (
	"context"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// FindAll retrieves all categories, optionally filtered by type.
	FindAll(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName checks if a category with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}
