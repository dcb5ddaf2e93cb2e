// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	CategoryType *entity.CategoryType // Optional filter by category type
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID        int64
	Name      string
	Color     string
	Icon      string
	Type      entity.CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindAll(ctx, input.CategoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(categories)),
	}
	for i, cat := range categories {
		output.Categories[i] = toCategoryOutput(cat)
	}
	return output, nil
}

func toCategoryOutput(cat *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:        cat.ID,
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		Type:      cat.Type,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}
