package category

import (
	"context"

	"github.com/pantryos/inventory-service/internal/model"
)

type CreateCategoryInput struct {
	Name      string
	Icon      string
	Color     string
	SortOrder int
}

type UseCase interface {
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListActive(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*model.Category, error)
	// Deactivate soft-deactivates a category. Categories referenced by items
	// are never deleted outright.
	Deactivate(ctx context.Context, id string) (*model.Category, error)
}
