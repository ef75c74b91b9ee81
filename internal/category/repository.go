package category

import (
	"context"

	"github.com/pantryos/inventory-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindActive(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	// CountItems reports how many non-deleted items reference the category.
	CountItems(ctx context.Context, categoryID string) (int, error)
}
