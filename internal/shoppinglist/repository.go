package shoppinglist

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.ShoppingListItem, error)
	// FindUncheckedByItem returns the open entry linked to an inventory
	// item, nil when there is none. At most one such entry exists per item.
	FindUncheckedByItem(ctx context.Context, itemID string) (*model.ShoppingListItem, error)
	ListUnchecked(ctx context.Context) ([]model.ShoppingListItem, error)
	Create(ctx context.Context, entry *model.ShoppingListItem) error
	Update(ctx context.Context, entry *model.ShoppingListItem) error

	WithTx(tx *sqlx.Tx) Repository
}
