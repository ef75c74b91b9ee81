package shoppinglist

import (
	"context"

	"github.com/pantryos/inventory-service/internal/model"
)

type CreateEntryInput struct {
	Name     string
	Quantity float64
	Unit     string
	Priority int
	Notes    string
}

type UseCase interface {
	// List returns unchecked entries ordered by priority descending.
	List(ctx context.Context) ([]model.ShoppingListItem, error)
	// CreateManual adds a hand-written entry with no inventory item link.
	CreateManual(ctx context.Context, input *CreateEntryInput) (*model.ShoppingListItem, error)
	// Check marks an entry bought. Checked is terminal; re-checking is a
	// no-op. Restocking the linked item still has to go through the ledger.
	Check(ctx context.Context, id string) (*model.ShoppingListItem, error)
}
