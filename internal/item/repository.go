package item

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/item/dto"
	"github.com/pantryos/inventory-service/internal/model"
)

type Repository interface {
	// Items
	FindByID(ctx context.Context, id string) (*model.Item, error)
	FindAll(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error)
	Create(ctx context.Context, it *model.Item) error
	// UpdateVersioned persists the item guarded by the version it was read
	// at and returns the quantity the database actually stored. The bool is
	// false when the guard missed (concurrent writer won).
	UpdateVersioned(ctx context.Context, it *model.Item, readVersion int64) (float64, bool, error)
	SoftDelete(ctx context.Context, id string, now time.Time) (bool, error)

	// History ledger
	AppendHistory(ctx context.Context, h *model.ItemHistory) error
	ListHistory(ctx context.Context, itemID string) ([]model.ItemHistory, error)

	// WithTx returns a copy of the repository bound to tx so item writes can
	// share a transaction with alert and shopping-list writes.
	WithTx(tx *sqlx.Tx) Repository
}
