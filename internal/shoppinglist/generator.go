package shoppinglist

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pantryos/inventory-service/internal/model"
)

// minReplenishmentUnit is the floor for a generated entry's quantity so an
// item sitting exactly on its minimum still produces a usable suggestion.
const minReplenishmentUnit = 1.0

// EnsureEntry upserts the shopping-list entry for an item whose LOW_STOCK
// alert just started firing. It is called inside the mutation transaction on
// the rising edge only. An existing unchecked entry for the item wins; no
// duplicate is created.
func EnsureEntry(ctx context.Context, repo Repository, it *model.Item, now time.Time) (*model.ShoppingListItem, error) {
	existing, err := repo.FindUncheckedByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	quantity := minReplenishmentUnit
	if it.MinimumStock != nil {
		if shortfall := *it.MinimumStock - it.Quantity; shortfall > quantity {
			quantity = shortfall
		}
	}

	itemID := it.ID
	entry := &model.ShoppingListItem{
		ID:        uuid.New().String(),
		Name:      it.Name,
		Quantity:  quantity,
		Unit:      it.Unit,
		Priority:  severity(it),
		ItemID:    &itemID,
		CreatedAt: now,
	}
	if err := repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// severity ranks how far below its minimum the item has fallen, 1 (barely
// under) to 5 (empty).
func severity(it *model.Item) int {
	if it.MinimumStock == nil || *it.MinimumStock <= 0 {
		return 1
	}
	shortfall := (*it.MinimumStock - it.Quantity) / *it.MinimumStock
	if shortfall < 0 {
		shortfall = 0
	}
	if shortfall > 1 {
		shortfall = 1
	}
	return 1 + int(math.Round(shortfall*4))
}
