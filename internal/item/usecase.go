package item

import (
	"context"

	"github.com/pantryos/inventory-service/internal/item/dto"
	"github.com/pantryos/inventory-service/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id string) error

	// ApplyMutation runs one stock mutation: quantity change, history append
	// and alert re-evaluation committed atomically.
	ApplyMutation(ctx context.Context, input *dto.MutateItemInput) (*dto.MutationResult, error)
	ListHistory(ctx context.Context, itemID string) ([]model.ItemHistory, error)
}
