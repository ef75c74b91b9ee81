package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/internal/shoppinglist"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type shoppingListUseCase struct {
	repo   shoppinglist.Repository
	logger logger.ZapLogger
}

func NewShoppingListUseCase(repo shoppinglist.Repository, log logger.ZapLogger) shoppinglist.UseCase {
	return &shoppingListUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *shoppingListUseCase) List(ctx context.Context) ([]model.ShoppingListItem, error) {
	return uc.repo.ListUnchecked(ctx)
}

func (uc *shoppingListUseCase) CreateManual(ctx context.Context, input *shoppinglist.CreateEntryInput) (*model.ShoppingListItem, error) {
	if input.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}

	priority := input.Priority
	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}

	var notes *string
	if input.Notes != "" {
		notes = &input.Notes
	}

	entry := &model.ShoppingListItem{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		Priority:  priority,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *shoppingListUseCase) Check(ctx context.Context, id string) (*model.ShoppingListItem, error) {
	entry, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperr.NotFound("shopping list entry %s not found", id)
	}
	if entry.IsChecked {
		return entry, nil
	}

	now := time.Now()
	entry.IsChecked = true
	entry.CheckedAt = &now
	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
