package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/internal/shoppinglist"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type memListRepo struct {
	entries []model.ShoppingListItem
}

func (m *memListRepo) WithTx(tx *sqlx.Tx) shoppinglist.Repository { return m }

func (m *memListRepo) FindByID(_ context.Context, id string) (*model.ShoppingListItem, error) {
	for _, e := range m.entries {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memListRepo) FindUncheckedByItem(_ context.Context, itemID string) (*model.ShoppingListItem, error) {
	for _, e := range m.entries {
		if e.ItemID != nil && *e.ItemID == itemID && !e.IsChecked {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memListRepo) ListUnchecked(_ context.Context) ([]model.ShoppingListItem, error) {
	var out []model.ShoppingListItem
	for _, e := range m.entries {
		if !e.IsChecked {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memListRepo) Create(_ context.Context, e *model.ShoppingListItem) error {
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memListRepo) Update(_ context.Context, e *model.ShoppingListItem) error {
	for i := range m.entries {
		if m.entries[i].ID == e.ID {
			m.entries[i] = *e
			return nil
		}
	}
	return nil
}

func TestCreateManual(t *testing.T) {
	repo := &memListRepo{}
	uc := NewShoppingListUseCase(repo, logger.NewNop())

	entry, err := uc.CreateManual(context.Background(), &shoppinglist.CreateEntryInput{
		Name: "Dish soap", Quantity: 2, Unit: "pcs", Priority: 9, Notes: "lemon if available",
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, entry.Priority, "priority clamps to 5")
	assert.Nil(t, entry.ItemID, "manual entries have no inventory link")
	assert.Equal(t, "lemon if available", *entry.Notes)

	_, err = uc.CreateManual(context.Background(), &shoppinglist.CreateEntryInput{
		Name: "Dish soap", Quantity: 0, Unit: "pcs",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateManual_PriorityFloor(t *testing.T) {
	repo := &memListRepo{}
	uc := NewShoppingListUseCase(repo, logger.NewNop())

	entry, err := uc.CreateManual(context.Background(), &shoppinglist.CreateEntryInput{
		Name: "Sponges", Quantity: 1, Unit: "pcs", Priority: 0,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, entry.Priority)
	assert.Nil(t, entry.Notes)
}

func TestCheck_IsTerminalAndIdempotent(t *testing.T) {
	repo := &memListRepo{}
	uc := NewShoppingListUseCase(repo, logger.NewNop())

	created, err := uc.CreateManual(context.Background(), &shoppinglist.CreateEntryInput{
		Name: "Butter", Quantity: 1, Unit: "pcs",
	})
	assert.NoError(t, err)

	checked, err := uc.Check(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.True(t, checked.IsChecked)
	assert.NotNil(t, checked.CheckedAt)
	firstCheckedAt := *checked.CheckedAt

	again, err := uc.Check(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.True(t, again.IsChecked)
	assert.Equal(t, firstCheckedAt, *again.CheckedAt, "re-checking must not move the timestamp")

	open, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, open)
}

func TestCheck_NotFound(t *testing.T) {
	uc := NewShoppingListUseCase(&memListRepo{}, logger.NewNop())

	_, err := uc.Check(context.Background(), uuid.New().String())
	assert.True(t, apperr.IsNotFound(err))
}

func TestList_OnlyOpenEntries(t *testing.T) {
	now := time.Now()
	itemID := uuid.New().String()
	repo := &memListRepo{entries: []model.ShoppingListItem{
		{ID: uuid.New().String(), Name: "Rice", Quantity: 1, Unit: "kg", Priority: 3, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Salt", Quantity: 1, Unit: "pcs", Priority: 1, ItemID: &itemID, IsChecked: true, CheckedAt: &now, CreatedAt: now},
	}}
	uc := NewShoppingListUseCase(repo, logger.NewNop())

	open, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, "Rice", open[0].Name)
}
