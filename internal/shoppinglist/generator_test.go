package shoppinglist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/pantryos/inventory-service/internal/model"
)

type memListRepo struct {
	entries []model.ShoppingListItem
}

func (m *memListRepo) WithTx(tx *sqlx.Tx) Repository { return m }

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

func fptr(v float64) *float64 { return &v }

func lowItem(quantity float64, minStock *float64) *model.Item {
	return &model.Item{
		BaseModel:    model.BaseModel{ID: uuid.New().String()},
		Name:         "Flour",
		Quantity:     quantity,
		Unit:         "kg",
		MinimumStock: minStock,
		IsActive:     true,
	}
}

func TestEnsureEntry_QuantityCoversShortfall(t *testing.T) {
	repo := &memListRepo{}
	it := lowItem(2, fptr(10))

	entry, err := EnsureEntry(context.Background(), repo, it, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, "Flour", entry.Name)
	assert.Equal(t, "kg", entry.Unit)
	assert.Equal(t, 8.0, entry.Quantity)
	assert.Equal(t, it.ID, *entry.ItemID)
	assert.False(t, entry.IsChecked)
}

func TestEnsureEntry_QuantityFloor(t *testing.T) {
	repo := &memListRepo{}
	it := lowItem(5, fptr(5)) // exactly on the minimum, shortfall 0

	entry, err := EnsureEntry(context.Background(), repo, it, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 1.0, entry.Quantity)
}

func TestEnsureEntry_NoDuplicateWhileOpen(t *testing.T) {
	repo := &memListRepo{}
	it := lowItem(2, fptr(10))
	now := time.Now()

	first, err := EnsureEntry(context.Background(), repo, it, now)
	assert.NoError(t, err)

	second, err := EnsureEntry(context.Background(), repo, it, now.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.entries, 1)
}

func TestEnsureEntry_NewEntryAfterCheck(t *testing.T) {
	repo := &memListRepo{}
	it := lowItem(2, fptr(10))
	now := time.Now()

	first, err := EnsureEntry(context.Background(), repo, it, now)
	assert.NoError(t, err)

	first.IsChecked = true
	first.CheckedAt = &now
	assert.NoError(t, repo.Update(context.Background(), first))

	second, err := EnsureEntry(context.Background(), repo, it, now.Add(time.Hour))
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.entries, 2)
}

func TestSeverity(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		minStock *float64
		want     int
	}{
		{"no minimum", 0, nil, 1},
		{"on the minimum", 10, fptr(10), 1},
		{"quarter short", 7.5, fptr(10), 2},
		{"half short", 5, fptr(10), 3},
		{"three quarters short", 2.5, fptr(10), 4},
		{"empty", 0, fptr(10), 5},
		{"above minimum clamps low", 12, fptr(10), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := lowItem(tc.quantity, tc.minStock)
			assert.Equal(t, tc.want, severity(it))
		})
	}
}
