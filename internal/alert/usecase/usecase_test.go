package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/pantryos/inventory-service/internal/alert"
	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type memAlertRepo struct {
	alerts map[string]model.Alert // keyed by id
}

func newMemAlertRepo(seed ...model.Alert) *memAlertRepo {
	m := &memAlertRepo{alerts: map[string]model.Alert{}}
	for _, a := range seed {
		m.alerts[a.ID] = a
	}
	return m
}

func (m *memAlertRepo) WithTx(tx *sqlx.Tx) alert.Repository { return m }

func (m *memAlertRepo) FindByID(_ context.Context, id string) (*model.Alert, error) {
	a, ok := m.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (m *memAlertRepo) FindByItemAndType(_ context.Context, itemID string, t model.AlertType) (*model.Alert, error) {
	for _, a := range m.alerts {
		if a.ItemID == itemID && a.Type == t {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAlertRepo) ListByItem(_ context.Context, itemID string) ([]model.Alert, error) {
	var out []model.Alert
	for _, a := range m.alerts {
		if a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAlertRepo) ListActive(_ context.Context) ([]model.Alert, error) {
	var out []model.Alert
	for _, a := range m.alerts {
		if a.Firing && a.IsEnabled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAlertRepo) Create(_ context.Context, a *model.Alert) error {
	m.alerts[a.ID] = *a
	return nil
}

func (m *memAlertRepo) Update(_ context.Context, a *model.Alert) error {
	m.alerts[a.ID] = *a
	return nil
}

func firingAlert() model.Alert {
	now := time.Now()
	return model.Alert{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ItemID:          uuid.New().String(),
		Type:            model.AlertLowStock,
		IsEnabled:       true,
		Firing:          true,
		LastTriggeredAt: &now,
	}
}

func TestAcknowledge(t *testing.T) {
	seed := firingAlert()
	repo := newMemAlertRepo(seed)
	uc := NewAlertUseCase(repo, logger.NewNop())

	acked, err := uc.Acknowledge(context.Background(), seed.ID)
	assert.NoError(t, err)
	assert.NotNil(t, acked.AcknowledgedAt)
	first := *acked.AcknowledgedAt

	again, err := uc.Acknowledge(context.Background(), seed.ID)
	assert.NoError(t, err)
	assert.Equal(t, first, *again.AcknowledgedAt, "repeat acknowledgements keep the first timestamp")

	_, err = uc.Acknowledge(context.Background(), uuid.New().String())
	assert.True(t, apperr.IsNotFound(err))
}

func TestSetEnabled(t *testing.T) {
	seed := firingAlert()
	repo := newMemAlertRepo(seed)
	uc := NewAlertUseCase(repo, logger.NewNop())

	disabled, err := uc.SetEnabled(context.Background(), seed.ID, false)
	assert.NoError(t, err)
	assert.False(t, disabled.IsEnabled)
	assert.True(t, disabled.Firing, "disabling must not touch the firing state")

	active, err := uc.ListActive(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, active)

	enabled, err := uc.SetEnabled(context.Background(), seed.ID, true)
	assert.NoError(t, err)
	assert.True(t, enabled.IsEnabled)

	active, err = uc.ListActive(context.Background())
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = uc.SetEnabled(context.Background(), uuid.New().String(), false)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListForItem(t *testing.T) {
	a := firingAlert()
	b := firingAlert()
	repo := newMemAlertRepo(a, b)
	uc := NewAlertUseCase(repo, logger.NewNop())

	got, err := uc.ListForItem(context.Background(), a.ItemID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}
