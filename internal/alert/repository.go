package alert

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Alert, error)
	FindByItemAndType(ctx context.Context, itemID string, alertType model.AlertType) (*model.Alert, error)
	ListByItem(ctx context.Context, itemID string) ([]model.Alert, error)
	// ListActive returns firing, enabled alerts only.
	ListActive(ctx context.Context) ([]model.Alert, error)
	Create(ctx context.Context, a *model.Alert) error
	Update(ctx context.Context, a *model.Alert) error

	WithTx(tx *sqlx.Tx) Repository
}
