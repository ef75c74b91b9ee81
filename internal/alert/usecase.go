package alert

import (
	"context"

	"github.com/pantryos/inventory-service/internal/model"
)

type UseCase interface {
	// ListActive returns firing, enabled alerts for the externally visible
	// alerts view. Disabled alerts keep their state but never surface here.
	ListActive(ctx context.Context) ([]model.Alert, error)
	ListForItem(ctx context.Context, itemID string) ([]model.Alert, error)
	Acknowledge(ctx context.Context, alertID string) (*model.Alert, error)
	SetEnabled(ctx context.Context, alertID string, enabled bool) (*model.Alert, error)
}
