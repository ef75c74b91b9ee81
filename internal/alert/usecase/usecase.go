package usecase

import (
	"context"
	"time"

	"github.com/pantryos/inventory-service/internal/alert"
	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type alertUseCase struct {
	repo   alert.Repository
	logger logger.ZapLogger
}

func NewAlertUseCase(repo alert.Repository, log logger.ZapLogger) alert.UseCase {
	return &alertUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *alertUseCase) ListActive(ctx context.Context) ([]model.Alert, error) {
	return uc.repo.ListActive(ctx)
}

func (uc *alertUseCase) ListForItem(ctx context.Context, itemID string) ([]model.Alert, error) {
	return uc.repo.ListByItem(ctx, itemID)
}

func (uc *alertUseCase) Acknowledge(ctx context.Context, alertID string) (*model.Alert, error) {
	a, err := uc.repo.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("alert %s not found", alertID)
	}

	// Repeat acknowledgements keep the first timestamp.
	if a.AcknowledgedAt != nil {
		return a, nil
	}

	now := time.Now()
	a.AcknowledgedAt = &now
	a.UpdatedAt = now
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *alertUseCase) SetEnabled(ctx context.Context, alertID string, enabled bool) (*model.Alert, error) {
	a, err := uc.repo.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("alert %s not found", alertID)
	}
	if a.IsEnabled == enabled {
		return a, nil
	}

	a.IsEnabled = enabled
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
