package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantryos/inventory-service/internal/model"
)

// Decision is the outcome of evaluating one alert type against an item
// snapshot.
type Decision struct {
	Type       model.AlertType
	Firing     bool
	RisingEdge bool // not-firing -> firing transition in this evaluation
	Alert      *model.Alert
}

// Evaluator derives alert state from an item snapshot. It runs inside the
// mutation transaction, so the repository handed to Evaluate must be bound to
// that transaction.
type Evaluator struct {
	expiryWindowDays int
}

func NewEvaluator(expiryWindowDays int) *Evaluator {
	return &Evaluator{expiryWindowDays: expiryWindowDays}
}

// Evaluate recomputes every alert type for the item. Rows are created lazily
// on the first firing evaluation; a rising edge stamps last_triggered_at and
// clears the acknowledgement; a falling edge keeps the row and its
// acknowledgement; no transition means no write. Evaluating the same snapshot
// twice is a no-op the second time.
func (e *Evaluator) Evaluate(ctx context.Context, repo Repository, it *model.Item, now time.Time) ([]Decision, error) {
	decisions := make([]Decision, 0, 3)

	for _, alertType := range model.AlertTypes() {
		existing, err := repo.FindByItemAndType(ctx, it.ID, alertType)
		if err != nil {
			return nil, err
		}

		firing := e.shouldFire(alertType, it, existing, now)

		if existing == nil {
			if !firing {
				decisions = append(decisions, Decision{Type: alertType, Firing: false})
				continue
			}
			created := &model.Alert{
				BaseModel: model.BaseModel{
					ID:        uuid.New().String(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				ItemID:          it.ID,
				Type:            alertType,
				IsEnabled:       true,
				Firing:          true,
				LastTriggeredAt: &now,
			}
			if err := repo.Create(ctx, created); err != nil {
				return nil, err
			}
			decisions = append(decisions, Decision{Type: alertType, Firing: true, RisingEdge: true, Alert: created})
			continue
		}

		switch {
		case firing && !existing.Firing:
			triggeredAt := now
			existing.Firing = true
			existing.LastTriggeredAt = &triggeredAt
			existing.AcknowledgedAt = nil
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				return nil, err
			}
			decisions = append(decisions, Decision{Type: alertType, Firing: true, RisingEdge: true, Alert: existing})
		case !firing && existing.Firing:
			// Falling edge keeps the row and the acknowledgement.
			existing.Firing = false
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				return nil, err
			}
			decisions = append(decisions, Decision{Type: alertType, Firing: false, Alert: existing})
		default:
			decisions = append(decisions, Decision{Type: alertType, Firing: firing, Alert: existing})
		}
	}

	return decisions, nil
}

func (e *Evaluator) shouldFire(alertType model.AlertType, it *model.Item, existing *model.Alert, now time.Time) bool {
	var override *float64
	if existing != nil {
		override = existing.ThresholdValue
	}

	switch alertType {
	case model.AlertLowStock:
		threshold := it.MinimumStock
		if override != nil {
			threshold = override
		}
		return threshold != nil && it.Quantity <= *threshold
	case model.AlertOverstock:
		threshold := it.MaximumStock
		if override != nil {
			threshold = override
		}
		return threshold != nil && it.Quantity >= *threshold
	case model.AlertExpiry:
		if it.ExpiryDate == nil {
			return false
		}
		windowDays := float64(e.expiryWindowDays)
		if override != nil {
			windowDays = *override
		}
		window := time.Duration(windowDays * 24 * float64(time.Hour))
		return it.ExpiryDate.Sub(now) <= window
	}
	return false
}
