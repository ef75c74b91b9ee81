package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/internal/alert"
	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/category"
	"github.com/pantryos/inventory-service/internal/item"
	"github.com/pantryos/inventory-service/internal/item/dto"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/internal/shoppinglist"
	"github.com/pantryos/inventory-service/pkg/logger"
	"github.com/pantryos/inventory-service/pkg/postgres"
)

// errStaleRead signals that the version guard missed and the mutation should
// be retried from a fresh read. Never escapes this package.
var errStaleRead = errors.New("stale item read")

type itemUseCase struct {
	txm       postgres.TxManager
	repo      item.Repository
	alertRepo alert.Repository
	listRepo  shoppinglist.Repository
	catRepo   category.Repository
	evaluator *alert.Evaluator
	retries   int
	logger    logger.ZapLogger
}

func NewItemUseCase(
	txm postgres.TxManager,
	repo item.Repository,
	alertRepo alert.Repository,
	listRepo shoppinglist.Repository,
	catRepo category.Repository,
	evaluator *alert.Evaluator,
	retries int,
	log logger.ZapLogger,
) item.UseCase {
	if retries < 1 {
		retries = 1
	}
	return &itemUseCase{
		txm:       txm,
		repo:      repo,
		alertRepo: alertRepo,
		listRepo:  listRepo,
		catRepo:   catRepo,
		evaluator: evaluator,
		retries:   retries,
		logger:    log,
	}
}

func (uc *itemUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error) {
	if input.Quantity < 0 {
		return nil, apperr.Validation("quantity cannot be negative")
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	it := &model.Item{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         input.Name,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		MinimumStock: input.MinimumStock,
		MaximumStock: input.MaximumStock,
		ExpiryDate:   input.ExpiryDate,
		IsActive:     true,
		Version:      1,
	}
	if input.Barcode != "" {
		barcode := input.Barcode
		it.Barcode = &barcode
	}
	if input.CategoryID != "" {
		categoryID := input.CategoryID
		it.CategoryID = &categoryID
	}

	err := uc.txm.RunInTx(ctx, func(tx *sqlx.Tx) error {
		txRepo := uc.repo.WithTx(tx)
		if err := txRepo.Create(ctx, it); err != nil {
			return err
		}
		if it.Quantity > 0 {
			before := 0.0
			hist := &model.ItemHistory{
				ID:          uuid.New().String(),
				ItemID:      it.ID,
				Action:      model.ActionAdd,
				Quantity:    it.Quantity,
				BeforeValue: &before,
				AfterValue:  it.Quantity,
				CreatedAt:   now,
			}
			if err := txRepo.AppendHistory(ctx, hist); err != nil {
				return err
			}
		}
		// An item created at or below its minimum should alert right away.
		return uc.evaluateTx(ctx, tx, it, now)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (uc *itemUseCase) GetItem(ctx context.Context, id string) (*model.Item, error) {
	it, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil || it.DeletedAt != nil {
		return nil, apperr.NotFound("item %s not found", id)
	}
	return it, nil
}

func (uc *itemUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *itemUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < uc.retries; attempt++ {
		it, err := uc.updateOnce(ctx, input)
		if errors.Is(err, errStaleRead) {
			continue
		}
		return it, err
	}
	return nil, apperr.Conflict("item %s was modified concurrently", input.ID)
}

func (uc *itemUseCase) updateOnce(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	it, err := uc.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	readVersion := it.Version

	it.Name = input.Name
	it.Unit = input.Unit
	it.MinimumStock = input.MinimumStock
	it.MaximumStock = input.MaximumStock
	it.ExpiryDate = input.ExpiryDate
	it.IsActive = input.IsActive
	it.Barcode = nil
	if input.Barcode != "" {
		barcode := input.Barcode
		it.Barcode = &barcode
	}
	it.CategoryID = nil
	if input.CategoryID != "" {
		categoryID := input.CategoryID
		it.CategoryID = &categoryID
	}
	it.Version = readVersion + 1
	it.UpdatedAt = now

	hist := uc.buildHistory(it, model.ActionUpdate, 0, it.Quantity, it.Quantity, input.Reason, now)

	err = uc.txm.RunInTx(ctx, func(tx *sqlx.Tx) error {
		txRepo := uc.repo.WithTx(tx)
		stored, ok, err := txRepo.UpdateVersioned(ctx, it, readVersion)
		if err != nil {
			return err
		}
		if !ok {
			return errStaleRead
		}
		if stored != hist.AfterValue {
			return apperr.Invariant("stored quantity %.4f does not match expected %.4f for item %s", stored, hist.AfterValue, it.ID)
		}
		if err := txRepo.AppendHistory(ctx, hist); err != nil {
			return err
		}
		// Thresholds may have moved, so firing state is recomputed here too.
		return uc.evaluateTx(ctx, tx, it, now)
	})
	if err != nil {
		if apperr.IsInvariant(err) {
			uc.logger.Error("quantity invariant violated on metadata update", zap.Error(err), zap.String("item_id", it.ID))
		}
		return nil, err
	}
	return it, nil
}

func (uc *itemUseCase) DeleteItem(ctx context.Context, id string) error {
	deleted, err := uc.repo.SoftDelete(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("item %s not found", id)
	}
	return nil
}

func (uc *itemUseCase) ApplyMutation(ctx context.Context, input *dto.MutateItemInput) (*dto.MutationResult, error) {
	for attempt := 0; attempt < uc.retries; attempt++ {
		result, err := uc.mutateOnce(ctx, input)
		if errors.Is(err, errStaleRead) {
			uc.logger.Debug("retrying stale mutation",
				zap.String("item_id", input.ItemID), zap.Int("attempt", attempt+1))
			continue
		}
		return result, err
	}
	return nil, apperr.Conflict("item %s was modified concurrently", input.ItemID)
}

func (uc *itemUseCase) mutateOnce(ctx context.Context, input *dto.MutateItemInput) (*dto.MutationResult, error) {
	it, err := uc.repo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil || it.DeletedAt != nil {
		return nil, apperr.NotFound("item %s not found", input.ItemID)
	}

	before := it.Quantity
	var after float64

	switch input.Action {
	case model.ActionAdd:
		if input.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be positive")
		}
		after = before + input.Quantity
	case model.ActionRemove:
		if input.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be positive")
		}
		after = before - input.Quantity
		if after < 0 {
			return nil, apperr.Validation("removing %g would drive quantity below zero (current %g)", input.Quantity, before)
		}
	case model.ActionAdjust:
		// Absolute set; zero is a valid stocktake result.
		if input.Quantity < 0 {
			return nil, apperr.Validation("quantity cannot be negative")
		}
		after = input.Quantity
	case model.ActionUpdate:
		// Metadata-only action on the mutate endpoint: quantity untouched,
		// the ledger still records that something happened.
		after = before
	default:
		return nil, apperr.Validation("unknown action %q", string(input.Action))
	}

	now := time.Now()
	readVersion := it.Version
	it.Quantity = after
	it.Version = readVersion + 1
	it.UpdatedAt = now

	magnitude := input.Quantity
	switch input.Action {
	case model.ActionUpdate:
		magnitude = 0
	case model.ActionAdjust:
		magnitude = math.Abs(after - before)
	}

	hist := uc.buildHistory(it, input.Action, magnitude, before, after, input.Reason, now)

	err = uc.txm.RunInTx(ctx, func(tx *sqlx.Tx) error {
		txRepo := uc.repo.WithTx(tx)
		stored, ok, err := txRepo.UpdateVersioned(ctx, it, readVersion)
		if err != nil {
			return err
		}
		if !ok {
			return errStaleRead
		}
		if stored != hist.AfterValue {
			return apperr.Invariant("stored quantity %.4f does not match after value %.4f for item %s", stored, hist.AfterValue, it.ID)
		}
		if err := txRepo.AppendHistory(ctx, hist); err != nil {
			return err
		}
		return uc.evaluateTx(ctx, tx, it, now)
	})
	if err != nil {
		if apperr.IsInvariant(err) {
			uc.logger.Error("quantity invariant violated", zap.Error(err), zap.String("item_id", it.ID))
		}
		return nil, err
	}

	return &dto.MutationResult{Item: it, History: hist}, nil
}

func (uc *itemUseCase) ListHistory(ctx context.Context, itemID string) ([]model.ItemHistory, error) {
	if _, err := uc.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return uc.repo.ListHistory(ctx, itemID)
}

// evaluateTx recomputes alert state for the item and, on a LOW_STOCK rising
// edge, upserts the shopping-list entry. All writes share the caller's
// transaction.
func (uc *itemUseCase) evaluateTx(ctx context.Context, tx *sqlx.Tx, it *model.Item, now time.Time) error {
	decisions, err := uc.evaluator.Evaluate(ctx, uc.alertRepo.WithTx(tx), it, now)
	if err != nil {
		return err
	}
	for _, d := range decisions {
		if d.Type == model.AlertLowStock && d.RisingEdge {
			if _, err := shoppinglist.EnsureEntry(ctx, uc.listRepo.WithTx(tx), it, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uc *itemUseCase) buildHistory(it *model.Item, action model.MutationAction, magnitude, before, after float64, reason string, now time.Time) *model.ItemHistory {
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	beforeVal := before
	return &model.ItemHistory{
		ID:          uuid.New().String(),
		ItemID:      it.ID,
		Action:      action,
		Quantity:    magnitude,
		BeforeValue: &beforeVal,
		AfterValue:  after,
		Reason:      reasonPtr,
		CreatedAt:   now,
	}
}

func (uc *itemUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	cat, err := uc.catRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil || !cat.IsActive {
		return apperr.Validation("category %s does not exist or is inactive", categoryID)
	}
	return nil
}
