package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/category"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/pkg/cache"
	"github.com/pantryos/inventory-service/pkg/logger"
)

const activeCategoriesKey = "categories:active"

type categoryUseCase struct {
	repo     category.Repository
	cache    *cache.RedisClient
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

// NewCategoryUseCase builds the category catalog. cache may be nil; the
// catalog then reads straight from the repository.
func NewCategoryUseCase(repo category.Repository, redisCache *cache.RedisClient, cacheTTL time.Duration, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		cache:    redisCache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category %s not found", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListActive(ctx context.Context) ([]model.Category, error) {
	if uc.cache != nil {
		var cached []model.Category
		err := uc.cache.GetJSON(ctx, activeCategoriesKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("category cache read failed", zap.Error(err))
		}
	}

	categories, err := uc.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, activeCategoriesKey, categories, uc.cacheTTL); err != nil {
			uc.logger.Warn("category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *category.CreateCategoryInput) (*model.Category, error) {
	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.Icon != "" {
		icon := input.Icon
		cat.Icon = &icon
	}
	if input.Color != "" {
		color := input.Color
		cat.Color = &color
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return cat, nil
}

func (uc *categoryUseCase) Deactivate(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cat.IsActive {
		return cat, nil
	}

	if count, err := uc.repo.CountItems(ctx, id); err != nil {
		return nil, err
	} else if count > 0 {
		// Items keep their reference; the category just stops being offered.
		uc.logger.Info("deactivating category still referenced by items",
			zap.String("category_id", id), zap.Int("item_count", count))
	}

	cat.IsActive = false
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return cat, nil
}

func (uc *categoryUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Del(ctx, activeCategoriesKey); err != nil {
		uc.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
