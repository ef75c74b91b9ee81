package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/item/dto"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/pkg/logger"
)

// stubUseCase lets each test script the usecase outcome.
type stubUseCase struct {
	createFn  func(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error)
	getFn     func(ctx context.Context, id string) (*model.Item, error)
	listFn    func(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error)
	updateFn  func(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error)
	deleteFn  func(ctx context.Context, id string) error
	mutateFn  func(ctx context.Context, input *dto.MutateItemInput) (*dto.MutationResult, error)
	historyFn func(ctx context.Context, itemID string) ([]model.ItemHistory, error)
}

func (s *stubUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error) {
	return s.createFn(ctx, input)
}

func (s *stubUseCase) GetItem(ctx context.Context, id string) (*model.Item, error) {
	return s.getFn(ctx, id)
}

func (s *stubUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error) {
	return s.listFn(ctx, filters)
}

func (s *stubUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	return s.updateFn(ctx, input)
}

func (s *stubUseCase) DeleteItem(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUseCase) ApplyMutation(ctx context.Context, input *dto.MutateItemInput) (*dto.MutationResult, error) {
	return s.mutateFn(ctx, input)
}

func (s *stubUseCase) ListHistory(ctx context.Context, itemID string) ([]model.ItemHistory, error) {
	return s.historyFn(ctx, itemID)
}

func newTestRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewItemHandler(uc, logger.NewNop())

	router := gin.New()
	items := router.Group("/api/items")
	items.POST("", h.CreateItem)
	items.GET("", h.ListItems)
	items.GET("/:id", h.GetItem)
	items.PUT("/:id", h.UpdateItem)
	items.DELETE("/:id", h.DeleteItem)
	items.POST("/:id/mutate", h.Mutate)
	items.GET("/:id/history", h.ListHistory)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleItem() *model.Item {
	return &model.Item{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Name:      "Pasta",
		Quantity:  3,
		Unit:      "pcs",
		IsActive:  true,
		Version:   1,
	}
}

func TestCreateItem(t *testing.T) {
	it := sampleItem()
	uc := &stubUseCase{
		createFn: func(_ context.Context, input *dto.CreateItemInput) (*model.Item, error) {
			assert.Equal(t, "Pasta", input.Name)
			return it, nil
		},
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodPost, "/api/items", gin.H{
		"name": "Pasta", "quantity": 3, "unit": "pcs",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Item
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, it.ID, got.ID)
}

func TestCreateItem_MissingFields(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	rec := doJSON(t, router, http.MethodPost, "/api/items", gin.H{"quantity": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItem_NotFound(t *testing.T) {
	uc := &stubUseCase{
		getFn: func(_ context.Context, id string) (*model.Item, error) {
			return nil, apperr.NotFound("item %s not found", id)
		},
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodGet, "/api/items/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListItems_PassesFilters(t *testing.T) {
	uc := &stubUseCase{
		listFn: func(_ context.Context, filters *dto.ItemFilters) ([]model.Item, int, error) {
			assert.True(t, filters.LowStock)
			assert.Equal(t, "pasta", filters.Search)
			assert.Equal(t, 2, filters.Page)
			assert.Equal(t, 50, filters.PageSize)
			return []model.Item{*sampleItem()}, 1, nil
		},
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodGet, "/api/items?low_stock=true&search=pasta&page=2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []model.Item `json:"items"`
		Total int          `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Len(t, body.Items, 1)
}

func TestMutate(t *testing.T) {
	it := sampleItem()
	uc := &stubUseCase{
		mutateFn: func(_ context.Context, input *dto.MutateItemInput) (*dto.MutationResult, error) {
			assert.Equal(t, model.ActionRemove, input.Action)
			assert.Equal(t, 2.0, input.Quantity)
			return &dto.MutationResult{Item: it, History: &model.ItemHistory{}}, nil
		},
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodPost, "/api/items/"+it.ID+"/mutate", gin.H{
		"action": "REMOVE", "quantity": 2, "reason": "dinner",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMutate_UnknownAction(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	rec := doJSON(t, router, http.MethodPost, "/api/items/"+uuid.New().String()+"/mutate", gin.H{
		"action": "DRAIN", "quantity": 2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutate_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("insufficient stock"), http.StatusBadRequest},
		{"not found", apperr.NotFound("item gone"), http.StatusNotFound},
		{"conflict", apperr.Conflict("concurrent update"), http.StatusConflict},
		{"invariant", apperr.Invariant("ledger drift"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubUseCase{
				mutateFn: func(_ context.Context, _ *dto.MutateItemInput) (*dto.MutationResult, error) {
					return nil, tc.err
				},
			}
			router := newTestRouter(uc)

			rec := doJSON(t, router, http.MethodPost, "/api/items/"+uuid.New().String()+"/mutate", gin.H{
				"action": "ADD", "quantity": 1,
			})
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestMutate_InvariantResponseIsOpaque(t *testing.T) {
	uc := &stubUseCase{
		mutateFn: func(_ context.Context, _ *dto.MutateItemInput) (*dto.MutationResult, error) {
			return nil, apperr.Invariant("stored quantity 4 diverged from ledger 5")
		},
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodPost, "/api/items/"+uuid.New().String()+"/mutate", gin.H{
		"action": "ADD", "quantity": 1,
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "diverged", "internal detail must not leak")
}

func TestDeleteItem(t *testing.T) {
	uc := &stubUseCase{
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodDelete, "/api/items/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListHistory(t *testing.T) {
	uc := &stubUseCase{
		historyFn: func(_ context.Context, _ string) ([]model.ItemHistory, error) {
			return []model.ItemHistory{{Action: model.ActionAdd, AfterValue: 5}}, nil
		},
	}
	router := newTestRouter(uc)

	rec := doJSON(t, router, http.MethodGet, "/api/items/"+uuid.New().String()+"/history", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		History []model.ItemHistory `json:"history"`
		Total   int                 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
}
