package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/item"
	"github.com/pantryos/inventory-service/internal/item/dto"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type ItemHandler struct {
	uc     item.UseCase
	logger logger.ZapLogger
}

func NewItemHandler(uc item.UseCase, log logger.ZapLogger) *ItemHandler {
	return &ItemHandler{
		uc:     uc,
		logger: log,
	}
}

type createItemRequest struct {
	Name         string     `json:"name" binding:"required"`
	Quantity     float64    `json:"quantity" binding:"gte=0"`
	Unit         string     `json:"unit" binding:"required"`
	MinimumStock *float64   `json:"minimum_stock" binding:"omitempty,gte=0"`
	MaximumStock *float64   `json:"maximum_stock" binding:"omitempty,gt=0"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Barcode      string     `json:"barcode"`
	CategoryID   string     `json:"category_id"`
}

type updateItemRequest struct {
	Name         string     `json:"name" binding:"required"`
	Unit         string     `json:"unit" binding:"required"`
	MinimumStock *float64   `json:"minimum_stock" binding:"omitempty,gte=0"`
	MaximumStock *float64   `json:"maximum_stock" binding:"omitempty,gt=0"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Barcode      string     `json:"barcode"`
	CategoryID   string     `json:"category_id"`
	IsActive     bool       `json:"is_active"`
	Reason       string     `json:"reason"`
}

type mutateRequest struct {
	Action   string  `json:"action" binding:"required"`
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}

// POST /api/items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	it, err := h.uc.CreateItem(c.Request.Context(), &dto.CreateItemInput{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		ExpiryDate:   req.ExpiryDate,
		Barcode:      req.Barcode,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		h.fail(c, "create item failed", err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /api/items
func (h *ItemHandler) ListItems(c *gin.Context) {
	filters := &dto.ItemFilters{
		CategoryID: c.Query("category_id"),
		LowStock:   c.Query("low_stock") == "true",
		Search:     c.Query("search"),
		Page:       parseIntQuery(c, "page", 1),
		PageSize:   parseIntQuery(c, "page_size", 50),
	}

	items, total, err := h.uc.ListItems(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list items failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// GET /api/items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	it, err := h.uc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get item failed", err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// PUT /api/items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	it, err := h.uc.UpdateItem(c.Request.Context(), &dto.UpdateItemInput{
		ID:           c.Param("id"),
		Name:         req.Name,
		Unit:         req.Unit,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		ExpiryDate:   req.ExpiryDate,
		Barcode:      req.Barcode,
		CategoryID:   req.CategoryID,
		IsActive:     req.IsActive,
		Reason:       req.Reason,
	})
	if err != nil {
		h.fail(c, "update item failed", err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// DELETE /api/items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.uc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete item failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/items/:id/mutate
func (h *ItemHandler) Mutate(c *gin.Context) {
	var req mutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	action, ok := model.ParseMutationAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action: " + req.Action})
		return
	}

	result, err := h.uc.ApplyMutation(c.Request.Context(), &dto.MutateItemInput{
		ItemID:   c.Param("id"),
		Action:   action,
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
	if err != nil {
		h.fail(c, "mutation failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/items/:id/history
func (h *ItemHandler) ListHistory(c *gin.Context) {
	records, err := h.uc.ListHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "list history failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records, "total": len(records)})
}

func (h *ItemHandler) fail(c *gin.Context, msg string, err error) {
	if apperr.KindOf(err) == apperr.KindUnknown || apperr.IsInvariant(err) {
		h.logger.Error(msg, zap.Error(err))
	}
	apperr.RespondError(c, err)
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
