package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/shoppinglist"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type ShoppingListHandler struct {
	uc     shoppinglist.UseCase
	logger logger.ZapLogger
}

func NewShoppingListHandler(uc shoppinglist.UseCase, log logger.ZapLogger) *ShoppingListHandler {
	return &ShoppingListHandler{
		uc:     uc,
		logger: log,
	}
}

// GET /api/shopping-list
func (h *ShoppingListHandler) List(c *gin.Context) {
	entries, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list shopping list failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

type createEntryRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit"`
	Priority int     `json:"priority" binding:"omitempty,min=1,max=5"`
	Notes    string  `json:"notes"`
}

// POST /api/shopping-list
func (h *ShoppingListHandler) Create(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	entry, err := h.uc.CreateManual(c.Request.Context(), &shoppinglist.CreateEntryInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Priority: req.Priority,
		Notes:    req.Notes,
	})
	if err != nil {
		h.fail(c, "create entry failed", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// POST /api/shopping-list/:id/check
func (h *ShoppingListHandler) Check(c *gin.Context) {
	entry, err := h.uc.Check(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "check entry failed", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ShoppingListHandler) fail(c *gin.Context, msg string, err error) {
	if apperr.KindOf(err) == apperr.KindUnknown {
		h.logger.Error(msg, zap.Error(err))
	}
	apperr.RespondError(c, err)
}
