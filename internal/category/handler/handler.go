package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/internal/category"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

// GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.uc.ListActive(c.Request.Context())
	if err != nil {
		h.fail(c, "list categories failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": len(categories)})
}

// GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get category failed", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

type createCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

// POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &category.CreateCategoryInput{
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.fail(c, "create category failed", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// POST /api/categories/:id/deactivate
func (h *CategoryHandler) Deactivate(c *gin.Context) {
	cat, err := h.uc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "deactivate category failed", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) fail(c *gin.Context, msg string, err error) {
	if apperr.KindOf(err) == apperr.KindUnknown {
		h.logger.Error(msg, zap.Error(err))
	}
	apperr.RespondError(c, err)
}
