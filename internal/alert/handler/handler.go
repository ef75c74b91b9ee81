package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/internal/alert"
	"github.com/pantryos/inventory-service/internal/apperr"
	"github.com/pantryos/inventory-service/pkg/logger"
)

type AlertHandler struct {
	uc     alert.UseCase
	logger logger.ZapLogger
}

func NewAlertHandler(uc alert.UseCase, log logger.ZapLogger) *AlertHandler {
	return &AlertHandler{
		uc:     uc,
		logger: log,
	}
}

// GET /api/alerts?active=true&item_id=...
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	if itemID := c.Query("item_id"); itemID != "" {
		alerts, err := h.uc.ListForItem(c.Request.Context(), itemID)
		if err != nil {
			h.fail(c, "list alerts failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts, "total": len(alerts)})
		return
	}

	alerts, err := h.uc.ListActive(c.Request.Context())
	if err != nil {
		h.fail(c, "list alerts failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "total": len(alerts)})
}

// POST /api/alerts/:id/acknowledge
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	a, err := h.uc.Acknowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "acknowledge failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type enableRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// POST /api/alerts/:id/enable
func (h *AlertHandler) SetEnabled(c *gin.Context) {
	var req enableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	a, err := h.uc.SetEnabled(c.Request.Context(), c.Param("id"), *req.Enabled)
	if err != nil {
		h.fail(c, "set enabled failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AlertHandler) fail(c *gin.Context, msg string, err error) {
	if apperr.KindOf(err) == apperr.KindUnknown || apperr.IsInvariant(err) {
		h.logger.Error(msg, zap.Error(err))
	}
	apperr.RespondError(c, err)
}
