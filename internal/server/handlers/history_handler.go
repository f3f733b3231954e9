package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
)

// HistoryHandler exposes the saved calculations of the caller.
type HistoryHandler struct {
	history HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler constructs the history HTTP adapter.
func NewHistoryHandler(history HistoryService, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{history: history, logger: logger}
}

// List handles GET /api/v1/calculations.
func (h *HistoryHandler) List(c *gin.Context) {
	filter := models.CalculationFilter{Key: c.DefaultQuery("commodity", "all")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		filter.Limit = limit
	}

	calcs, err := h.history.List(c.Request.Context(), c.GetString(UserIDKey), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calculations": calcs, "count": len(calcs)})
}

// Get handles GET /api/v1/calculations/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	calc, err := h.history.Get(c.Request.Context(), c.GetString(UserIDKey), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculation": calc})
}

// Delete handles DELETE /api/v1/calculations/:id.
func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.history.Delete(c.Request.Context(), c.GetString(UserIDKey), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/v1/calculations.
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context(), c.GetString(UserIDKey)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
