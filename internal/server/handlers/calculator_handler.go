package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/service/costing"
	"github.com/mamadbah2/commodity-costing/internal/service/history"
)

// CalculatorHandler parses calculator forms, runs the costing engine and
// saves results on request.
type CalculatorHandler struct {
	history  HistoryService
	settings SettingsService
	logger   *zap.Logger
}

// NewCalculatorHandler constructs the calculator HTTP adapter.
func NewCalculatorHandler(history HistoryService, settings SettingsService, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{history: history, settings: settings, logger: logger}
}

// outcome is a computed result ready to render or store.
type outcome struct {
	kind      models.CalculationKind
	commodity models.Commodity
	purchases []models.Lot
	simple    *models.SimpleResult
	mix       *models.MixResult
	souff     *models.SouffResult
}

func (o outcome) result() any {
	switch o.kind {
	case models.KindSimple:
		return o.simple
	case models.KindMix:
		return o.mix
	default:
		return o.souff
	}
}

func (h *CalculatorHandler) compute(c *gin.Context, kind models.CalculationKind, req calculationRequest) (outcome, error) {
	userID := c.GetString(UserIDKey)
	out := outcome{kind: kind, commodity: models.Commodity(req.Commodity)}

	switch kind {
	case models.KindSimple:
		expenses := h.settings.Expenses(c.Request.Context(), userID)
		res, err := costing.ComputeSimple(req.simpleInput(), expenses)
		if err != nil {
			return outcome{}, err
		}
		out.simple = &res
		out.commodity = ""
	case models.KindMix:
		expenses := h.settings.Expenses(c.Request.Context(), userID)
		in := req.mixInput()
		// Weight-only lots would be counted in the total weight and drag
		// the average price down, so only fully priced lots are sent.
		in.Lots = storedPurchases(in.Lots, true)
		res, err := costing.ComputeCombined(in, expenses)
		if err != nil {
			return outcome{}, err
		}
		out.mix = &res
		out.purchases = in.Lots
	case models.KindSouff:
		in := req.souffInput()
		res, err := costing.ComputeSouff(in)
		if err != nil {
			return outcome{}, err
		}
		out.souff = &res
		out.purchases = storedPurchases(in.Lots, false)
		out.commodity = models.CommoditySouff
	}

	return out, nil
}

func (h *CalculatorHandler) calculate(c *gin.Context, kind models.CalculationKind) {
	var req calculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid calculation payload", zap.String("type", string(kind)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := h.compute(c, kind, req)
	if err != nil {
		h.logger.Debug("calculation rejected", zap.String("type", string(kind)), zap.Error(err))
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":      out.kind,
		"commodity": out.commodity,
		"result":    out.result(),
	})
}

// Simple handles POST /api/v1/calculate/simple.
func (h *CalculatorHandler) Simple(c *gin.Context) {
	h.calculate(c, models.KindSimple)
}

// Mix handles POST /api/v1/calculate/mix.
func (h *CalculatorHandler) Mix(c *gin.Context) {
	h.calculate(c, models.KindMix)
}

// Souff handles POST /api/v1/calculate/souff.
func (h *CalculatorHandler) Souff(c *gin.Context) {
	h.calculate(c, models.KindSouff)
}

// Save recomputes the posted form and stores the result in history.
func (h *CalculatorHandler) Save(c *gin.Context) {
	var req calculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	kind := models.CalculationKind(req.Type)
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be simple, mix or souff"})
		return
	}

	out, err := h.compute(c, kind, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	saved, err := h.history.Save(c.Request.Context(), history.SaveRequest{
		UserID:    c.GetString(UserIDKey),
		Kind:      out.kind,
		Commodity: out.commodity,
		Label:     req.Label,
		Purchases: out.purchases,
		Simple:    out.simple,
		Mix:       out.mix,
		Souff:     out.souff,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"calculation": saved})
}
