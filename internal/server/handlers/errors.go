package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/repository"
	"github.com/mamadbah2/commodity-costing/internal/service/costing"
	"github.com/mamadbah2/commodity-costing/internal/service/history"
	"github.com/mamadbah2/commodity-costing/internal/service/settings"
	"github.com/mamadbah2/commodity-costing/pkg/clients/calcapi"
)

func validationCode(err error) string {
	switch {
	case errors.Is(err, costing.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, costing.ErrZeroWeight):
		return "zero_weight"
	default:
		return "invalid_input"
	}
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *costing.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message, "code": validationCode(err)})
	case errors.Is(err, history.ErrMissingUser), errors.Is(err, settings.ErrMissingUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header is required"})
	case errors.Is(err, calcapi.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "calculation api rejected credentials"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "calculation not found"})
	case errors.Is(err, history.ErrInvalidRecord),
		errors.Is(err, settings.ErrInvalidExpenses),
		errors.Is(err, settings.ErrInvalidFontSize):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable"})
	}
}
