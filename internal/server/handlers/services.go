package handlers

import (
	"context"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/service/history"
)

// HistoryService is the gateway used to persist calculations.
type HistoryService interface {
	Save(ctx context.Context, req history.SaveRequest) (models.Calculation, error)
	List(ctx context.Context, userID string, filter models.CalculationFilter) ([]models.Calculation, error)
	Get(ctx context.Context, userID, id string) (models.Calculation, error)
	Delete(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) error
}

// SettingsService owns per-user calculator settings.
type SettingsService interface {
	Get(ctx context.Context, userID string) (models.Settings, error)
	Update(ctx context.Context, userID string, expenses float64, fontSize models.FontSize) (models.Settings, error)
	Expenses(ctx context.Context, userID string) float64
}

// UserIDKey is the gin context key holding the caller's user id.
const UserIDKey = "user_id"
