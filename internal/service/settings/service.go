package settings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/repository"
)

var (
	// ErrInvalidExpenses indicates the expenses value is negative or not a number.
	ErrInvalidExpenses = errors.New("default expenses must be a non-negative number")
	// ErrInvalidFontSize indicates an unsupported font size.
	ErrInvalidFontSize = errors.New("font size must be small, medium or large")
	// ErrMissingUser indicates an operation was attempted without a user.
	ErrMissingUser = errors.New("user id is required")
)

// Repository stores per-user calculator settings.
type Repository interface {
	GetSettings(ctx context.Context, userID string) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
}

// Service owns the user's default expenses and font preference.
type Service struct {
	repo            Repository
	defaultExpenses float64
	logger          *zap.Logger
	now             func() time.Time
}

// NewService builds a settings service falling back to defaultExpenses for
// users without stored settings.
func NewService(repo Repository, defaultExpenses float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:            repo,
		defaultExpenses: defaultExpenses,
		logger:          logger,
		now:             time.Now,
	}
}

// Defaults returns the settings applied to a user with nothing stored.
func (s *Service) Defaults(userID string) models.Settings {
	return models.Settings{
		UserID:          userID,
		DefaultExpenses: s.defaultExpenses,
		FontSize:        models.FontMedium,
	}
}

// Get returns the stored settings or the defaults when none exist.
func (s *Service) Get(ctx context.Context, userID string) (models.Settings, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Settings{}, ErrMissingUser
	}

	stored, err := s.repo.GetSettings(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.Defaults(userID), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if !stored.FontSize.Valid() {
		stored.FontSize = models.FontMedium
	}
	return stored, nil
}

// Update validates and stores new settings.
func (s *Service) Update(ctx context.Context, userID string, expenses float64, fontSize models.FontSize) (models.Settings, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Settings{}, ErrMissingUser
	}
	if math.IsNaN(expenses) || math.IsInf(expenses, 0) || expenses < 0 {
		return models.Settings{}, ErrInvalidExpenses
	}
	if fontSize == "" {
		fontSize = models.FontMedium
	}
	if !fontSize.Valid() {
		return models.Settings{}, ErrInvalidFontSize
	}

	updated := models.Settings{
		UserID:          userID,
		DefaultExpenses: expenses,
		FontSize:        fontSize,
		UpdatedAt:       s.now().UTC(),
	}
	if err := s.repo.SaveSettings(ctx, updated); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("settings updated", zap.String("user_id", userID), zap.Float64("default_expenses", expenses))
	return updated, nil
}

// Expenses returns the expenses snapshot handed to the costing engine. Storage
// failures fall back to the configured default.
func (s *Service) Expenses(ctx context.Context, userID string) float64 {
	if strings.TrimSpace(userID) == "" {
		return s.defaultExpenses
	}

	stored, err := s.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("falling back to default expenses", zap.String("user_id", userID), zap.Error(err))
		return s.defaultExpenses
	}
	return stored.DefaultExpenses
}
