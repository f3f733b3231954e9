package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/repository"
)

const (
	defaultLimit  = 50
	maxLimit      = 200
	maxLabelRunes = 120
	defaultLabel  = "Untitled"
)

var (
	// ErrNotFound is returned when a calculation does not exist for the user.
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidRecord indicates the calculation cannot be stored as given.
	ErrInvalidRecord = errors.New("invalid calculation record")
	// ErrMissingUser indicates an operation was attempted without a user.
	ErrMissingUser = errors.New("user id is required")
)

// Repository stores calculation records.
type Repository interface {
	SaveCalculation(ctx context.Context, calc models.Calculation) (models.Calculation, error)
	ListCalculations(ctx context.Context, userID string, limit int) ([]models.Calculation, error)
	GetCalculation(ctx context.Context, userID, id string) (models.Calculation, error)
	DeleteCalculation(ctx context.Context, userID, id string) error
	ClearCalculations(ctx context.Context, userID string) error
}

// Mirror receives a copy of every saved calculation.
type Mirror interface {
	MirrorCalculation(ctx context.Context, calc models.Calculation) error
}

// SaveRequest carries an engine result and the tags attached on save.
type SaveRequest struct {
	UserID    string
	Kind      models.CalculationKind
	Commodity models.Commodity
	Label     string
	Purchases []models.Lot
	Simple    *models.SimpleResult
	Mix       *models.MixResult
	Souff     *models.SouffResult
}

// Service persists and retrieves calculation history per user.
type Service struct {
	repo   Repository
	mirror Mirror
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the history gateway. mirror may be nil.
func NewService(repo Repository, mirror Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		mirror: mirror,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Save validates the tags and stores the result.
func (s *Service) Save(ctx context.Context, req SaveRequest) (models.Calculation, error) {
	calc, err := s.buildRecord(req)
	if err != nil {
		return models.Calculation{}, err
	}

	saved, err := s.repo.SaveCalculation(ctx, calc)
	if err != nil {
		return models.Calculation{}, fmt.Errorf("save calculation: %w", err)
	}

	s.logger.Info("calculation saved",
		zap.String("id", saved.ID),
		zap.String("user_id", saved.UserID),
		zap.String("type", string(saved.Kind)),
		zap.String("commodity", string(saved.Commodity)))

	if s.mirror != nil {
		if err := s.mirror.MirrorCalculation(ctx, saved); err != nil {
			s.logger.Warn("failed to mirror calculation", zap.String("id", saved.ID), zap.Error(err))
		}
	}

	return saved, nil
}

// List returns the user's calculations, newest first, narrowed by filter.
func (s *Service) List(ctx context.Context, userID string, filter models.CalculationFilter) ([]models.Calculation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	records, err := s.repo.ListCalculations(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}

	filtered := make([]models.Calculation, 0, len(records))
	for _, rec := range records {
		if filter.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}

	return filtered, nil
}

// Get fetches a single calculation owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (models.Calculation, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Calculation{}, ErrMissingUser
	}
	calc, err := s.repo.GetCalculation(ctx, userID, id)
	if err != nil {
		return models.Calculation{}, fmt.Errorf("get calculation %s: %w", id, err)
	}
	return calc, nil
}

// Delete removes a single calculation owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrMissingUser
	}
	if err := s.repo.DeleteCalculation(ctx, userID, id); err != nil {
		return fmt.Errorf("delete calculation %s: %w", id, err)
	}
	s.logger.Info("calculation deleted", zap.String("id", id), zap.String("user_id", userID))
	return nil
}

// Clear removes every calculation owned by the user.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrMissingUser
	}
	if err := s.repo.ClearCalculations(ctx, userID); err != nil {
		return fmt.Errorf("clear calculations: %w", err)
	}
	s.logger.Info("calculation history cleared", zap.String("user_id", userID))
	return nil
}

func (s *Service) buildRecord(req SaveRequest) (models.Calculation, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return models.Calculation{}, ErrMissingUser
	}
	if !req.Kind.Valid() {
		return models.Calculation{}, fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, req.Kind)
	}

	commodity := req.Commodity
	switch req.Kind {
	case models.KindSimple:
		if req.Simple == nil {
			return models.Calculation{}, fmt.Errorf("%w: missing simple result", ErrInvalidRecord)
		}
		commodity = ""
	case models.KindMix:
		if req.Mix == nil {
			return models.Calculation{}, fmt.Errorf("%w: missing mix result", ErrInvalidRecord)
		}
		if commodity != "" && (!commodity.Valid() || commodity == models.CommoditySouff) {
			return models.Calculation{}, fmt.Errorf("%w: commodity %q cannot be used with mix", ErrInvalidRecord, commodity)
		}
	case models.KindSouff:
		if req.Souff == nil {
			return models.Calculation{}, fmt.Errorf("%w: missing souff result", ErrInvalidRecord)
		}
		commodity = models.CommoditySouff
	}

	calc := models.Calculation{
		ID:        s.newID(),
		UserID:    req.UserID,
		Kind:      req.Kind,
		Commodity: commodity,
		Label:     normalizeLabel(req.Label),
		Purchases: req.Purchases,
		CreatedAt: s.now().UTC(),
	}

	switch req.Kind {
	case models.KindSimple:
		calc.Simple = req.Simple
	case models.KindMix:
		calc.Mix = req.Mix
	case models.KindSouff:
		calc.Souff = req.Souff
	}

	return calc, nil
}

func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return defaultLabel
	}
	if utf8.RuneCountInString(label) > maxLabelRunes {
		runes := []rune(label)
		label = string(runes[:maxLabelRunes])
	}
	return label
}
