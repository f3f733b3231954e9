// Package calcapi talks to the hosted commodity calculator REST API, which
// stores calculation history and user settings behind a bearer token.
package calcapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/config"
	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/repository"
)

// ErrUnauthorized is returned when the API rejects the forwarded token.
var ErrUnauthorized = errors.New("calculation api rejected credentials")

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx for forwarding.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token attached by WithToken, if any.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// APIClient is a resty-backed history and settings store.
type APIClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient builds an API client using the provided configuration values.
func NewClient(cfg config.CalcAPIConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient, logger: logger}
}

// envelope is the common response wrapper used by every endpoint.
type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Calculation  *remoteRecord   `json:"calculation,omitempty"`
	Calculations []remoteRecord  `json:"calculations,omitempty"`
	User         *remoteUser     `json:"user,omitempty"`
	Settings     *remoteSettings `json:"settings,omitempty"`
}

type remoteUser struct {
	ID              remoteID        `json:"id"`
	Settings        *remoteSettings `json:"settings,omitempty"`
	DefaultExpenses *float64        `json:"default_expenses,omitempty"`
	FontSize        string          `json:"font_size,omitempty"`
}

type remoteSettings struct {
	DefaultExpenses *float64 `json:"default_expenses,omitempty"`
	FontSize        string   `json:"font_size,omitempty"`
}

type saveBody struct {
	Type      models.CalculationKind `json:"type"`
	Data      map[string]any         `json:"data"`
	Commodity *models.Commodity      `json:"commodity"`
}

type settingsBody struct {
	DefaultExpenses float64         `json:"default_expenses"`
	FontSize        models.FontSize `json:"font_size"`
}

func (c *APIClient) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)
	if token := TokenFrom(ctx); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (c *APIClient) do(req *resty.Request, method, path string) (*envelope, error) {
	result := new(envelope)
	apiErr := new(envelope)

	resp, err := req.SetResult(result).SetError(apiErr).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("calculation api %s %s: %w", method, path, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, ErrUnauthorized
	case code == http.StatusNotFound:
		return nil, repository.ErrNotFound
	case code >= http.StatusBadRequest:
		return nil, fmt.Errorf("calculation api error: code=%d, message=%s", code, apiErr.Message)
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = "request was not successful"
		}
		return nil, fmt.Errorf("calculation api %s %s: %s", method, path, message)
	}

	return result, nil
}

// SaveCalculation posts a calculation and returns it with the server id.
func (c *APIClient) SaveCalculation(ctx context.Context, calc models.Calculation) (models.Calculation, error) {
	data, err := encodeData(calc)
	if err != nil {
		return models.Calculation{}, err
	}

	body := saveBody{Type: calc.Kind, Data: data}
	if calc.Commodity != "" {
		commodity := calc.Commodity
		body.Commodity = &commodity
	}

	resp, err := c.do(c.request(ctx).SetBody(body), http.MethodPost, "/calculations")
	if err != nil {
		return models.Calculation{}, err
	}
	if resp.Calculation == nil {
		return calc, nil
	}

	saved, err := resp.Calculation.toModel(calc.UserID)
	if err != nil {
		return models.Calculation{}, err
	}
	if saved.ID == "" {
		saved.ID = calc.ID
	}
	return saved, nil
}

// ListCalculations fetches the caller's history. userID is implied by the token.
func (c *APIClient) ListCalculations(ctx context.Context, userID string, limit int) ([]models.Calculation, error) {
	req := c.request(ctx).SetQueryParam("limit", strconv.Itoa(limit))
	resp, err := c.do(req, http.MethodGet, "/calculations")
	if err != nil {
		return nil, err
	}

	calcs := make([]models.Calculation, 0, len(resp.Calculations))
	for _, rec := range resp.Calculations {
		calc, err := rec.toModel(userID)
		if err != nil {
			c.logger.Warn("skipping undecodable calculation", zap.String("id", string(rec.ID)), zap.Error(err))
			continue
		}
		calcs = append(calcs, calc)
	}
	return calcs, nil
}

// GetCalculation fetches one calculation by id.
func (c *APIClient) GetCalculation(ctx context.Context, userID, id string) (models.Calculation, error) {
	req := c.request(ctx).SetPathParam("id", id)
	resp, err := c.do(req, http.MethodGet, "/calculations/{id}")
	if err != nil {
		return models.Calculation{}, err
	}
	if resp.Calculation == nil {
		return models.Calculation{}, repository.ErrNotFound
	}
	return resp.Calculation.toModel(userID)
}

// DeleteCalculation removes one calculation by id.
func (c *APIClient) DeleteCalculation(ctx context.Context, _ string, id string) error {
	req := c.request(ctx).SetPathParam("id", id)
	_, err := c.do(req, http.MethodDelete, "/calculations/{id}")
	return err
}

// ClearCalculations removes the caller's whole history.
func (c *APIClient) ClearCalculations(ctx context.Context, _ string) error {
	_, err := c.do(c.request(ctx), http.MethodDelete, "/calculations/clear")
	return err
}

// GetSettings reads the settings block of the caller's profile.
func (c *APIClient) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	resp, err := c.do(c.request(ctx), http.MethodGet, "/user/profile")
	if err != nil {
		return models.Settings{}, err
	}
	if resp.User == nil {
		return models.Settings{}, repository.ErrNotFound
	}

	out := models.Settings{UserID: userID}
	expenses := resp.User.DefaultExpenses
	fontSize := resp.User.FontSize
	if s := resp.User.Settings; s != nil {
		if s.DefaultExpenses != nil {
			expenses = s.DefaultExpenses
		}
		if s.FontSize != "" {
			fontSize = s.FontSize
		}
	}
	if expenses == nil {
		return models.Settings{}, repository.ErrNotFound
	}
	out.DefaultExpenses = *expenses
	out.FontSize = models.FontSize(fontSize)
	return out, nil
}

// SaveSettings updates the caller's settings.
func (c *APIClient) SaveSettings(ctx context.Context, s models.Settings) error {
	body := settingsBody{DefaultExpenses: s.DefaultExpenses, FontSize: s.FontSize}
	_, err := c.do(c.request(ctx).SetBody(body), http.MethodPut, "/user/settings")
	return err
}

// timestampLayouts lists the created_at formats the API has been seen to emit.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
