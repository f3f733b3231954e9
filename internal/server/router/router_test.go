package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/server/handlers"
	"github.com/mamadbah2/commodity-costing/internal/service/history"
	"github.com/mamadbah2/commodity-costing/pkg/clients/calcapi"
)

type stubHistory struct{}

func (stubHistory) Save(context.Context, history.SaveRequest) (models.Calculation, error) {
	return models.Calculation{}, nil
}

func (stubHistory) List(context.Context, string, models.CalculationFilter) ([]models.Calculation, error) {
	return nil, nil
}

func (stubHistory) Get(context.Context, string, string) (models.Calculation, error) {
	return models.Calculation{}, nil
}

func (stubHistory) Delete(context.Context, string, string) error { return nil }

func (stubHistory) Clear(context.Context, string) error { return nil }

type stubSettings struct{}

func (stubSettings) Get(_ context.Context, userID string) (models.Settings, error) {
	return models.Settings{UserID: userID}, nil
}

func (stubSettings) Update(context.Context, string, float64, models.FontSize) (models.Settings, error) {
	return models.Settings{}, nil
}

func (stubSettings) Expenses(context.Context, string) float64 { return 150 }

func TestHealthz(t *testing.T) {
	r := New(Handlers{
		Calculator: handlers.NewCalculatorHandler(stubHistory{}, stubSettings{}, nil),
		History:    handlers.NewHistoryHandler(stubHistory{}, nil),
		Settings:   handlers.NewSettingsHandler(stubSettings{}, nil),
	}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutesMounted(t *testing.T) {
	r := New(Handlers{
		Calculator: handlers.NewCalculatorHandler(stubHistory{}, stubSettings{}, nil),
		History:    handlers.NewHistoryHandler(stubHistory{}, nil),
		Settings:   handlers.NewSettingsHandler(stubSettings{}, nil),
	}, nil)

	want := map[string]bool{
		"POST /api/v1/calculate/simple":   true,
		"POST /api/v1/calculate/mix":      true,
		"POST /api/v1/calculate/souff":    true,
		"POST /api/v1/calculations":       true,
		"GET /api/v1/calculations":        true,
		"DELETE /api/v1/calculations":     true,
		"GET /api/v1/calculations/:id":    true,
		"DELETE /api/v1/calculations/:id": true,
		"GET /api/v1/settings":            true,
		"PUT /api/v1/settings":            true,
	}
	for _, route := range r.Routes() {
		delete(want, route.Method+" "+route.Path)
	}
	require.Empty(t, want)
}

func TestIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var userID string
	var token string
	r.GET("/", identityMiddleware(), func(c *gin.Context) {
		userID = c.GetString(handlers.UserIDKey)
		token = calcapi.TokenFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "  user-9 ")
	req.Header.Set("Authorization", "Bearer abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "user-9", userID)
	require.Equal(t, "abc", token)
}
