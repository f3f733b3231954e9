package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/server/handlers"
	"github.com/mamadbah2/commodity-costing/pkg/clients/calcapi"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Calculator *handlers.CalculatorHandler
	History    *handlers.HistoryHandler
	Settings   *handlers.SettingsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", identityMiddleware())
	{
		api.POST("/calculate/simple", h.Calculator.Simple)
		api.POST("/calculate/mix", h.Calculator.Mix)
		api.POST("/calculate/souff", h.Calculator.Souff)

		api.POST("/calculations", h.Calculator.Save)
		api.GET("/calculations", h.History.List)
		api.DELETE("/calculations", h.History.Clear)
		api.GET("/calculations/:id", h.History.Get)
		api.DELETE("/calculations/:id", h.History.Delete)

		api.GET("/settings", h.Settings.Get)
		api.PUT("/settings", h.Settings.Update)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// identityMiddleware stores the caller's user id and forwards any bearer
// token to the remote calculation API through the request context.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handlers.UserIDKey, strings.TrimSpace(c.GetHeader("X-User-ID")))

		auth := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && strings.TrimSpace(token) != "" {
			c.Request = c.Request.WithContext(calcapi.WithToken(c.Request.Context(), strings.TrimSpace(token)))
		}

		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
