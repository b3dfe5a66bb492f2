package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/http"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, clients Clients, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     cfg.Tracing.ServiceName,
		AllowedOrigins:  cfg.AllowedOrigins,
		GenerateLimiter: clients.GenerateLimiter,

		AuthMiddleware: middleware.Auth,

		HealthHandler:         handlers.Health,
		AuthHandler:           handlers.Auth,
		UserHandler:           handlers.User,
		ConsumptionHandler:    handlers.Consumption,
		PredictionHandler:     handlers.Prediction,
		RecommendationHandler: handlers.Recommendation,
		InsightHandler:        handlers.Insight,
		DashboardHandler:      handlers.Dashboard,
		LeaderboardHandler:    handlers.Leaderboard,
		WeatherHandler:        handlers.Weather,
	})
}
