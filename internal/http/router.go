package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/ecotrack-backend/internal/clients/redis"
	httpH "github.com/yungbote/ecotrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ecotrack-backend/internal/http/middleware"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string
	// GenerateLimiter budgets the model-backed generate routes. Nil disables it.
	GenerateLimiter redis.Limiter

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler         *httpH.HealthHandler
	AuthHandler           *httpH.AuthHandler
	UserHandler           *httpH.UserHandler
	ConsumptionHandler    *httpH.ConsumptionHandler
	PredictionHandler     *httpH.PredictionHandler
	RecommendationHandler *httpH.RecommendationHandler
	InsightHandler        *httpH.InsightHandler
	DashboardHandler      *httpH.DashboardHandler
	LeaderboardHandler    *httpH.LeaderboardHandler
	WeatherHandler        *httpH.WeatherHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(httpMW.MetricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		// Weather (public)
		if cfg.WeatherHandler != nil {
			api.GET("/weather", cfg.WeatherHandler.Current)
			api.GET("/weather/:region", cfg.WeatherHandler.Region)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		} else {
			protected.Use(func(c *gin.Context) {
				c.AbortWithStatus(http.StatusUnauthorized)
			})
		}
		generateLimit := httpMW.RateLimit(cfg.Log, cfg.GenerateLimiter, "generate")

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me/profile", cfg.UserHandler.UpdateProfile)
			protected.DELETE("/me", cfg.UserHandler.DeleteMe)
		}

		// Consumption
		if cfg.ConsumptionHandler != nil {
			protected.POST("/consumption", cfg.ConsumptionHandler.Submit)
			protected.GET("/consumption", cfg.ConsumptionHandler.List)
			protected.GET("/consumption/range", cfg.ConsumptionHandler.Range)
		}

		// Predictions
		if cfg.PredictionHandler != nil {
			protected.GET("/predictions", cfg.PredictionHandler.List)
			protected.POST("/predictions", generateLimit, cfg.PredictionHandler.Generate)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.GET("/recommendations", cfg.RecommendationHandler.List)
			protected.POST("/recommendations/generate", generateLimit, cfg.RecommendationHandler.Generate)
			protected.PATCH("/recommendations/:id/read", cfg.RecommendationHandler.MarkRead)
			protected.DELETE("/recommendations/clear", cfg.RecommendationHandler.Clear)
		}

		// CO2 insights
		if cfg.InsightHandler != nil {
			protected.GET("/co2-insights", cfg.InsightHandler.List)
			protected.POST("/co2-insights/generate", generateLimit, cfg.InsightHandler.Generate)
			protected.PATCH("/co2-insights/:id/read", cfg.InsightHandler.MarkRead)
			protected.DELETE("/co2-insights/clear", cfg.InsightHandler.Clear)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard", cfg.DashboardHandler.Dashboard)
			protected.GET("/footprint", cfg.DashboardHandler.Footprint)
			protected.GET("/analytics", cfg.DashboardHandler.Analytics)
		}

		// Leaderboard
		if cfg.LeaderboardHandler != nil {
			protected.GET("/leaderboard/users", cfg.LeaderboardHandler.Users)
			protected.GET("/leaderboard/regions", cfg.LeaderboardHandler.Regions)
			protected.GET("/leaderboard/co2-emissions", cfg.LeaderboardHandler.Emissions)
			protected.GET("/leaderboard/monthly-progress", cfg.LeaderboardHandler.MonthlyProgress)
		}
	}

	return r
}
