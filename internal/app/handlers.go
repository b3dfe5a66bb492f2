package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/ecotrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ecotrack-backend/internal/http/middleware"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Auth           *httpH.AuthHandler
	User           *httpH.UserHandler
	Consumption    *httpH.ConsumptionHandler
	Prediction     *httpH.PredictionHandler
	Recommendation *httpH.RecommendationHandler
	Insight        *httpH.InsightHandler
	Dashboard      *httpH.DashboardHandler
	Leaderboard    *httpH.LeaderboardHandler
	Weather        *httpH.WeatherHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(db),
		Auth:           httpH.NewAuthHandler(services.Auth),
		User:           httpH.NewUserHandler(services.User),
		Consumption:    httpH.NewConsumptionHandler(services.Consumption),
		Prediction:     httpH.NewPredictionHandler(services.Prediction),
		Recommendation: httpH.NewRecommendationHandler(services.Recommendation),
		Insight:        httpH.NewInsightHandler(log, services.Insight),
		Dashboard:      httpH.NewDashboardHandler(services.Dashboard, services.Analytics),
		Leaderboard:    httpH.NewLeaderboardHandler(services.Leaderboard),
		Weather:        httpH.NewWeatherHandler(services.Weather),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
