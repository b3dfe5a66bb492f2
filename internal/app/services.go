package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Weather        services.WeatherService
	Prediction     services.PredictionService
	Recommendation services.RecommendationService
	Insight        services.InsightService
	Consumption    services.ConsumptionService
	Dashboard      services.DashboardService
	Analytics      services.AnalyticsService
	Leaderboard    services.LeaderboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	factors, err := footprint.Lookup(cfg.EmissionFactorSet)
	if err != nil {
		return Services{}, fmt.Errorf("emission factor set %q: %w", cfg.EmissionFactorSet, err)
	}

	weatherService := services.NewWeatherService(log, clients.Weather, metrics, cfg.WeatherReferenceRegion)
	predictionService := services.NewPredictionService(log, repos.Reading, repos.Prediction, metrics)
	recommendationService := services.NewRecommendationService(log, repos.Reading, repos.Recommendation, clients.Generator, weatherService, metrics)

	return Services{
		Auth:           services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:           services.NewUserService(db, log, repos.User, repos.Reading, repos.Prediction, repos.Recommendation, repos.Insight),
		Weather:        weatherService,
		Prediction:     predictionService,
		Recommendation: recommendationService,
		Insight:        services.NewInsightService(log, repos.Reading, repos.Insight, clients.Generator, weatherService, metrics),
		Consumption:    services.NewConsumptionService(log, repos.Reading, predictionService, recommendationService),
		Dashboard:      services.NewDashboardService(log, repos.User, repos.Reading, repos.Prediction, repos.Recommendation, factors),
		Analytics:      services.NewAnalyticsService(log, repos.Reading),
		Leaderboard:    services.NewLeaderboardService(log, repos.User, repos.Reading),
	}, nil
}
