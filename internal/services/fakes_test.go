package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/data/repos/testutil"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/platform/openai"
	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
)

type fakeGenerator struct {
	out   string
	err   error
	calls int

	lastSystem string
	lastUser   string
	lastOpts   openai.Options
}

func (f *fakeGenerator) GenerateJSONObject(ctx context.Context, system, user string, opts openai.Options) (string, error) {
	f.calls++
	f.lastSystem, f.lastUser, f.lastOpts = system, user, opts
	return f.out, f.err
}

func (f *fakeGenerator) Model() string { return "gpt-test" }

type fakeWeather struct {
	current  *weather.Report
	forecast []weather.ForecastPoint
	err      error
}

func (f *fakeWeather) Current(ctx context.Context, region string) (*weather.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.current == nil {
		return weather.Fallback(region), nil
	}
	return f.current, nil
}

func (f *fakeWeather) Forecast(ctx context.Context, region string, days int) ([]weather.ForecastPoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

// env wires real repos over a rolled-back transaction.
type env struct {
	ctx     context.Context
	tx      *gorm.DB
	log     *logger.Logger
	metrics *observability.Metrics

	users           repos.UserRepo
	readings        repos.ReadingRepo
	predictions     repos.PredictionRepo
	recommendations repos.RecommendationRepo
	insights        repos.InsightRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	return &env{
		ctx:             context.Background(),
		tx:              tx,
		log:             log,
		metrics:         observability.NewMetrics(),
		users:           repos.NewUserRepo(tx, log),
		readings:        repos.NewReadingRepo(tx, log),
		predictions:     repos.NewPredictionRepo(tx, log),
		recommendations: repos.NewRecommendationRepo(tx, log),
		insights:        repos.NewInsightRepo(tx, log),
	}
}

func (e *env) seedUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	return testutil.SeedUser(t, e.ctx, e.tx, email).ID
}

func (e *env) seedReading(t *testing.T, userID uuid.UUID, year, month int, electricity, water, gas float64) *consumption.Reading {
	t.Helper()
	return testutil.SeedReading(t, e.ctx, e.tx, userID, year, month, electricity, water, gas)
}

func (e *env) weatherService(p weather.Provider) WeatherService {
	return NewWeatherService(e.log, p, e.metrics, "almaty")
}

func (e *env) predictionService(now time.Time) PredictionService {
	svc := NewPredictionService(e.log, e.readings, e.predictions, e.metrics)
	svc.(*predictionService).now = func() time.Time { return now }
	return svc
}

func (e *env) recommendationService(gen openai.Client, p weather.Provider) RecommendationService {
	return NewRecommendationService(e.log, e.readings, e.recommendations, gen, e.weatherService(p), e.metrics)
}

func (e *env) dashboardService(now time.Time) DashboardService {
	svc := NewDashboardService(e.log, e.users, e.readings, e.predictions, e.recommendations, footprint.Primary())
	svc.(*dashboardService).now = func() time.Time { return now }
	return svc
}

func (e *env) dbc() dbctx.Context {
	return dbctx.From(e.ctx)
}
