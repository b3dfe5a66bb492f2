package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/data/repos/testutil"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	httpH "github.com/yungbote/ecotrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ecotrack-backend/internal/http/middleware"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type offlineWeather struct{}

func (offlineWeather) Current(ctx context.Context, region string) (*weather.Report, error) {
	return weather.Fallback(region), nil
}

func (offlineWeather) Forecast(ctx context.Context, region string, days int) ([]weather.ForecastPoint, error) {
	return []weather.ForecastPoint{}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()

	userRepo := repos.NewUserRepo(tx, log)
	readingRepo := repos.NewReadingRepo(tx, log)
	predictionRepo := repos.NewPredictionRepo(tx, log)
	recommendationRepo := repos.NewRecommendationRepo(tx, log)
	insightRepo := repos.NewInsightRepo(tx, log)

	auth := services.NewAuthService(tx, log, userRepo, "router-secret", time.Hour)
	weatherSvc := services.NewWeatherService(log, offlineWeather{}, metrics, "almaty")
	predictions := services.NewPredictionService(log, readingRepo, predictionRepo, metrics)
	recommendations := services.NewRecommendationService(log, readingRepo, recommendationRepo, nil, weatherSvc, metrics)
	insights := services.NewInsightService(log, readingRepo, insightRepo, nil, weatherSvc, metrics)

	return NewRouter(RouterConfig{
		Log:                   log,
		Metrics:               metrics,
		AuthMiddleware:        httpMW.NewAuthMiddleware(log, auth),
		HealthHandler:         httpH.NewHealthHandler(db),
		AuthHandler:           httpH.NewAuthHandler(auth),
		UserHandler:           httpH.NewUserHandler(services.NewUserService(tx, log, userRepo, readingRepo, predictionRepo, recommendationRepo, insightRepo)),
		ConsumptionHandler:    httpH.NewConsumptionHandler(services.NewConsumptionService(log, readingRepo, predictions, recommendations)),
		PredictionHandler:     httpH.NewPredictionHandler(predictions),
		RecommendationHandler: httpH.NewRecommendationHandler(recommendations),
		InsightHandler:        httpH.NewInsightHandler(log, insights),
		DashboardHandler: httpH.NewDashboardHandler(
			services.NewDashboardService(log, userRepo, readingRepo, predictionRepo, recommendationRepo, footprint.Primary()),
			services.NewAnalyticsService(log, readingRepo),
		),
		LeaderboardHandler: httpH.NewLeaderboardHandler(services.NewLeaderboardService(log, userRepo, readingRepo)),
		WeatherHandler:     httpH.NewWeatherHandler(weatherSvc),
	})
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Test", "lastName": "User", "email": email,
		"password": "secret1", "role": "individual", "region": "almaty",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/me", "/api/dashboard", "/api/leaderboard/users", "/api/co2-insights"} {
		rec := do(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := do(t, r, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConsumptionFlow(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "flow@example.com")

	// Numbers and numeric strings are both accepted.
	rec := do(t, r, http.MethodPost, "/api/consumption", token,
		`{"electricity": 300, "water": "20", "gas": "100.5", "month": 1, "year": 2024}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reading struct {
		ID          string `json:"id"`
		Electricity string `json:"electricity"`
		Gas         string `json:"gas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reading))
	assert.Equal(t, "300", reading.Electricity)
	assert.Equal(t, "100.5", reading.Gas)

	rec = do(t, r, http.MethodPost, "/api/consumption", token,
		`{"electricity": "lots", "water": 1, "gas": 1, "month": 2, "year": 2024}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invalid_argument"`)

	rec = do(t, r, http.MethodPost, "/api/consumption", token,
		`{"electricity": true, "water": 1, "gas": 1, "month": 2, "year": 2024}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A bare end date includes that day.
	rec = do(t, r, http.MethodGet, "/api/consumption/range?startDate=2024-01-01&endDate=2024-01-01", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ranged []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranged))
	assert.Len(t, ranged, 1)

	rec = do(t, r, http.MethodGet, "/api/consumption/range?startDate=2024-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Without a generator the rule-based tips are returned.
	rec = do(t, r, http.MethodPost, "/api/recommendations/generate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	assert.NotEmpty(t, recs)

	rec = do(t, r, http.MethodPatch, "/api/recommendations/not-a-uuid/read", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Insight generation degrades to an empty list.
	rec = do(t, r, http.MethodPost, "/api/co2-insights/generate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("X-Advisory-Degraded"))

	rec = do(t, r, http.MethodGet, "/api/leaderboard/users?month=1&year=2024", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.Equal(t, 351.0, board[0]["totalCO2"])

	rec = do(t, r, http.MethodGet, "/api/leaderboard/regions?month=13&year=2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileAndDeletion(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "profile@example.com")

	rec := do(t, r, http.MethodPatch, "/api/me/profile", token, map[string]string{"language": "ru"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"language":"ru"`)

	rec = do(t, r, http.MethodDelete, "/api/me", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeatherRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/weather", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report weather.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "almaty", report.Region)
	assert.Equal(t, weather.SourceFallback, report.Source)

	rec = do(t, r, http.MethodGet, "/api/weather/astana", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"forecast":[]`)
}
