package weather

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/pkg/httpx"
	"github.com/yungbote/ecotrack-backend/internal/platform/envutil"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const (
	SourceLive     = "live"
	SourceFallback = "fallback"

	defaultBaseURL = "https://api.openweathermap.org"
	// OpenWeather forecasts come in 3-hour slots.
	slotsPerDay = 8
)

type Report struct {
	Region      string  `json:"region"`
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Impact      string  `json:"impact"`
	Source      string  `json:"source"`
}

type ForecastPoint struct {
	Time        time.Time `json:"date"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"`
}

// Provider is the weather capability consumed by the advisory services.
type Provider interface {
	// Current never fails for a known or unknown region: it degrades to the
	// static fallback table.
	Current(ctx context.Context, region string) (*Report, error)
	// Forecast returns an empty series when the live API is unavailable.
	Forecast(ctx context.Context, region string, days int) ([]ForecastPoint, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ConfigFromEnv reads OPENWEATHER_API_KEY, OPENWEATHER_BASE_URL and
// WEATHER_TIMEOUT_SECONDS.
func ConfigFromEnv() Config {
	return Config{
		APIKey:  envutil.String("OPENWEATHER_API_KEY", ""),
		BaseURL: envutil.String("OPENWEATHER_BASE_URL", defaultBaseURL),
		Timeout: envutil.Seconds("WEATHER_TIMEOUT_SECONDS", 10*time.Second),
	}
}

type client struct {
	log        *logger.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) Provider {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		log:        log.With("client", "WeatherClient"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

func (c *client) Current(ctx context.Context, raw string) (*Report, error) {
	key := normalizeRegion(raw)
	reg, ok := regions[key]
	if !ok || c.apiKey == "" {
		return Fallback(raw), nil
	}

	ctx, span := observability.Tracer("weather").Start(ctx, "weather.current")
	span.SetAttributes(attribute.String("weather.region", key))
	defer span.End()

	var out currentResponse
	if err := c.get(ctx, "/data/2.5/weather", url.Values{"q": {reg.Query}}, &out); err != nil {
		c.log.Warn("live weather unavailable, using fallback", "region", key, "error", err)
		span.RecordError(err)
		return Fallback(raw), nil
	}

	rep := &Report{
		Region:      key,
		Location:    reg.Name,
		Temperature: math.Round(out.Main.Temp),
		Humidity:    out.Main.Humidity,
		WindSpeed:   out.Wind.Speed,
		Impact:      Impact(out.Main.Temp),
		Source:      SourceLive,
	}
	if len(out.Weather) > 0 {
		rep.Description = out.Weather[0].Description
	}
	return rep, nil
}

func (c *client) Forecast(ctx context.Context, raw string, days int) ([]ForecastPoint, error) {
	key := normalizeRegion(raw)
	reg, ok := regions[key]
	if !ok || c.apiKey == "" || days <= 0 {
		return []ForecastPoint{}, nil
	}

	ctx, span := observability.Tracer("weather").Start(ctx, "weather.forecast")
	span.SetAttributes(attribute.String("weather.region", key), attribute.Int("weather.days", days))
	defer span.End()

	q := url.Values{"q": {reg.Query}, "cnt": {fmt.Sprint(days * slotsPerDay)}}
	var out forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", q, &out); err != nil {
		c.log.Warn("weather forecast unavailable", "region", key, "error", err)
		span.RecordError(err)
		return []ForecastPoint{}, nil
	}

	points := make([]ForecastPoint, 0, len(out.List))
	for _, item := range out.List {
		p := ForecastPoint{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: math.Round(item.Main.Temp),
			Humidity:    item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			p.Description = item.Weather[0].Description
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpx.StatusError{Service: "openweather", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("openweather decode: %w", err)
	}
	return nil
}
