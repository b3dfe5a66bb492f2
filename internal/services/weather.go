package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/ecotrack-backend/internal/advisor"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
)

// advisoryForecastDays is how far ahead the advisory paths look.
const advisoryForecastDays = 7

type WeatherOutlook struct {
	Current  *weather.Report         `json:"current"`
	Forecast []weather.ForecastPoint `json:"forecast"`
}

type WeatherService interface {
	Current(ctx context.Context, region string) (*weather.Report, error)
	Outlook(ctx context.Context, region string, days int) (*WeatherOutlook, error)
	// AdvisoryContext summarizes the reference region's weather for prompts.
	// It returns "" when nothing usable came back.
	AdvisoryContext(ctx context.Context) string
	Regions() []string
}

type weatherService struct {
	log             *logger.Logger
	provider        weather.Provider
	metrics         *observability.Metrics
	referenceRegion string
}

func NewWeatherService(log *logger.Logger, provider weather.Provider, metrics *observability.Metrics, referenceRegion string) WeatherService {
	serviceLog := log.With("service", "WeatherService")
	if referenceRegion == "" {
		referenceRegion = "almaty"
	}
	return &weatherService{
		log:             serviceLog,
		provider:        provider,
		metrics:         metrics,
		referenceRegion: referenceRegion,
	}
}

func (ws *weatherService) Current(ctx context.Context, region string) (*weather.Report, error) {
	rep, err := ws.provider.Current(ctx, region)
	if err != nil || rep == nil {
		ws.log.Warn("weather provider failed, using fallback", "region", region, "error", err)
		rep = weather.Fallback(region)
	}
	ws.metrics.IncWeatherLookup(rep.Source)
	return rep, nil
}

func (ws *weatherService) Outlook(ctx context.Context, region string, days int) (*WeatherOutlook, error) {
	var (
		current  *weather.Report
		forecast []weather.ForecastPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep, err := ws.Current(gctx, region)
		current = rep
		return err
	})
	g.Go(func() error {
		points, err := ws.provider.Forecast(gctx, region, days)
		if err != nil {
			ws.log.Warn("weather forecast failed", "region", region, "error", err)
			points = nil
		}
		forecast = points
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if forecast == nil {
		forecast = []weather.ForecastPoint{}
	}
	return &WeatherOutlook{Current: current, Forecast: forecast}, nil
}

func (ws *weatherService) AdvisoryContext(ctx context.Context) string {
	out, err := ws.Outlook(ctx, ws.referenceRegion, advisoryForecastDays)
	if err != nil || out == nil {
		return ""
	}
	return advisor.WeatherContext(out.Current, out.Forecast)
}

func (ws *weatherService) Regions() []string {
	return weather.Regions()
}
