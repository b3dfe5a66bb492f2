package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/analytics"
	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type AnalyticsReport struct {
	Period   analytics.Period       `json:"period"`
	From     time.Time              `json:"from"`
	To       time.Time              `json:"to"`
	HasData  bool                   `json:"hasData"`
	Chart    *analytics.ChartSeries `json:"chart"`
	Readings []*consumption.Reading `json:"readings"`
}

type AnalyticsService interface {
	Chart(ctx context.Context, userID uuid.UUID, period analytics.Period) (*AnalyticsReport, error)
}

type analyticsService struct {
	log         *logger.Logger
	readingRepo repos.ReadingRepo
	now         func() time.Time
}

func NewAnalyticsService(log *logger.Logger, readingRepo repos.ReadingRepo) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		log:         serviceLog,
		readingRepo: readingRepo,
		now:         time.Now,
	}
}

func (as *analyticsService) Chart(ctx context.Context, userID uuid.UUID, period analytics.Period) (*AnalyticsReport, error) {
	from, to := analytics.Window(period, as.now().UTC())
	readings, err := as.readingRepo.ListByUserInRange(dbctx.From(ctx), userID, from, to)
	if err != nil {
		return nil, persistenceErr("load readings", err)
	}
	report := &AnalyticsReport{
		Period:   period,
		From:     from,
		To:       to,
		Readings: readings,
	}
	if chart, ok := analytics.GroupForChart(readings, period); ok {
		report.HasData = true
		report.Chart = &chart
	}
	return report, nil
}
