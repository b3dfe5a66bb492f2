package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/advisor"
	"github.com/yungbote/ecotrack-backend/internal/analytics"
	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const dashboardPredictionLimit = 5

type Dashboard struct {
	User            *user.User                `json:"user"`
	Consumption     footprint.Consumption     `json:"consumption"`
	Footprint       footprint.Result          `json:"footprint"`
	CO2Footprint    float64                   `json:"co2Footprint"`
	Changes         analytics.Changes         `json:"changes"`
	Readings        []*consumption.Reading    `json:"consumptionReadings"`
	Predictions     []*consumption.Prediction `json:"predictions"`
	Recommendations []*advice.Recommendation  `json:"recommendations"`
}

type FootprintSummary struct {
	Consumption   footprint.Consumption   `json:"consumption"`
	Footprint     footprint.Result        `json:"carbonFootprint"`
	Equivalencies []footprint.Equivalency `json:"equivalencies"`
	Readings      int                     `json:"readings"`
}

type DashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	// Footprint totals the most recent readings with the configured factor set.
	Footprint(ctx context.Context, userID uuid.UUID) (*FootprintSummary, error)
}

type dashboardService struct {
	log                *logger.Logger
	userRepo           repos.UserRepo
	readingRepo        repos.ReadingRepo
	predictionRepo     repos.PredictionRepo
	recommendationRepo repos.RecommendationRepo
	factors            footprint.FactorSet
	now                func() time.Time
}

func NewDashboardService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	readingRepo repos.ReadingRepo,
	predictionRepo repos.PredictionRepo,
	recommendationRepo repos.RecommendationRepo,
	factors footprint.FactorSet,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		log:                serviceLog,
		userRepo:           userRepo,
		readingRepo:        readingRepo,
		predictionRepo:     predictionRepo,
		recommendationRepo: recommendationRepo,
		factors:            factors,
		now:                time.Now,
	}
}

func (ds *dashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	dbc := dbctx.From(ctx)

	u, err := ds.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, persistenceErr("load user", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, pkgerrors.ErrNotFound)
	}

	readings, err := ds.readingRepo.ListRecent(dbc, userID, advisor.HeuristicWindow)
	if err != nil {
		return nil, persistenceErr("load readings", err)
	}

	now := ds.now().UTC()
	current := analytics.FindMonth(readings, now.Year(), int(now.Month()))
	previous := analytics.PreviousMonth(readings, now.Year(), int(now.Month()))

	var usage footprint.Consumption
	if current != nil {
		usage = footprint.FromReading(current)
	}
	result := footprint.ComputeFootprint(usage, ds.factors)

	predictions, err := ds.predictionRepo.ListByUser(dbc, userID, dashboardPredictionLimit)
	if err != nil {
		return nil, persistenceErr("load predictions", err)
	}
	recs, err := ds.recommendationRepo.ListByUser(dbc, userID, true, 0)
	if err != nil {
		return nil, persistenceErr("load recommendations", err)
	}

	return &Dashboard{
		User:            u,
		Consumption:     usage,
		Footprint:       result,
		CO2Footprint:    result.Total,
		Changes:         analytics.Compare(current, previous, ds.factors),
		Readings:        readings,
		Predictions:     predictions,
		Recommendations: recs,
	}, nil
}

func (ds *dashboardService) Footprint(ctx context.Context, userID uuid.UUID) (*FootprintSummary, error) {
	readings, err := ds.readingRepo.ListRecent(dbctx.From(ctx), userID, advisor.HeuristicWindow)
	if err != nil {
		return nil, persistenceErr("load readings", err)
	}
	total := footprint.Sum(readings)
	kg := footprint.Kg(total, ds.factors).Total()
	eq := footprint.Equivalencies(kg)
	if eq == nil {
		eq = []footprint.Equivalency{}
	}
	return &FootprintSummary{
		Consumption:   total,
		Footprint:     footprint.ComputeFootprint(total, ds.factors),
		Equivalencies: eq,
		Readings:      len(readings),
	}, nil
}
