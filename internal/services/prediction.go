package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/forecast"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const predictionListLimit = 20

type PredictionService interface {
	// Generate forecasts the next period for one resource. It returns nil, nil
	// when the user has too little history.
	Generate(ctx context.Context, userID uuid.UUID, resource consumption.Resource) (*consumption.Prediction, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*consumption.Prediction, error)
}

type predictionService struct {
	log            *logger.Logger
	readingRepo    repos.ReadingRepo
	predictionRepo repos.PredictionRepo
	metrics        *observability.Metrics
	now            func() time.Time
}

func NewPredictionService(
	log *logger.Logger,
	readingRepo repos.ReadingRepo,
	predictionRepo repos.PredictionRepo,
	metrics *observability.Metrics,
) PredictionService {
	serviceLog := log.With("service", "PredictionService")
	return &predictionService{
		log:            serviceLog,
		readingRepo:    readingRepo,
		predictionRepo: predictionRepo,
		metrics:        metrics,
		now:            time.Now,
	}
}

func (ps *predictionService) Generate(ctx context.Context, userID uuid.UUID, resource consumption.Resource) (*consumption.Prediction, error) {
	if _, err := consumption.ParseResource(string(resource)); err != nil {
		return nil, invalidArg("prediction type: %v", err)
	}

	dbc := dbctx.From(ctx)
	readings, err := ps.readingRepo.ListRecent(dbc, userID, forecast.MaxPoints)
	if err != nil {
		return nil, persistenceErr("load readings", err)
	}
	series := make([]float64, 0, len(readings))
	for _, r := range readings {
		series = append(series, r.Amount(resource))
	}

	now := ps.now().UTC()
	fc, ok := forecast.Predict(series, resource, now.Month())
	if !ok {
		ps.metrics.IncPrediction(string(resource), "insufficient_data")
		ps.log.Debug("not enough history to predict", "user_id", userID, "resource", resource, "points", len(series))
		return nil, nil
	}

	pred := &consumption.Prediction{
		ID:              uuid.New(),
		UserID:          userID,
		Resource:        resource,
		PredictedAmount: decimal.NewFromFloat(fc.PredictedAmount).Round(2),
		Confidence:      decimal.NewFromFloat(fc.Confidence).Round(4),
		PredictionDate:  forecast.PredictionDate(now),
	}
	if _, err := ps.predictionRepo.Create(dbc, []*consumption.Prediction{pred}); err != nil {
		return nil, persistenceErr("save prediction", err)
	}
	ps.metrics.IncPrediction(string(resource), "created")
	return pred, nil
}

func (ps *predictionService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*consumption.Prediction, error) {
	if limit <= 0 {
		limit = predictionListLimit
	}
	out, err := ps.predictionRepo.ListByUser(dbctx.From(ctx), userID, limit)
	if err != nil {
		return nil, persistenceErr("list predictions", err)
	}
	return out, nil
}
