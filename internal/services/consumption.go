package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const (
	defaultReadingListLimit = 50
	maxWeekNumber           = 4
)

// ReadingInput is a submitted reading. Quantities are raw text; blank means 0.
type ReadingInput struct {
	Electricity    string
	Water          string
	Gas            string
	Month          int
	Year           int
	WeekNumber     *int
	IsAdvancedMode bool
	// ReadingDate defaults to the start of the reading's period.
	ReadingDate *time.Time
}

type ConsumptionService interface {
	// Submit stores the reading, replacing any earlier one for the same
	// period, then refreshes predictions and recommendations from the stored
	// history. Failures after the write are logged and do not undo it.
	Submit(ctx context.Context, userID uuid.UUID, in ReadingInput) (*consumption.Reading, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*consumption.Reading, error)
	ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*consumption.Reading, error)
}

type consumptionService struct {
	log             *logger.Logger
	readingRepo     repos.ReadingRepo
	predictions     PredictionService
	recommendations RecommendationService
}

func NewConsumptionService(
	log *logger.Logger,
	readingRepo repos.ReadingRepo,
	predictions PredictionService,
	recommendations RecommendationService,
) ConsumptionService {
	serviceLog := log.With("service", "ConsumptionService")
	return &consumptionService{
		log:             serviceLog,
		readingRepo:     readingRepo,
		predictions:     predictions,
		recommendations: recommendations,
	}
}

func (cs *consumptionService) Submit(ctx context.Context, userID uuid.UUID, in ReadingInput) (*consumption.Reading, error) {
	reading, err := buildReading(userID, in)
	if err != nil {
		return nil, err
	}

	stored, created, err := cs.readingRepo.Upsert(dbctx.From(ctx), reading)
	if err != nil {
		return nil, persistenceErr("save reading", err)
	}
	cs.log.Info("reading stored",
		"user_id", userID,
		"period", consumption.NaturalKey(stored.Year, stored.Month, stored.WeekNumber),
		"created", created,
	)

	// Derived data reads the committed history, so it runs after the upsert.
	for _, res := range consumption.Resources {
		if _, err := cs.predictions.Generate(ctx, userID, res); err != nil {
			cs.log.Warn("prediction refresh failed", "user_id", userID, "resource", res, "error", err)
		}
	}
	if _, err := cs.recommendations.Generate(ctx, userID); err != nil {
		cs.log.Warn("recommendation refresh failed", "user_id", userID, "error", err)
	}
	return stored, nil
}

func buildReading(userID uuid.UUID, in ReadingInput) (*consumption.Reading, error) {
	if in.Month < 1 || in.Month > 12 {
		return nil, invalidArg("month %d out of range", in.Month)
	}
	if in.Year < 1970 || in.Year > 9999 {
		return nil, invalidArg("year %d out of range", in.Year)
	}
	if in.WeekNumber != nil && (*in.WeekNumber < 1 || *in.WeekNumber > maxWeekNumber) {
		return nil, invalidArg("week number %d out of range", *in.WeekNumber)
	}

	quantities := map[consumption.Resource]string{
		consumption.Electricity: in.Electricity,
		consumption.Water:       in.Water,
		consumption.Gas:         in.Gas,
	}
	parsed := make(map[consumption.Resource]decimal.Decimal, len(quantities))
	for _, res := range consumption.Resources {
		v, err := footprint.ParseQuantity(quantities[res])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", res, err)
		}
		parsed[res] = decimal.NewFromFloat(v).Round(2)
	}

	date := periodStart(in.Year, in.Month, in.WeekNumber)
	if in.ReadingDate != nil && !in.ReadingDate.IsZero() {
		date = in.ReadingDate.UTC()
	}

	return &consumption.Reading{
		ID:             uuid.New(),
		UserID:         userID,
		Electricity:    parsed[consumption.Electricity],
		Water:          parsed[consumption.Water],
		Gas:            parsed[consumption.Gas],
		Month:          in.Month,
		Year:           in.Year,
		WeekNumber:     in.WeekNumber,
		IsAdvancedMode: in.IsAdvancedMode || in.WeekNumber != nil,
		ReadingDate:    date,
	}, nil
}

// periodStart is the first day of the month, or of the given week within it.
func periodStart(year, month int, week *int) time.Time {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if week != nil {
		start = start.AddDate(0, 0, 7*(*week-1))
	}
	return start
}

func (cs *consumptionService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*consumption.Reading, error) {
	if limit <= 0 {
		limit = defaultReadingListLimit
	}
	out, err := cs.readingRepo.ListRecent(dbctx.From(ctx), userID, limit)
	if err != nil {
		return nil, persistenceErr("list readings", err)
	}
	return out, nil
}

func (cs *consumptionService) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*consumption.Reading, error) {
	if start.IsZero() || end.IsZero() {
		return nil, invalidArg("start and end dates are required")
	}
	if end.Before(start) {
		return nil, invalidArg("end date precedes start date")
	}
	out, err := cs.readingRepo.ListByUserInRange(dbctx.From(ctx), userID, start, end)
	if err != nil {
		return nil, persistenceErr("list readings in range", err)
	}
	return out, nil
}
