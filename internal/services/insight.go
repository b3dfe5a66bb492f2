package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ecotrack-backend/internal/advisor"
	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/platform/openai"
)

const advisorKindInsights = "insights"

var errNoGenerator = errors.New("text generation is not configured")

type InsightService interface {
	// Generate replaces the user's insights with a fresh model-produced set.
	// A failed model call returns an empty list together with an error
	// wrapping ErrExternalCapability; an unreadable answer is just empty.
	Generate(ctx context.Context, userID uuid.UUID) ([]*advice.CO2Insight, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*advice.CO2Insight, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type insightService struct {
	log         *logger.Logger
	readingRepo repos.ReadingRepo
	insightRepo repos.InsightRepo
	generator   openai.Client
	weather     WeatherService
	metrics     *observability.Metrics
	factors     footprint.FactorSet
}

func NewInsightService(
	log *logger.Logger,
	readingRepo repos.ReadingRepo,
	insightRepo repos.InsightRepo,
	generator openai.Client,
	weather WeatherService,
	metrics *observability.Metrics,
) InsightService {
	serviceLog := log.With("service", "InsightService")
	return &insightService{
		log:         serviceLog,
		readingRepo: readingRepo,
		insightRepo: insightRepo,
		generator:   generator,
		weather:     weather,
		metrics:     metrics,
		factors:     footprint.Insights(),
	}
}

type insightMetadata struct {
	Model     string              `json:"model,omitempty"`
	FactorSet string              `json:"factor_set"`
	KgCO2     footprint.Breakdown `json:"kg_co2"`
	Weather   string              `json:"weather,omitempty"`
	Readings  int                 `json:"readings"`
}

func (is *insightService) Generate(ctx context.Context, userID uuid.UUID) ([]*advice.CO2Insight, error) {
	dbc := dbctx.From(ctx)
	empty := []*advice.CO2Insight{}

	if err := is.insightRepo.DeleteByUser(dbc, userID); err != nil {
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathFailed)
		return nil, persistenceErr("clear insights", err)
	}

	readings, err := is.readingRepo.ListRecent(dbc, userID, advisor.InsightWindow)
	if err != nil {
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathFailed)
		return nil, persistenceErr("load readings", err)
	}
	if len(readings) == 0 {
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathEmpty)
		return empty, nil
	}
	if is.generator == nil {
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathFailed)
		return empty, fmt.Errorf("co2 insights: %w: %w", pkgerrors.ErrExternalCapability, errNoGenerator)
	}

	kg := footprint.Kg(footprint.Sum(readings), is.factors)
	weatherCtx := ""
	if is.weather != nil {
		weatherCtx = is.weather.AdvisoryContext(ctx)
	}

	raw, err := is.generator.GenerateJSONObject(ctx,
		advisor.InsightSystemPrompt,
		advisor.InsightPrompt(kg, weatherCtx, footprint.Summary(kg.Total())),
		openai.Options{MaxTokens: advisor.InsightMaxTokens},
	)
	if err != nil {
		is.log.Warn("insight generation failed", "user_id", userID, "error", err)
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathFailed)
		return empty, fmt.Errorf("co2 insights: %w: %w", pkgerrors.ErrExternalCapability, err)
	}

	drafts, err := advisor.ParseInsights(raw)
	if err != nil {
		is.log.Warn("insight payload unreadable", "user_id", userID, "error", err)
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathEmpty)
		return empty, nil
	}

	metaJSON, err := json.Marshal(insightMetadata{
		Model:     is.generator.Model(),
		FactorSet: is.factors.Name,
		KgCO2:     kg,
		Weather:   weatherCtx,
		Readings:  len(readings),
	})
	if err != nil {
		return nil, fmt.Errorf("encode insight metadata: %w", err)
	}
	insights := make([]*advice.CO2Insight, 0, len(drafts))
	for _, d := range drafts {
		insights = append(insights, d.Model(userID, datatypes.JSON(metaJSON)))
	}

	saved, err := is.insightRepo.Create(dbc, insights)
	if err != nil {
		is.metrics.IncAdvisorRun(advisorKindInsights, observability.AdvisorPathFailed)
		return nil, persistenceErr("save insights", err)
	}
	path := observability.AdvisorPathAI
	if len(saved) == 0 {
		path = observability.AdvisorPathEmpty
	}
	is.metrics.IncAdvisorRun(advisorKindInsights, path)
	return saved, nil
}

func (is *insightService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*advice.CO2Insight, error) {
	out, err := is.insightRepo.ListByUser(dbctx.From(ctx), userID, unreadOnly, 0)
	if err != nil {
		return nil, persistenceErr("list insights", err)
	}
	return out, nil
}

func (is *insightService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := is.insightRepo.MarkRead(dbctx.From(ctx), userID, id)
	if err != nil {
		return persistenceErr("mark insight read", err)
	}
	if !ok {
		return fmt.Errorf("insight %s: %w", id, pkgerrors.ErrNotFound)
	}
	return nil
}

func (is *insightService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := is.insightRepo.DeleteByUser(dbctx.From(ctx), userID); err != nil {
		return persistenceErr("clear insights", err)
	}
	return nil
}
