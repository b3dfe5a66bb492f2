package services

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ecotrack-backend/internal/advisor"
	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/platform/openai"
)

const advisorKindRecommendations = "recommendations"

type RecommendationService interface {
	// Generate always yields a list: the model's suggestions when it answers
	// with a usable payload, the rule-based ones otherwise. Only storage
	// failures are returned as errors.
	Generate(ctx context.Context, userID uuid.UUID) ([]*advice.Recommendation, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*advice.Recommendation, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type recommendationService struct {
	log                *logger.Logger
	readingRepo        repos.ReadingRepo
	recommendationRepo repos.RecommendationRepo
	generator          openai.Client
	weather            WeatherService
	metrics            *observability.Metrics
}

// NewRecommendationService builds the service. generator may be nil, in which
// case every generation takes the rule-based path.
func NewRecommendationService(
	log *logger.Logger,
	readingRepo repos.ReadingRepo,
	recommendationRepo repos.RecommendationRepo,
	generator openai.Client,
	weather WeatherService,
	metrics *observability.Metrics,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{
		log:                serviceLog,
		readingRepo:        readingRepo,
		recommendationRepo: recommendationRepo,
		generator:          generator,
		weather:            weather,
		metrics:            metrics,
	}
}

type recommendationMetadata struct {
	Source  advice.Source    `json:"source"`
	Model   string           `json:"model,omitempty"`
	Weather string           `json:"weather,omitempty"`
	Summary *advisor.Summary `json:"summary,omitempty"`
}

func (rs *recommendationService) Generate(ctx context.Context, userID uuid.UUID) ([]*advice.Recommendation, error) {
	dbc := dbctx.From(ctx)

	recent, err := rs.readingRepo.ListRecentMonthly(dbc, userID, advisor.SummaryWindow)
	if err != nil {
		rs.metrics.IncAdvisorRun(advisorKindRecommendations, observability.AdvisorPathFailed)
		return nil, persistenceErr("load readings", err)
	}

	var (
		drafts []advisor.RecommendationDraft
		meta   recommendationMetadata
		fromAI bool
	)
	if len(recent) > 0 && rs.generator != nil {
		drafts, meta, err = rs.fromModel(ctx, recent)
		if err != nil {
			rs.log.Warn("model recommendations unavailable, using rules", "user_id", userID, "error", err)
		} else {
			fromAI = true
		}
	}

	path := observability.AdvisorPathAI
	if !fromAI {
		path = observability.AdvisorPathHeuristic
		history, err := rs.readingRepo.ListRecent(dbc, userID, advisor.HeuristicWindow)
		if err != nil {
			rs.metrics.IncAdvisorRun(advisorKindRecommendations, observability.AdvisorPathFailed)
			return nil, persistenceErr("load readings", err)
		}
		drafts = advisor.Heuristic(history)
		meta = recommendationMetadata{Source: advice.SourceHeuristic}
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode recommendation metadata: %w", err)
	}
	recs := make([]*advice.Recommendation, 0, len(drafts))
	for _, d := range drafts {
		recs = append(recs, d.Model(userID, datatypes.JSON(metaJSON)))
	}

	saved, err := rs.recommendationRepo.Create(dbc, recs)
	if err != nil {
		rs.metrics.IncAdvisorRun(advisorKindRecommendations, observability.AdvisorPathFailed)
		return nil, persistenceErr("save recommendations", err)
	}
	rs.metrics.IncAdvisorRun(advisorKindRecommendations, path)
	rs.log.Info("recommendations generated", "user_id", userID, "path", path, "count", len(saved))
	return saved, nil
}

func (rs *recommendationService) fromModel(ctx context.Context, recent []*consumption.Reading) ([]advisor.RecommendationDraft, recommendationMetadata, error) {
	summary := advisor.Summarize(recent)
	weatherCtx := ""
	if rs.weather != nil {
		weatherCtx = rs.weather.AdvisoryContext(ctx)
	}

	raw, err := rs.generator.GenerateJSONObject(ctx,
		advisor.RecommendationSystemPrompt,
		advisor.RecommendationPrompt(summary, weatherCtx),
		openai.Options{},
	)
	if err != nil {
		return nil, recommendationMetadata{}, fmt.Errorf("%w: %w", pkgerrors.ErrExternalCapability, err)
	}
	drafts, err := advisor.ParseRecommendations(raw)
	if err != nil {
		return nil, recommendationMetadata{}, fmt.Errorf("%w: %w", pkgerrors.ErrExternalCapability, err)
	}
	return drafts, recommendationMetadata{
		Source:  advice.SourceAI,
		Model:   rs.generator.Model(),
		Weather: weatherCtx,
		Summary: &summary,
	}, nil
}

func (rs *recommendationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*advice.Recommendation, error) {
	out, err := rs.recommendationRepo.ListByUser(dbctx.From(ctx), userID, unreadOnly, 0)
	if err != nil {
		return nil, persistenceErr("list recommendations", err)
	}
	return out, nil
}

func (rs *recommendationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := rs.recommendationRepo.MarkRead(dbctx.From(ctx), userID, id)
	if err != nil {
		return persistenceErr("mark recommendation read", err)
	}
	if !ok {
		return fmt.Errorf("recommendation %s: %w", id, pkgerrors.ErrNotFound)
	}
	return nil
}

func (rs *recommendationService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := rs.recommendationRepo.DeleteByUser(dbctx.From(ctx), userID); err != nil {
		return persistenceErr("clear recommendations", err)
	}
	return nil
}
