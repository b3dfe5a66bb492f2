package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/http/response"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GET /api/recommendations?unread=true
func (rh *RecommendationHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recs, err := rh.recommendationService.List(c.Request.Context(), userID, queryBool(c, "unread"))
	if err != nil {
		response.RespondServiceError(c, err, "list_recommendations_failed")
		return
	}
	response.RespondOK(c, recs)
}

func (rh *RecommendationHandler) Generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recs, err := rh.recommendationService.Generate(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "generate_recommendations_failed")
		return
	}
	response.RespondOK(c, recs)
}

func (rh *RecommendationHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := rh.recommendationService.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.RespondServiceError(c, err, "mark_read_failed")
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

func (rh *RecommendationHandler) Clear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := rh.recommendationService.Clear(c.Request.Context(), userID); err != nil {
		response.RespondServiceError(c, err, "clear_recommendations_failed")
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// headerDegraded marks a 200 whose content fell back after a model failure.
const headerDegraded = "X-Advisory-Degraded"

type InsightHandler struct {
	log            *logger.Logger
	insightService services.InsightService
}

func NewInsightHandler(log *logger.Logger, insightService services.InsightService) *InsightHandler {
	return &InsightHandler{log: log.With("handler", "InsightHandler"), insightService: insightService}
}

func (ih *InsightHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	insights, err := ih.insightService.List(c.Request.Context(), userID, queryBool(c, "unread"))
	if err != nil {
		response.RespondServiceError(c, err, "list_insights_failed")
		return
	}
	response.RespondOK(c, insights)
}

// Generate reports a failed model call as an empty list; the client only
// ever sees a storage failure as an error.
func (ih *InsightHandler) Generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	insights, err := ih.insightService.Generate(c.Request.Context(), userID)
	if errors.Is(err, pkgerrors.ErrExternalCapability) {
		ih.log.Warn("insight generation degraded", "user_id", userID, "error", err)
		c.Header(headerDegraded, "true")
		insights, err = []*advice.CO2Insight{}, nil
	}
	if err != nil {
		response.RespondServiceError(c, err, "generate_insights_failed")
		return
	}
	response.RespondOK(c, insights)
}

func (ih *InsightHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ih.insightService.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.RespondServiceError(c, err, "mark_read_failed")
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

func (ih *InsightHandler) Clear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := ih.insightService.Clear(c.Request.Context(), userID); err != nil {
		response.RespondServiceError(c, err, "clear_insights_failed")
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
