package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/http/response"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

func (ph *PredictionHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_request")
		return
	}
	preds, err := ph.predictionService.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.RespondServiceError(c, err, "list_predictions_failed")
		return
	}
	response.RespondOK(c, preds)
}

// Generate answers null when there is not enough history yet.
func (ph *PredictionHandler) Generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	pred, err := ph.predictionService.Generate(c.Request.Context(), userID, consumption.Resource(req.Type))
	if err != nil {
		response.RespondServiceError(c, err, "prediction_failed")
		return
	}
	response.RespondOK(c, pred)
}
