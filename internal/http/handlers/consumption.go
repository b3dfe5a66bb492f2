package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/http/response"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type ConsumptionHandler struct {
	consumptionService services.ConsumptionService
}

func NewConsumptionHandler(consumptionService services.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{consumptionService: consumptionService}
}

type readingRequest struct {
	Electricity    quantity `json:"electricity"`
	Water          quantity `json:"water"`
	Gas            quantity `json:"gas"`
	Month          int      `json:"month"`
	Year           int      `json:"year"`
	WeekNumber     *int     `json:"weekNumber"`
	IsAdvancedMode bool     `json:"isAdvancedMode"`
	ReadingDate    string   `json:"readingDate"`
}

// POST /api/consumption
func (ch *ConsumptionHandler) Submit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.ReadingInput{
		Electricity:    string(req.Electricity),
		Water:          string(req.Water),
		Gas:            string(req.Gas),
		Month:          req.Month,
		Year:           req.Year,
		WeekNumber:     req.WeekNumber,
		IsAdvancedMode: req.IsAdvancedMode,
	}
	if strings.TrimSpace(req.ReadingDate) != "" {
		d, _, err := parseDate(req.ReadingDate)
		if err != nil {
			response.RespondServiceError(c, err, "invalid_request")
			return
		}
		in.ReadingDate = &d
	}
	reading, err := ch.consumptionService.Submit(c.Request.Context(), userID, in)
	if err != nil {
		response.RespondServiceError(c, err, "save_reading_failed")
		return
	}
	response.RespondOK(c, reading)
}

// GET /api/consumption?limit=
func (ch *ConsumptionHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_request")
		return
	}
	readings, err := ch.consumptionService.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.RespondServiceError(c, err, "list_readings_failed")
		return
	}
	response.RespondOK(c, readings)
}

// GET /api/consumption/range?startDate=&endDate=
// A bare endDate covers that whole day.
func (ch *ConsumptionHandler) Range(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rawStart, rawEnd := c.Query("startDate"), c.Query("endDate")
	if strings.TrimSpace(rawStart) == "" || strings.TrimSpace(rawEnd) == "" {
		response.RespondServiceError(c, fmt.Errorf("startDate and endDate are required: %w", pkgerrors.ErrInvalidArgument), "invalid_request")
		return
	}
	start, _, err := parseDate(rawStart)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_request")
		return
	}
	end, wholeDay, err := parseDate(rawEnd)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_request")
		return
	}
	if wholeDay {
		end = end.Add(24 * time.Hour)
	}
	readings, err := ch.consumptionService.ListRange(c.Request.Context(), userID, start, end)
	if err != nil {
		response.RespondServiceError(c, err, "list_readings_failed")
		return
	}
	response.RespondOK(c, readings)
}
