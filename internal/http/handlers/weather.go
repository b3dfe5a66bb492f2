package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/http/response"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

const (
	defaultWeatherLocation = "almaty"
	outlookDays            = 5
)

type WeatherHandler struct {
	weatherService services.WeatherService
}

func NewWeatherHandler(weatherService services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// GET /api/weather/:region returns current conditions plus a short forecast.
func (wh *WeatherHandler) Region(c *gin.Context) {
	outlook, err := wh.weatherService.Outlook(c.Request.Context(), c.Param("region"), outlookDays)
	if err != nil {
		response.RespondServiceError(c, err, "weather_failed")
		return
	}
	response.RespondOK(c, outlook)
}

// GET /api/weather?location=
func (wh *WeatherHandler) Current(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		location = defaultWeatherLocation
	}
	report, err := wh.weatherService.Current(c.Request.Context(), location)
	if err != nil {
		response.RespondServiceError(c, err, "weather_failed")
		return
	}
	response.RespondOK(c, report)
}
