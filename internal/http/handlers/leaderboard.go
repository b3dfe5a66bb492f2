package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/http/response"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func monthYear(c *gin.Context) (int, int, bool) {
	month, err := queryInt(c, "month", 0)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_request")
		return 0, 0, false
	}
	year, err := queryInt(c, "year", 0)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_request")
		return 0, 0, false
	}
	return month, year, true
}

// GET /api/leaderboard/users?month=&year=
func (lh *LeaderboardHandler) Users(c *gin.Context) {
	month, year, ok := monthYear(c)
	if !ok {
		return
	}
	entries, err := lh.leaderboardService.Users(c.Request.Context(), month, year)
	if err != nil {
		response.RespondServiceError(c, err, "leaderboard_failed")
		return
	}
	response.RespondOK(c, entries)
}

// GET /api/leaderboard/regions?month=&year=
func (lh *LeaderboardHandler) Regions(c *gin.Context) {
	month, year, ok := monthYear(c)
	if !ok {
		return
	}
	entries, err := lh.leaderboardService.Regions(c.Request.Context(), month, year)
	if err != nil {
		response.RespondServiceError(c, err, "leaderboard_failed")
		return
	}
	response.RespondOK(c, entries)
}

func (lh *LeaderboardHandler) Emissions(c *gin.Context) {
	entries, err := lh.leaderboardService.Emissions(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "leaderboard_failed")
		return
	}
	response.RespondOK(c, entries)
}

func (lh *LeaderboardHandler) MonthlyProgress(c *gin.Context) {
	entries, err := lh.leaderboardService.MonthlyProgress(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "leaderboard_failed")
		return
	}
	response.RespondOK(c, entries)
}
