package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/analytics"
	"github.com/yungbote/ecotrack-backend/internal/http/response"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	analyticsService services.AnalyticsService
}

func NewDashboardHandler(dashboardService services.DashboardService, analyticsService services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, analyticsService: analyticsService}
}

func (dh *DashboardHandler) Dashboard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	d, err := dh.dashboardService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "dashboard_failed")
		return
	}
	response.RespondOK(c, d)
}

func (dh *DashboardHandler) Footprint(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	f, err := dh.dashboardService.Footprint(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "footprint_failed")
		return
	}
	response.RespondOK(c, f)
}

// GET /api/analytics?period=week|month|year
func (dh *DashboardHandler) Analytics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	report, err := dh.analyticsService.Chart(c.Request.Context(), userID, analytics.ParsePeriod(c.Query("period")))
	if err != nil {
		response.RespondServiceError(c, err, "analytics_failed")
		return
	}
	response.RespondOK(c, report)
}
