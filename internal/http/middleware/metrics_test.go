package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yungbote/ecotrack-backend/internal/observability"
)

func TestMetricsLabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()
	r := gin.New()
	r.Use(Metrics(m))
	r.PATCH("/api/recommendations/:id/read", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(MetricsPath, gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/recommendations/a/read", "/api/recommendations/b/read"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, path, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	body := rec.Body.String()

	assert.Contains(t, body, `ecotrack_http_requests_total{method="PATCH",route="/api/recommendations/:id/read",status="200"} 2`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.NotContains(t, body, `route="/metrics"`)
}
