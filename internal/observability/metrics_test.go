package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveLLMRequest("gpt-4o", "ok", time.Second, 1, 1)
	m.IncAdvisorRun("recommendations", AdvisorPathAI)
	m.IncWeatherLookup("live")
	m.IncPrediction("gas", "created")
	m.ApiInflightInc()
	m.ApiInflightDec()
}

func TestCounters(t *testing.T) {
	m := NewMetrics()
	m.IncAdvisorRun("recommendations", AdvisorPathHeuristic)
	m.IncAdvisorRun("recommendations", AdvisorPathHeuristic)
	m.IncAdvisorRun("insights", AdvisorPathAI)
	m.ObserveLLMRequest("gpt-4o", "ok", 2*time.Second, 100, 40)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.advisorRuns.WithLabelValues("recommendations", AdvisorPathHeuristic)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.advisorRuns.WithLabelValues("insights", AdvisorPathAI)))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.llmTokens.WithLabelValues("gpt-4o", "input")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.llmTokens.WithLabelValues("gpt-4o", "output")))
}

func TestHandlerExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/dashboard", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ecotrack_http_requests_total{method="GET",route="/api/dashboard",status="200"} 1`), body)
}
