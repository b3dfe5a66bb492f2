package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

func TestRequestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(log))
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/consumption", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/consumption", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/api/dashboard", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/healthcheck", nil),
		httptest.NewRequest(http.MethodGet, "/api/consumption", nil),
		httptest.NewRequest(http.MethodPost, "/api/consumption", nil),
		httptest.NewRequest(http.MethodGet, "/api/dashboard", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)

	fields := entries[1].ContextMap()
	assert.Equal(t, "/api/consumption", fields["route"])
	assert.NotEmpty(t, fields["request_id"])
	assert.NotEmpty(t, fields["trace_id"])
}
