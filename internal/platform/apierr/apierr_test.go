package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", fmt.Errorf("quantity: %w", pkgerrors.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"missing", pkgerrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"storage", fmt.Errorf("save reading: %w", pkgerrors.ErrPersistence), http.StatusInternalServerError, "storage_failure"},
		{"limited", pkgerrors.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "dashboard_failed"},
		{"passthrough", New(http.StatusTeapot, "teapot", nil), http.StatusTeapot, "teapot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err, "dashboard_failed")
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}
