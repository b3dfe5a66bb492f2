package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type stubAuth struct {
	valid  string
	userID uuid.UUID
}

func (s *stubAuth) Register(ctx context.Context, in services.RegisterInput) (*user.User, string, error) {
	return nil, "", nil
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	return nil, "", nil
}

func (s *stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if token != s.valid {
		return ctx, pkgerrors.ErrUnauthorized
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: s.userID, TokenString: token}), nil
}

func (s *stubAuth) GetAccessTTL() time.Duration { return time.Hour }

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	am := NewAuthMiddleware(logger.Nop(), &stubAuth{valid: "good", userID: userID})

	r := gin.New()
	r.GET("/api/me", am.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String())
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}
