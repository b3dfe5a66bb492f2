package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/clients/redis"
	"github.com/yungbote/ecotrack-backend/internal/http/response"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

// RateLimit budgets a route per authenticated user, falling back to the
// client IP. A nil limiter disables it; limiter errors let the request
// through.
func RateLimit(log *logger.Logger, limiter redis.Limiter, scope string) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		who := c.ClientIP()
		if userID := ctxutil.UserID(c.Request.Context()); userID != uuid.Nil {
			who = userID.String()
		}
		decision, err := limiter.Allow(c.Request.Context(), scope+":"+who)
		if err != nil {
			if log != nil {
				log.Warn("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			}
			c.Next()
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.ResetIn.Seconds()))))
			response.AbortError(c, http.StatusTooManyRequests, "rate_limited",
				fmt.Errorf("too many %s requests: %w", scope, pkgerrors.ErrRateLimited))
			return
		}
		c.Next()
	}
}
