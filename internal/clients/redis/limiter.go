package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

type Limiter interface {
	// Allow counts one hit for key in the current window.
	Allow(ctx context.Context, key string) (Decision, error)
}

// fixedWindowLimiter counts hits per key in aligned windows with INCR and
// EXPIRE. A key's counter lives at most one window.
type fixedWindowLimiter struct {
	log    *logger.Logger
	rdb    goredis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewFixedWindowLimiter(log *logger.Logger, rdb goredis.Cmdable, prefix string, limit int, window time.Duration) (Limiter, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("limit and window must be positive (limit=%d window=%s)", limit, window)
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &fixedWindowLimiter{
		log:    log.With("client", "RedisLimiter"),
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

func (l *fixedWindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowKey, resetIn := l.bucket(key, l.now())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	count := int(incr.Val())
	if count > l.limit {
		l.log.Debug("rate limit exceeded", "key", key, "count", count)
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= l.limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}

func (l *fixedWindowLimiter) bucket(key string, now time.Time) (string, time.Duration) {
	size := l.window.Nanoseconds()
	start := now.UnixNano() / size * size
	resetIn := time.Duration(start + size - now.UnixNano())
	return l.prefix + ":" + key + ":" + strconv.FormatInt(start/int64(time.Second), 10), resetIn
}
