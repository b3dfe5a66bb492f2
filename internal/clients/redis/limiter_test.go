package redis

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

func TestBucketAlignsToWindow(t *testing.T) {
	l := &fixedWindowLimiter{prefix: "rl", limit: 3, window: time.Minute}

	base := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	k1, reset1 := l.bucket("gen:u1", base.Add(5*time.Second))
	k2, reset2 := l.bucket("gen:u1", base.Add(59*time.Second))
	k3, _ := l.bucket("gen:u1", base.Add(61*time.Second))

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "rl:gen:u1:"))
	assert.Equal(t, 55*time.Second, reset1)
	assert.Equal(t, time.Second, reset2)
}

func TestNewFixedWindowLimiterValidates(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	_, err := NewFixedWindowLimiter(logger.Nop(), nil, "", 1, time.Second)
	assert.Error(t, err)
	_, err = NewFixedWindowLimiter(logger.Nop(), rdb, "", 0, time.Second)
	assert.Error(t, err)
	_, err = NewFixedWindowLimiter(logger.Nop(), rdb, "", 1, 0)
	assert.Error(t, err)
}

// Runs against a real server when TEST_REDIS_ADDR is set.
func TestAllowAgainstRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, logger.Nop(), Config{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	lim, err := NewFixedWindowLimiter(logger.Nop(), rdb, "test", 2, time.Minute)
	require.NoError(t, err)
	key := uuid.NewString()

	for i := 0; i < 2; i++ {
		d, err := lim.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, err := lim.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}
