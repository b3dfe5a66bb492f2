package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/ecotrack-backend/internal/clients/redis"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/platform/openai"
	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
)

type Clients struct {
	// Generator is nil when no API key is configured.
	Generator       openai.Client
	Weather         weather.Provider
	Redis           *goredis.Client
	GenerateLimiter redis.Limiter
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Openai
	if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		gen, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		out.Generator = gen
	}

	// Weather
	out.Weather = weather.NewClient(log, cfg.Weather)

	// Redis
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rdb, err := redis.NewClient(ctx, log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		limiter, err := redis.NewFixedWindowLimiter(log, rdb, "ecotrack:generate", cfg.GenerateRateLimit, cfg.GenerateRateWindow)
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("init rate limiter: %w", err)
		}
		out.Redis = rdb
		out.GenerateLimiter = limiter
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
