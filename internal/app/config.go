package app

import (
	"strings"
	"time"

	"github.com/yungbote/ecotrack-backend/internal/data/db"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/platform/envutil"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
	"github.com/yungbote/ecotrack-backend/internal/platform/openai"
	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	AllowedOrigins []string

	DB      db.Config
	OpenAI  openai.Config
	Weather weather.Config
	Tracing observability.TracingConfig

	// WeatherReferenceRegion is the region whose weather feeds advisory prompts.
	WeatherReferenceRegion string
	EmissionFactorSet      string

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),

		DB:      db.ConfigFromEnv(),
		OpenAI:  openai.ConfigFromEnv(),
		Weather: weather.ConfigFromEnv(),
		Tracing: observability.TracingConfigFromEnv(),

		WeatherReferenceRegion: strings.ToLower(envutil.String("WEATHER_REFERENCE_REGION", "almaty")),
		EmissionFactorSet:      envutil.String("EMISSION_FACTOR_SET", footprint.SetPrimary),

		RedisAddr:          envutil.String("REDIS_ADDR", ""),
		RedisPassword:      envutil.String("REDIS_PASSWORD", ""),
		RedisDB:            envutil.Int("REDIS_DB", 0),
		GenerateRateLimit:  envutil.Int("GENERATE_RATE_LIMIT", 10),
		GenerateRateWindow: envutil.Seconds("GENERATE_RATE_WINDOW", time.Minute),
	}
	if log != nil {
		if cfg.JWTSecretKey == defaultJWTSecret {
			log.Warn("JWT_SECRET_KEY not set, using the development default")
		}
		if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
			log.Warn("OPENAI_API_KEY not set, recommendations use rule-based tips only")
		}
	}
	return cfg
}
