package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/document/redisstore"
	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
	"github.com/davidbz/howl/internal/producer/breaker"
	"github.com/davidbz/howl/internal/producer/canned"
	"github.com/davidbz/howl/internal/producer/openai"
)

// Config represents the service configuration.
type Config struct {
	Log       observability.LogConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Chat      domain.DeliveryConfig
	Canned    canned.Config
	OpenAI    openai.Config
	Breaker   breaker.Config
	Redis     redisstore.Config
	Documents document.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"SERVER_PORT"             envDefault:"8000"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"120"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"*"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RateLimitConfig contains per-client request limits. RPS 0 disables limiting.
// X-Forwarded-For is only honoured for requests arriving from TrustedProxies
// (IPs or CIDRs).
type RateLimitConfig struct {
	RPS            float64  `env:"RATE_LIMIT_RPS"             envDefault:"0"`
	Burst          int      `env:"RATE_LIMIT_BURST"           envDefault:"20"`
	TrustedProxies []string `env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Log       *observability.LogConfig
	Server    *ServerConfig
	CORS      *CORSConfig
	RateLimit *RateLimitConfig
	Chat      *domain.DeliveryConfig
	Canned    *canned.Config
	OpenAI    *openai.Config
	Breaker   *breaker.Config
	Redis     *redisstore.Config
	Documents *document.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:       dig.Out{},
		Log:       &cfg.Log,
		Server:    &cfg.Server,
		CORS:      &cfg.CORS,
		RateLimit: &cfg.RateLimit,
		Chat:      &cfg.Chat,
		Canned:    &cfg.Canned,
		OpenAI:    &cfg.OpenAI,
		Breaker:   &cfg.Breaker,
		Redis:     &cfg.Redis,
		Documents: &cfg.Documents,
	}
}
