package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,       default=8080"`
	Env      string `env:"ENV,        default=development"`
	LogLevel string `env:"LOG_LEVEL,  default=info"`
	// PublicURL is the externally visible base URL, used to build the
	// social login redirect URIs.
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`

	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL,               default=1h"`
	RefreshThreshold time.Duration `env:"TOKEN_REFRESH_THRESHOLD, default=30m"`

	Database  DatabaseConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	RateLimit RateLimitConfig
	Social    SocialConfig
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DB_DSN,    default=auth.db"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RateLimitConfig struct {
	Limit    int64         `env:"RATE_LIMIT,          default=10"`
	Interval time.Duration `env:"RATE_LIMIT_INTERVAL, default=60s"`
	// ByEmail and ByIP select which parts make up the limiter key.
	ByEmail bool `env:"RATE_LIMIT_BY_EMAIL, default=true"`
	ByIP    bool `env:"RATE_LIMIT_BY_IP,    default=false"`
}

type SocialConfig struct {
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	YandexClientID     string `env:"YANDEX_CLIENT_ID"`
	YandexClientSecret string `env:"YANDEX_CLIENT_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
