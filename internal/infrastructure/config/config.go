package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full process configuration, loaded once at startup and
// passed by injection. Nothing here mutates after Load returns.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	NotificationWorkers int `env:"NOTIFICATION_WORKERS, default=4"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Assistant AssistantConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vetcard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AssistantConfig points at the external language-model HTTP API. With an
// empty BaseURL the assistant runs in fallback-only mode.
type AssistantConfig struct {
	BaseURL string        `env:"ASSISTANT_BASE_URL"`
	Model   string        `env:"ASSISTANT_MODEL,   default=llama3.2:1b"`
	Timeout time.Duration `env:"ASSISTANT_TIMEOUT, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
