package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Identity IdentityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// IdentityConfig points at the external identity provider. AnonKey is the
// public API key sent with user-scoped calls; ServiceKey is the privileged
// key used only for storage signing.
type IdentityConfig struct {
	URL        string `env:"IDENTITY_URL,         default=http://localhost:9999"`
	AnonKey    string `env:"IDENTITY_ANON_KEY"`
	ServiceKey string `env:"IDENTITY_SERVICE_KEY"`
	CookieName string `env:"IDENTITY_COOKIE_NAME, default=pp-auth-token"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=publishing_platform"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=100"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
