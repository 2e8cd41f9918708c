package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port          string        `env:"PORT,           default=5000"`
	Env           string        `env:"ENV,            default=development"`
	JWTSecret     string        `env:"JWT_SECRET"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	StoreDriver   string        `env:"STORE_DRIVER,   default=mongo"`
	BcryptCost    int           `env:"BCRYPT_COST,    default=10"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE, default=10s"`

	Mongo      MongoConfig
	Redis      RedisConfig
	SuperAdmin SuperAdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=brahmakosh"`
}

// RedisConfig configures the dashboard cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,            default=0"`
	CacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL, default=30s"`
}

// SuperAdminConfig seeds the bootstrap super admin account.
type SuperAdminConfig struct {
	Email    string `env:"SUPER_ADMIN_EMAIL"`
	Password string `env:"SUPER_ADMIN_PASSWORD"`
}

// Development reports whether diagnostic error detail may be exposed.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}
