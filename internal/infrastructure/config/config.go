package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Sequence backends for document number allocation.
const (
	SequenceMongo  = "mongo"
	SequenceRedis  = "redis"
	SequenceLookup = "lookup"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Documents DocumentsConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type DocumentsConfig struct {
	DefaultRole          string        `env:"DEFAULT_ROLE,           default=USER"`
	RolesFile            string        `env:"ROLES_FILE"`
	SequenceBackend      string        `env:"SEQUENCE_BACKEND,       default=mongo"`
	DispatchWorkers      int           `env:"DISPATCH_WORKERS,       default=8"`
	OverdueSweepInterval time.Duration `env:"OVERDUE_SWEEP_INTERVAL, default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=backoffice"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit variable source.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.Documents.SequenceBackend {
	case SequenceMongo, SequenceRedis, SequenceLookup:
	default:
		errs = append(errs, fmt.Errorf("SEQUENCE_BACKEND %q must be one of mongo, redis, lookup", c.Documents.SequenceBackend))
	}
	if c.Documents.DispatchWorkers < 1 {
		errs = append(errs, errors.New("DISPATCH_WORKERS must be positive"))
	}
	if c.Documents.OverdueSweepInterval <= 0 {
		errs = append(errs, errors.New("OVERDUE_SWEEP_INTERVAL must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether human-friendly output should be enabled.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
