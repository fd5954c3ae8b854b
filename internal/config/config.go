package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"newsletter-go/internal/pg"
	"newsletter-go/internal/redisclient"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverDapr     = "dapr"
	StorageDriverMemory   = "memory"
)

var (
	ErrParsingConfig        = errors.New("failed to parse configuration")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrMissingPostgresURL   = errors.New("PG_CONN_URL is required for the postgres storage driver")
)

type App struct {
	ServiceName     string        `env:"APP_SERVICE_NAME" envDefault:"subscriber-api"`
	ServiceVersion  string        `env:"APP_SERVICE_VERSION" envDefault:"1.0.0"`
	Port            string        `env:"APP_PORT" envDefault:"8080"`
	GinMode         string        `env:"APP_GIN_MODE"`
	LogLevel        string        `env:"APP_LOG_LEVEL" envDefault:"info"`
	HTTPLogLevel    string        `env:"HTTP_LOG_LEVEL" envDefault:"off"`
	TraceExport     bool          `env:"APP_TRACE_EXPORT" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type Dapr struct {
	StateStore string `env:"DAPR_STATE_STORE" envDefault:"statestore"`
}

type Config struct {
	App           App
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	Postgres      pg.Config
	Redis         redisclient.Config
	Dapr          Dapr
}

// Load reads an optional .env file, then the process environment. Variables
// already set in the environment win over the file.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.Postgres.ConnectionString == "" {
			return ErrMissingPostgresURL
		}
	case StorageDriverRedis, StorageDriverDapr, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.StorageDriver)
	}
	return nil
}
