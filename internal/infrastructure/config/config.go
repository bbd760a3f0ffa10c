package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string `env:"PROFILE_ADDR" envDefault:":8080"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"profiles.db"`
	DatabaseURL   string `env:"DATABASE_URL"`
	// StorageKey is the single key holding the JSON array of profiles.
	StorageKey string `env:"STORAGE_KEY" envDefault:"formData"`

	CountriesURL     string        `env:"COUNTRIES_URL" envDefault:"https://restcountries.com/v3.1/all?fields=name,cca3"`
	CountriesTimeout time.Duration `env:"COUNTRIES_TIMEOUT" envDefault:"10s"`

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	BodyLimit   int    `env:"BODY_LIMIT" envDefault:"4194304"`

	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file when present, then parses environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("STORAGE_KEY must not be empty")
	}
	if c.CountriesTimeout <= 0 {
		return fmt.Errorf("COUNTRIES_TIMEOUT must be positive")
	}
	return nil
}
