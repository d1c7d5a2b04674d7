package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"4000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Database DatabaseConfig
	Auth     AuthConfig
	Events   EventsConfig
	Tracing  TracingConfig
}

// DatabaseConfig contains connection and pool settings.
type DatabaseConfig struct {
	Driver      string        `env:"DB_DRIVER" envDefault:"pgx"` // pgx | sqlite
	URL         string        `env:"DATABASE_URL,required,notEmpty"`
	MaxOpen     int           `env:"DB_MAX_OPEN" envDefault:"25"`
	MaxIdle     int           `env:"DB_MAX_IDLE" envDefault:"25"`
	MaxLifetime time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
}

// AuthConfig contains bearer token settings.
type AuthConfig struct {
	AccessSecret string        `env:"ACCESS_SECRET,required,notEmpty"`
	AccessTTL    time.Duration `env:"ACCESS_TTL" envDefault:"24h"`
}

// EventsConfig points at the RabbitMQ broker. Publishing is disabled when URL is empty.
type EventsConfig struct {
	URL      string `env:"RABBIT_URL"`
	Exchange string `env:"EVENTS_EXCHANGE" envDefault:"rental.exchange"`
}

// TracingConfig enables OTLP/HTTP trace export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"rentwheels-api"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "pgx", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be pgx or sqlite, got %q", c.Database.Driver)
	}
	if len(c.Auth.AccessSecret) < 16 {
		return fmt.Errorf("ACCESS_SECRET must be at least 16 characters")
	}
	if c.Auth.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TTL must be positive")
	}
	return nil
}

// String returns a representation safe for logs (secrets and DSN are masked).
func (c *Config) String() string {
	events := "disabled"
	if c.Events.URL != "" {
		events = c.Events.Exchange
	}
	tracing := "disabled"
	if c.Tracing.Endpoint != "" {
		tracing = c.Tracing.Endpoint
	}
	return fmt.Sprintf("Config{Port: %s, DB: %s (***), TokenTTL: %s, Events: %s, Tracing: %s}",
		c.Port, c.Database.Driver, c.Auth.AccessTTL, events, tracing)
}
