package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/davoodepb/temucore-shop-hub/pkg/config"
)

// Storage driver names.
const (
	DriverPostgres = "postgres"
	DriverLocal    = "local"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Storage driver: "postgres" uses PostgreSQL plus Redis, "local" keeps
	// every collection in JSON snapshot files under DataDir.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DataDir       string `env:"DATA_DIR" envDefault:"./data"`

	// Optional JSON file used to seed an empty catalog at startup.
	SeedFile string `env:"SEED_FILE" envDefault:""`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka. Disabled when no brokers are configured.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Admin back office
	AdminPassword    string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	AdminPasswordAlt string `env:"ADMIN_PASSWORD_ALT"`
	AdminSessionTTL  int    `env:"ADMIN_SESSION_TTL_HOURS" envDefault:"24"`

	// Simulated payment provider delay in milliseconds.
	PaymentDelayMillis int `env:"PAYMENT_DELAY_MS" envDefault:"800"`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.StorageDriver != DriverPostgres && c.StorageDriver != DriverLocal {
		return fmt.Errorf("invalid storage driver: %q", c.StorageDriver)
	}
	if c.StorageDriver == DriverLocal && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required for the local storage driver")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must not be empty")
	}
	return nil
}

// CartTTLDuration returns the cart TTL as a duration.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// AdminSessionTTLDuration returns the admin session TTL as a duration.
func (c *Config) AdminSessionTTLDuration() time.Duration {
	return time.Duration(c.AdminSessionTTL) * time.Hour
}

// PaymentDelay returns the simulated payment delay as a duration.
func (c *Config) PaymentDelay() time.Duration {
	return time.Duration(c.PaymentDelayMillis) * time.Millisecond
}

// KafkaEnabled reports whether event publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaBrokers[0] != ""
}
