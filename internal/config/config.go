// Package config manages environment variables.
//
// It reads variables from the process environment (and from a `.env` file
// when one exists), loads them into structured Go types and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (server, pool, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key mapping:
	- Env vars are read using the prefix ADS_
	- Keys are lowercased and the prefix is removed
	- Nesting uses "." (ADS_DATABASE.HOST) or "__" (ADS_DATABASE__HOST)
	  e.g. ADS_SERVER__PORT -> server.port -> Config.Server.Port
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "ADS_"

// Config is the root configuration object for the application.
//
// Redis and Integration are pointers because they are optional: the welcome
// e-mail job only runs when both are present.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         *RedisConfig         `koanf:"redis"`
	Integration   *IntegrationConfig   `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string `koanf:"port" validate:"required"`
	ReadTimeout        int    `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int    `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int    `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// AllowedOrigins splits the configured origins on spaces and commas.
func (s ServerConfig) AllowedOrigins() []string {
	return strings.FieldsFunc(s.CORSAllowedOrigins, func(r rune) bool {
		return r == ' ' || r == ','
	})
}

// DatabaseConfig contains PostgreSQL connection parameters and pool settings.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds credentials for third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
}

// JobsEnabled reports whether background jobs can run: they need Redis for
// the queue and Resend for delivery.
func (c *Config) JobsEnabled() bool {
	return c.Redis != nil && c.Redis.Address != "" &&
		c.Integration != nil && c.Integration.ResendAPIKey != ""
}

// defaults are loaded before the environment so every optional key has a value.
func defaults() map[string]interface{} {
	obs := DefaultObservabilityConfig()
	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": "*",
		"server.rate_limit":           0,
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  300,
		"database.conn_max_idle_time": 60,

		"observability.logging.level":                         obs.Logging.Level,
		"observability.logging.format":                        obs.Logging.Format,
		"observability.logging.slow_query_threshold":          obs.Logging.SlowQueryThreshold,
		"observability.new_relic.app_log_forwarding_enabled":  obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled": obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":               obs.NewRelic.DebugLogging,
		"observability.health_checks.enabled":                 obs.HealthChecks.Enabled,
		"observability.health_checks.timeout":                 obs.HealthChecks.Timeout,
		"observability.health_checks.checks":                  obs.HealthChecks.Checks,
	}
}

// envKey turns ADS_DATABASE__HOST (or ADS_DATABASE.HOST) into database.host.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the result.
//
// Behavior summary:
//   - Loads built-in defaults
//   - Loads env vars with prefix ADS_ on top of them
//   - Unmarshals into Config and validates required fields
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service naming stays consistent in logs and traces regardless of env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// ConnLifetime returns the pool connection lifetime as a duration.
func (d DatabaseConfig) ConnLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ConnIdleTime returns the pool idle timeout as a duration.
func (d DatabaseConfig) ConnIdleTime() time.Duration {
	return time.Duration(d.ConnMaxIdleTime) * time.Second
}
