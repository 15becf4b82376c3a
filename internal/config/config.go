// Package config loads service configuration from TOML files, an optional
// .env file, and LONGEVITY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/longevity/pkg/database"
	"github.com/JaimeStill/longevity/pkg/metrics"
	"github.com/JaimeStill/longevity/pkg/middleware"
	"github.com/JaimeStill/longevity/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvLongevityEnv             = "LONGEVITY_ENV"
	EnvLongevityShutdownTimeout = "LONGEVITY_SHUTDOWN_TIMEOUT"
	EnvLongevityVersion         = "LONGEVITY_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "LONGEVITY_DB_HOST",
	Port:            "LONGEVITY_DB_PORT",
	Name:            "LONGEVITY_DB_NAME",
	User:            "LONGEVITY_DB_USER",
	Password:        "LONGEVITY_DB_PASSWORD",
	SSLMode:         "LONGEVITY_DB_SSL_MODE",
	MaxOpenConns:    "LONGEVITY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "LONGEVITY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "LONGEVITY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "LONGEVITY_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "LONGEVITY_STORAGE_CONTAINER_NAME",
	ConnectionString: "LONGEVITY_STORAGE_CONNECTION_STRING",
	AccountURL:       "LONGEVITY_STORAGE_ACCOUNT_URL",
	MaxListSize:      "LONGEVITY_STORAGE_MAX_LIST_SIZE",
}

var metricsEnv = &metrics.Env{
	Enabled:   "LONGEVITY_METRICS_ENABLED",
	Path:      "LONGEVITY_METRICS_PATH",
	Namespace: "LONGEVITY_METRICS_NAMESPACE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "LONGEVITY_AUTH_ENABLED",
	Issuer:   "LONGEVITY_AUTH_ISSUER",
	ClientID: "LONGEVITY_AUTH_CLIENT_ID",
}

// Config is the root configuration for the Longevity service.
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        database.Config       `toml:"database"`
	Storage         storage.Config        `toml:"storage"`
	API             APIConfig             `toml:"api"`
	Logging         LoggingConfig         `toml:"logging"`
	Metrics         metrics.Config        `toml:"metrics"`
	Auth            middleware.AuthConfig `toml:"auth"`
	Recommendations RecommendationsConfig `toml:"recommendations"`
	ShutdownTimeout string                `toml:"shutdown_timeout"`
	Version         string                `toml:"version"`
}

// Env returns the LONGEVITY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvLongevityEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads .env (if present), the base config (if present), any
// environment overlay, and finalizes all values. Variables already set in
// the process environment take precedence over .env entries.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
	c.Metrics.Merge(&overlay.Metrics)
	c.Auth.Merge(&overlay.Auth)
	c.Recommendations.Merge(&overlay.Recommendations)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Metrics.Finalize(metricsEnv); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Recommendations.Finalize(); err != nil {
		return fmt.Errorf("recommendations: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvLongevityShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvLongevityVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvLongevityEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
