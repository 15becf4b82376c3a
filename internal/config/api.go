package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/longevity/pkg/formatting"
	"github.com/JaimeStill/longevity/pkg/middleware"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
)

const defaultMaxUploadSize = 25 * 1024 * 1024

var corsEnv = &middleware.CORSEnv{
	Enabled:          "LONGEVITY_CORS_ENABLED",
	Origins:          "LONGEVITY_CORS_ORIGINS",
	AllowedMethods:   "LONGEVITY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "LONGEVITY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "LONGEVITY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "LONGEVITY_CORS_MAX_AGE",
}

var rateLimitEnv = &middleware.RateLimitEnv{
	Enabled:           "LONGEVITY_RATE_LIMIT_ENABLED",
	RequestsPerSecond: "LONGEVITY_RATE_LIMIT_RPS",
	Burst:             "LONGEVITY_RATE_LIMIT_BURST",
	IdleTimeout:       "LONGEVITY_RATE_LIMIT_IDLE_TIMEOUT",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "LONGEVITY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "LONGEVITY_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "LONGEVITY_OPENAPI_TITLE",
	Description: "LONGEVITY_OPENAPI_DESCRIPTION",
	Version:     "LONGEVITY_VERSION",
}

// APIConfig holds API routing, CORS, rate limiting, pagination, and spec settings.
type APIConfig struct {
	BasePath      string                     `toml:"base_path"`
	MaxUploadSize string                     `toml:"max_upload_size"`
	CORS          middleware.CORSConfig      `toml:"cors"`
	RateLimit     middleware.RateLimitConfig `toml:"rate_limit"`
	Pagination    pagination.Config          `toml:"pagination"`
	OpenAPI       openapi.Config             `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize as a byte count.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return defaultMaxUploadSize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("LONGEVITY_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("LONGEVITY_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	return nil
}
