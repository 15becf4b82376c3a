package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvRecommendationsDefaultLimit = "LONGEVITY_RECOMMENDATIONS_DEFAULT_LIMIT"
	EnvRecommendationsCatalogPath  = "LONGEVITY_RECOMMENDATIONS_CATALOG_PATH"
)

// RecommendationsConfig tunes the recommendation engine.
// CatalogPath replaces the embedded interaction catalog when set.
type RecommendationsConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	CatalogPath  string `toml:"catalog_path"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RecommendationsConfig) Finalize() error {
	if c.DefaultLimit == 0 {
		c.DefaultLimit = 10
	}

	if v := os.Getenv(EnvRecommendationsDefaultLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultLimit = n
		}
	}
	if v := os.Getenv(EnvRecommendationsCatalogPath); v != "" {
		c.CatalogPath = v
	}

	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive: %d", c.DefaultLimit)
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			return fmt.Errorf("catalog_path: %w", err)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *RecommendationsConfig) Merge(overlay *RecommendationsConfig) {
	if overlay.DefaultLimit != 0 {
		c.DefaultLimit = overlay.DefaultLimit
	}
	if overlay.CatalogPath != "" {
		c.CatalogPath = overlay.CatalogPath
	}
}
