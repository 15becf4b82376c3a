package api

import (
	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/internal/infrastructure"
	"github.com/JaimeStill/longevity/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination   pagination.Config
	DefaultLimit int
	CatalogPath  string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Metrics:   infra.Metrics,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination:   cfg.API.Pagination,
		DefaultLimit: cfg.Recommendations.DefaultLimit,
		CatalogPath:  cfg.Recommendations.CatalogPath,
	}
}
