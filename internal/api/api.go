// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/internal/infrastructure"
	"github.com/JaimeStill/longevity/pkg/middleware"
	"github.com/JaimeStill/longevity/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// verifier may be nil, in which case requests are not authenticated.
func NewModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	verifier middleware.TokenVerifier,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Metrics(runtime.Metrics))
	m.Use(middleware.RateLimit(&cfg.API.RateLimit))
	m.Use(middleware.Auth(verifier))

	return m, nil
}
