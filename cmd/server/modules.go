package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/longevity/internal/api"
	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/internal/infrastructure"
	"github.com/JaimeStill/longevity/pkg/middleware"
	"github.com/JaimeStill/longevity/pkg/module"
	"github.com/JaimeStill/longevity/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
	verifier middleware.TokenVerifier,
) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra, verifier)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		if err := infra.Database.Check(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	if cfg.Metrics.IsEnabled() {
		router.Handle("GET "+cfg.Metrics.Path, infra.Metrics.Handler())
	}

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
