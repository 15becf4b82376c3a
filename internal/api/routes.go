package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/internal/evidence"
	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/interventions"
	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
	"github.com/JaimeStill/longevity/internal/reports"
	"github.com/JaimeStill/longevity/internal/sources"
	"github.com/JaimeStill/longevity/internal/tracking"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Interventions.Handler().Routes(),
		domain.Evidence.Handler().Routes(),
		domain.Sources.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Profiles.Handler().Routes(),
		domain.Recommendations.Handler().Routes(),
		domain.Tracking.Handler().Routes(),
		domain.Reports.Handler().Routes(),
		interactions.NewHandler(domain.Detector, runtime.Logger).Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger, cfg.Storage.MaxListSize).routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.API.OpenAPI.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)

	for _, schemas := range []map[string]*openapi.Schema{
		interventions.Schemas(),
		evidence.Schemas(),
		sources.Schemas(),
		profiles.Schemas(),
		recommendations.Schemas(),
		tracking.Schemas(),
		reports.Schemas(),
		interactions.Schemas(),
	} {
		spec.Components.AddSchemas(schemas)
	}

	routes.Describe(spec, cfg.API.BasePath, groups...)

	if cfg.Auth.Enabled {
		spec.RequireBearer()
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
