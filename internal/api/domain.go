package api

import (
	"fmt"

	"github.com/JaimeStill/longevity/internal/evidence"
	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/interventions"
	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
	"github.com/JaimeStill/longevity/internal/reports"
	"github.com/JaimeStill/longevity/internal/scoring"
	"github.com/JaimeStill/longevity/internal/sources"
	"github.com/JaimeStill/longevity/internal/tracking"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Detector        *interactions.Detector
	Interventions   interventions.System
	Evidence        evidence.System
	Sources         sources.System
	Profiles        profiles.System
	Recommendations recommendations.System
	Tracking        tracking.System
	Reports         reports.System
}

// NewDomain creates all domain systems from the API runtime.
// The interaction catalog is read from CatalogPath when set.
func NewDomain(runtime *Runtime) (*Domain, error) {
	catalog := interactions.DefaultCatalog()
	if runtime.CatalogPath != "" {
		loaded, err := interactions.LoadCatalog(runtime.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load interaction catalog: %w", err)
		}
		catalog = loaded
	}

	runtime.Logger.Info(
		"interaction catalog loaded",
		"version", catalog.Version(),
		"substances", len(catalog.Substances()),
	)

	db := runtime.Database.Connection()
	detector := interactions.NewDetector(catalog)

	interventionsSystem := interventions.New(db, runtime.Logger, runtime.Pagination)
	evidenceSystem := evidence.New(db, runtime.Logger, runtime.Pagination)
	profilesSystem := profiles.New(db, runtime.Logger, runtime.Pagination)

	orchestrator := recommendations.NewOrchestrator(
		recommendations.NewSource(interventionsSystem, evidenceSystem, profilesSystem),
		scoring.New(detector),
		recommendations.NewMetrics(runtime.Metrics.Registerer(), runtime.Metrics.Namespace()),
	)

	recommendationsSystem := recommendations.New(
		db,
		interventionsSystem,
		orchestrator,
		runtime.Logger,
		runtime.Pagination,
		runtime.DefaultLimit,
	)

	return &Domain{
		Detector:        detector,
		Interventions:   interventionsSystem,
		Evidence:        evidenceSystem,
		Sources:         sources.New(db, runtime.Storage, runtime.Logger, runtime.Pagination),
		Profiles:        profilesSystem,
		Recommendations: recommendationsSystem,
		Tracking:        tracking.New(db, runtime.Logger, runtime.Pagination),
		Reports: reports.New(
			db,
			runtime.Storage,
			profilesSystem,
			recommendationsSystem,
			runtime.Logger,
			runtime.Pagination,
			runtime.DefaultLimit,
		),
	}, nil
}
