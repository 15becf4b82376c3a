package interactions

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/routes"
)

// CheckRequest lists the substances to screen.
type CheckRequest struct {
	Substances []string `json:"substances" validate:"max=100,dive,required"`
}

// CheckResult holds detected interactions and their summary.
type CheckResult struct {
	Interactions []Interaction `json:"interactions"`
	Summary      Summary       `json:"summary"`
}

// Check runs detection and summarization over substances.
func Check(d *Detector, substances []string) CheckResult {
	found := d.Detect(substances)
	return CheckResult{Interactions: found, Summary: Summarize(found)}
}

// Handler provides HTTP endpoints for interaction screening.
type Handler struct {
	detector *Detector
	logger   *slog.Logger
}

// NewHandler creates a Handler backed by detector.
func NewHandler(detector *Detector, logger *slog.Logger) *Handler {
	return &Handler{
		detector: detector,
		logger:   logger.With("handler", "interactions"),
	}
}

// Routes returns the route group definition for interaction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/interactions",
		Tags:   []string{"Interactions"},
		Routes: []routes.Route{
			{
				Method: "POST", Pattern: "/check", Handler: h.Check,
				OpenAPI: &openapi.Operation{
					Summary:     "Screen substances for interactions",
					RequestBody: openapi.RequestBodyJSON("InteractionCheck", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Detected interactions", "InteractionResult"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/catalog", Handler: h.Catalog,
				OpenAPI: &openapi.Operation{
					Summary: "Active interaction catalog",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Catalog entries", "InteractionCatalog"),
					},
				},
			},
		},
	}
}

// Check screens the posted substances.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := handlers.DecodeValid(r, &req); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Check(h.detector, req.Substances))
}

// Catalog returns the active catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.detector.Catalog().View())
}
