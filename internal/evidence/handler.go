package evidence

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

// Handler provides HTTP endpoints for evidence operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "evidence"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for evidence endpoints.
func (h *Handler) Routes() routes.Group {
	idParam := []*openapi.Parameter{openapi.IDParam("id", "Evidence ID")}
	page := map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of evidence", "EvidencePage"),
	}

	return routes.Group{
		Prefix: "/evidence",
		Tags:   []string{"Evidence"},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List evidence",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("intervention_id", "integer", "Owning intervention", false),
						openapi.QueryParam("source_type", "string", "Study design", false),
						openapi.QueryParam("min_quality", "number", "Minimum quality score", false),
					},
					Responses: page,
				},
			},
			{
				Method: "GET", Pattern: "/quality", Handler: h.Quality,
				OpenAPI: &openapi.Operation{
					Summary: "High-quality evidence",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("min", "number", "Minimum quality score (default 70)", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of evidence", "EvidencePage"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/meta-analyses", Handler: h.MetaAnalyses,
				OpenAPI: &openapi.Operation{Summary: "Meta-analyses", Responses: page},
			},
			{
				Method: "GET", Pattern: "/randomized-trials", Handler: h.RandomizedTrials,
				OpenAPI: &openapi.Operation{Summary: "Randomized controlled trials", Responses: page},
			},
			{
				Method: "GET", Pattern: "/intervention/{interventionId}", Handler: h.ByIntervention,
				OpenAPI: &openapi.Operation{
					Summary:    "Evidence for one intervention",
					Parameters: []*openapi.Parameter{openapi.IDParam("interventionId", "Intervention ID")},
					Responses:  page,
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find evidence",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Evidence", "Evidence"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "", Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Record evidence",
					RequestBody: openapi.RequestBodyJSON("EvidenceCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "Evidence"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/search", Handler: h.Search,
				OpenAPI: &openapi.Operation{Summary: "Search evidence", Responses: page},
			},
			{
				Method: "DELETE", Pattern: "/{id}", Handler: h.Delete,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete evidence",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						204: {Description: "Deleted"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// List returns a paginated list of evidence with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, FiltersFromQuery(r.URL.Query()))
}

// Quality returns evidence at or above a quality threshold, best first.
func (h *Handler) Quality(w http.ResponseWriter, r *http.Request) {
	threshold := DefaultMinQuality
	if s := r.URL.Query().Get("min"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 100 {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidQuality)
			return
		}
		threshold = v
	}

	h.list(w, r, Filters{MinQuality: &threshold})
}

// MetaAnalyses returns meta-analysis evidence.
func (h *Handler) MetaAnalyses(w http.ResponseWriter, r *http.Request) {
	st := SourceMetaAnalysis
	h.list(w, r, Filters{SourceType: &st})
}

// RandomizedTrials returns randomized controlled trial evidence.
func (h *Handler) RandomizedTrials(w http.ResponseWriter, r *http.Request) {
	st := SourceRandomizedTrial
	h.list(w, r, Filters{SourceType: &st})
}

// ByIntervention returns evidence attached to one intervention.
func (h *Handler) ByIntervention(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "interventionId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.list(w, r, Filters{InterventionID: &id})
}

// Find returns a single evidence record by its ID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	e, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, e)
}

// Create records a new study from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	e, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, e)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching evidence.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete removes an evidence record by its ID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filters Filters) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
