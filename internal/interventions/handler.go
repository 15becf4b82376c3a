package interventions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

// Handler provides HTTP endpoints for intervention operations.
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
		logger:     logger.With("handler", "interventions"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for intervention endpoints.
func (h *Handler) Routes() routes.Group {
	idParam := []*openapi.Parameter{openapi.IDParam("id", "Intervention ID")}

	return routes.Group{
		Prefix: "/interventions",
		Tags:   []string{"Interventions"},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List interventions",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("search", "string", "Match name or description", false),
						openapi.QueryParam("category", "string", "Exact category", false),
						openapi.QueryParam("evidence_level", "integer", "Exact evidence level", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of interventions", "InterventionPage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/categories", Handler: h.Categories,
				OpenAPI: &openapi.Operation{
					Summary: "Intervention categories",
					Responses: map[int]*openapi.Response{
						200: {Description: "Category names"},
					},
				},
			},
			{
				Method: "GET", Pattern: "/level", Handler: h.ByLevel,
				OpenAPI: &openapi.Operation{
					Summary: "Interventions at one evidence level",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("value", "integer", "Evidence level 1-4", true),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of interventions", "InterventionPage"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find an intervention",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Intervention", "Intervention"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "", Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Create an intervention",
					RequestBody: openapi.RequestBodyJSON("InterventionCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "Intervention"),
						400: openapi.ResponseRef("BadRequest"),
						409: openapi.ResponseRef("Conflict"),
					},
				},
			},
			{
				Method: "PUT", Pattern: "/{id}", Handler: h.Update,
				OpenAPI: &openapi.Operation{
					Summary:     "Update an intervention",
					Parameters:  idParam,
					RequestBody: openapi.RequestBodyJSON("InterventionCommand", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Updated", "Intervention"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "DELETE", Pattern: "/{id}", Handler: h.Delete,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete an intervention",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						204: {Description: "Deleted"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/search", Handler: h.Search,
				OpenAPI: &openapi.Operation{
					Summary: "Search interventions",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of interventions", "InterventionPage"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}/risks", Handler: h.Risks,
				OpenAPI: &openapi.Operation{
					Summary:    "Risk factors of an intervention",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: {Description: "Risk factors", Content: map[string]*openapi.MediaType{
							"application/json": {Schema: openapi.ArrayOf("RiskFactor")},
						}},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/{id}/risks", Handler: h.AddRisk,
				OpenAPI: &openapi.Operation{
					Summary:     "Attach a risk factor",
					Parameters:  idParam,
					RequestBody: openapi.RequestBodyJSON("RiskFactorCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "RiskFactor"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "DELETE", Pattern: "/risks/{riskId}", Handler: h.DeleteRisk,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete a risk factor",
					Parameters: []*openapi.Parameter{openapi.IDParam("riskId", "Risk factor ID")},
					Responses: map[int]*openapi.Response{
						204: {Description: "Deleted"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}/benefits", Handler: h.Benefits,
				OpenAPI: &openapi.Operation{
					Summary:    "Benefits of an intervention",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: {Description: "Benefits", Content: map[string]*openapi.MediaType{
							"application/json": {Schema: openapi.ArrayOf("Benefit")},
						}},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/{id}/benefits", Handler: h.AddBenefit,
				OpenAPI: &openapi.Operation{
					Summary:     "Attach a benefit",
					Parameters:  idParam,
					RequestBody: openapi.RequestBodyJSON("BenefitCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "Benefit"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "DELETE", Pattern: "/benefits/{benefitId}", Handler: h.DeleteBenefit,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete a benefit",
					Parameters: []*openapi.Parameter{openapi.IDParam("benefitId", "Benefit ID")},
					Responses: map[int]*openapi.Response{
						204: {Description: "Deleted"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// List returns a paginated list of interventions with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Categories returns the valid intervention categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Categories())
}

// ByLevel returns interventions graded at exactly the requested evidence level.
func (h *Handler) ByLevel(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("value"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidLevel)
		return
	}

	level, err := ParseLevel(n)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page, Filters{EvidenceLevel: &level})
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single intervention by its ID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	i, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, i)
}

// Create registers a new intervention from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	i, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, i)
}

// Update replaces an intervention's fields from a JSON body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	i, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, i)
}

// Delete removes an intervention along with its risks, benefits, and evidence.
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

// Search accepts a JSON body with pagination and filter criteria and returns matching interventions.
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

// Risks returns the risk factors of one intervention.
func (h *Handler) Risks(w http.ResponseWriter, r *http.Request) {
	id, ok := h.existing(w, r)
	if !ok {
		return
	}

	risks, err := h.sys.Risks(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, risks)
}

// AddRisk attaches a risk factor to an intervention.
func (h *Handler) AddRisk(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd RiskCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	risk, err := h.sys.AddRisk(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, risk)
}

// DeleteRisk removes a risk factor by ID.
func (h *Handler) DeleteRisk(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "riskId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.DeleteRisk(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Benefits returns the benefits of one intervention.
func (h *Handler) Benefits(w http.ResponseWriter, r *http.Request) {
	id, ok := h.existing(w, r)
	if !ok {
		return
	}

	benefits, err := h.sys.Benefits(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, benefits)
}

// AddBenefit attaches a benefit to an intervention.
func (h *Handler) AddBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd BenefitCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	b, err := h.sys.AddBenefit(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, b)
}

// DeleteBenefit removes a benefit by ID.
func (h *Handler) DeleteBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "benefitId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.DeleteBenefit(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// existing resolves the {id} path value and confirms the intervention exists.
// It writes the error response and reports false on failure.
func (h *Handler) existing(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return 0, false
	}

	if _, err := h.sys.Find(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return 0, false
	}

	return id, true
}
