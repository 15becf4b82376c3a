package profiles

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

// Handler provides HTTP endpoints for users and health profiles.
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
		logger:     logger.With("handler", "profiles"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for user endpoints.
func (h *Handler) Routes() routes.Group {
	idParam := []*openapi.Parameter{openapi.IDParam("id", "User ID")}

	return routes.Group{
		Prefix: "/users",
		Tags:   []string{"Users"},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List users",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of users", "UserPage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find a user",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("User", "User"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "", Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Register a user",
					RequestBody: openapi.RequestBodyJSON("UserCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "User"),
						400: openapi.ResponseRef("BadRequest"),
						409: openapi.ResponseRef("Conflict"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/search", Handler: h.Search,
				OpenAPI: &openapi.Operation{
					Summary: "Search users",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of users", "UserPage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}/profile", Handler: h.Profile,
				OpenAPI: &openapi.Operation{
					Summary:    "Health profile",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Health profile", "HealthProfile"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "PUT", Pattern: "/{id}/profile", Handler: h.SaveProfile,
				OpenAPI: &openapi.Operation{
					Summary:     "Create or replace the health profile",
					Parameters:  idParam,
					RequestBody: openapi.RequestBodyJSON("HealthProfileCommand", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Saved profile", "HealthProfile"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// List returns a paginated list of users.
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

// Find returns a single user by ID.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Create registers a user from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateUserCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	u, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, u)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching users.
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

// Profile returns a user's health profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Profile(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// SaveProfile creates or replaces a user's health profile.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd ProfileCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.sys.SaveProfile(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}
