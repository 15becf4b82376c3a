package recommendations

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

const maxCompare = 20

// Handler provides HTTP endpoints for recommendation operations.
type Handler struct {
	sys          System
	logger       *slog.Logger
	pagination   pagination.Config
	defaultLimit int
}

// NewHandler creates a Handler. defaultLimit applies to personalized
// requests that omit a limit.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, defaultLimit int) *Handler {
	return &Handler{
		sys:          sys,
		logger:       logger.With("handler", "recommendations"),
		pagination:   pagination,
		defaultLimit: defaultLimit,
	}
}

// Routes returns the route group definition for recommendation endpoints.
func (h *Handler) Routes() routes.Group {
	userParam := openapi.IDParam("userId", "User ID")
	limitParam := openapi.QueryParam("limit", "integer", "Maximum results", false)

	return routes.Group{
		Prefix: "/recommendations",
		Tags:   []string{"Recommendations"},
		Routes: []routes.Route{
			{
				Method: "POST", Pattern: "", Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Issue a recommendation",
					RequestBody: openapi.RequestBodyJSON("RecommendationCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "Recommendation"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/top", Handler: h.Top,
				OpenAPI: &openapi.Operation{
					Summary:    "Best-graded interventions by net benefit",
					Parameters: []*openapi.Parameter{limitParam},
					Responses: map[int]*openapi.Response{
						200: {Description: "Ranked interventions", Content: map[string]*openapi.MediaType{
							"application/json": {Schema: openapi.ArrayOf("TopIntervention")},
						}},
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/user/{userId}", Handler: h.ListByUser,
				OpenAPI: &openapi.Operation{
					Summary:    "Issued recommendations for a user",
					Parameters: []*openapi.Parameter{userParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of recommendations", "RecommendationPage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/personalized/{userId}", Handler: h.Personalized,
				OpenAPI: &openapi.Operation{
					Summary: "Personalized ranking",
					Parameters: []*openapi.Parameter{
						userParam,
						limitParam,
						openapi.QueryParam("exclude_categories", "string", "Comma-separated categories to skip", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Ranked recommendations", "Personalized"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/explain/{userId}/{interventionId}", Handler: h.Explain,
				OpenAPI: &openapi.Operation{
					Summary: "Explain one score",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.IDParam("interventionId", "Intervention ID"),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Score explanation", "Explanation"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/compare/{userId}", Handler: h.Compare,
				OpenAPI: &openapi.Operation{
					Summary: "Compare interventions",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.QueryParam("intervention_ids", "string", "Comma-separated intervention IDs", true),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Explanations", "Comparison"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find a recommendation",
					Parameters: []*openapi.Parameter{openapi.IDParam("id", "Recommendation ID")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Recommendation", "Recommendation"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// Create issues a recommendation from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	rec, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, rec)
}

// Find returns a single recommendation by ID.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rec, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// ListByUser returns a user's issued recommendations, best net benefit first.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.ListByUser(r.Context(), userID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Top ranks the best-graded interventions by simplified net benefit.
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	limit, err := handlers.QueryInt(r, "limit", DefaultLimit)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidLimit)
		return
	}

	top, err := h.sys.Top(r.Context(), limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, top)
}

// Personalized ranks the catalog for one user.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	limit, err := handlers.QueryInt(r, "limit", h.defaultLimit)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidLimit)
		return
	}

	exclude := splitList(r.URL.Query().Get("exclude_categories"))

	result, err := h.sys.Personalized(r.Context(), userID, limit, exclude)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Explain details one intervention's score for one user.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	interventionID, err := handlers.PathID(r, "interventionId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	exp, err := h.sys.Explain(r.Context(), interventionID, userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, exp)
}

// Compare explains several interventions for one user.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ids, err := ParseIDList(r.URL.Query().Get("intervention_ids"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Compare(r.Context(), userID, ids)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ParseIDList parses a comma-separated list of positive integer IDs.
// The list must be non-empty and hold at most 20 IDs.
func ParseIDList(s string) ([]int64, error) {
	parts := splitList(s)
	if len(parts) == 0 || len(parts) > maxCompare {
		return nil, ErrInvalidIDs
	}

	ids := make([]int64, len(parts))
	for i, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id < 1 {
			return nil, ErrInvalidIDs
		}
		ids[i] = id
	}
	return ids, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
