package reports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

// Handler provides HTTP endpoints for report operations.
type Handler struct {
	sys          System
	logger       *slog.Logger
	pagination   pagination.Config
	defaultLimit int
}

// NewHandler creates a Handler. defaultLimit applies to generate requests
// that omit a limit.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, defaultLimit int) *Handler {
	return &Handler{
		sys:          sys,
		logger:       logger.With("handler", "reports"),
		pagination:   pagination,
		defaultLimit: defaultLimit,
	}
}

// Routes returns the route group definition for report endpoints.
func (h *Handler) Routes() routes.Group {
	userParam := openapi.IDParam("userId", "User ID")
	idParam := openapi.PathParam("id", "Report UUID")

	return routes.Group{
		Prefix: "/reports",
		Tags:   []string{"Reports"},
		Routes: []routes.Route{
			{
				Method: "POST", Pattern: "/user/{userId}", Handler: h.Generate,
				OpenAPI: &openapi.Operation{
					Summary: "Generate a report",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.QueryParam("limit", "integer", "Recommendations to include", false),
					},
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "Report"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/user/{userId}", Handler: h.ListByUser,
				OpenAPI: &openapi.Operation{
					Summary:    "Reports for a user",
					Parameters: []*openapi.Parameter{userParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of reports", "ReportPage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/download/{id}", Handler: h.Download,
				OpenAPI: &openapi.Operation{
					Summary:    "Download a report snapshot",
					Parameters: []*openapi.Parameter{idParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Snapshot document", "ReportSnapshot"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find a report",
					Parameters: []*openapi.Parameter{idParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Report", "Report"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "DELETE", Pattern: "/{id}", Handler: h.Delete,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete a report",
					Parameters: []*openapi.Parameter{idParam},
					Responses: map[int]*openapi.Response{
						204: {Description: "Deleted"},
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// Generate snapshots a user's recommendations into a new report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	limit, err := handlers.QueryInt(r, "limit", h.defaultLimit)
	if err != nil || limit < 1 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidLimit)
		return
	}

	rep, err := h.sys.Generate(r.Context(), userID, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, rep)
}

// ListByUser returns a user's reports, newest first.
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

// Find returns report metadata by UUID.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	rep, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rep)
}

// Download streams the archived snapshot document.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	f, err := h.sys.Download(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer f.Blob.Body.Close()

	filename := fmt.Sprintf("report-%d-%s.json", f.Report.UserID, f.Report.ID)
	handlers.RespondAttachment(w, f.Blob.Body, contentType, f.Blob.ContentLength, filename)
}

// Delete removes a report and its snapshot.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
