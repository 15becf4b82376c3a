package sources

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

const contentTypePDF = "application/pdf"

// Handler provides HTTP endpoints for evidence source operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "sources"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for evidence source endpoints.
func (h *Handler) Routes() routes.Group {
	idParam := []*openapi.Parameter{openapi.PathParam("id", "Source UUID")}

	return routes.Group{
		Prefix: "/sources",
		Tags:   []string{"Evidence Sources"},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List evidence sources",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("evidence_id", "integer", "Evidence record", false),
						openapi.QueryParam("content_type", "string", "Exact content type", false),
						openapi.QueryParam("filename", "string", "Filename contains", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of sources", "SourcePage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find an evidence source",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Source", "Source"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}/download", Handler: h.Download,
				OpenAPI: &openapi.Operation{
					Summary:    "Download the stored file",
					Parameters: idParam,
					Responses: map[int]*openapi.Response{
						200: {Description: "File content"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "", Handler: h.Upload,
				OpenAPI: &openapi.Operation{
					Summary: "Upload a study file for an evidence record",
					RequestBody: &openapi.RequestBody{
						Required: true,
						Content: map[string]*openapi.MediaType{
							"multipart/form-data": {Schema: openapi.SchemaRef("SourceUpload")},
						},
					},
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Uploaded", "Source"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
						413: {Description: "File too large"},
					},
				},
			},
			{
				Method: "POST", Pattern: "/search", Handler: h.Search,
				OpenAPI: &openapi.Operation{
					Summary: "Search evidence sources",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of sources", "SourcePage"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "DELETE", Pattern: "/{id}", Handler: h.Delete,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete an evidence source and its file",
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

// List returns a paginated list of sources with optional query parameter filters.
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

// Find returns a single source by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	s, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// Download streams the stored file under its original name.
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

	contentType := f.Blob.ContentType
	if contentType == "" {
		contentType = f.Source.ContentType
	}

	handlers.RespondAttachment(w, f.Blob.Body, contentType, f.Blob.ContentLength, path.Base(f.Source.Filename))
}

// Search accepts a JSON body with pagination and filter criteria and returns matching sources.
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

// Upload processes a multipart form with an evidence_id field and a file.
// PDF page counts are read with pdfcpu.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	evidenceID, err := handlers.ParseID(r.FormValue("evidence_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := DetectContentType(header.Header.Get("Content-Type"), data)

	cmd := CreateCommand{
		EvidenceID:  evidenceID,
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
		PageCount:   PageCount(h.logger, data, contentType),
	}

	s, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, s)
}

// Delete removes a source and its stored file.
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

// DetectContentType trusts a specific declared type and sniffs data otherwise.
func DetectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

// PageCount returns the page count of a PDF, or nil for other content or
// unreadable files.
func PageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != contentTypePDF {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to read PDF page count", "error", err)
		return nil
	}

	return &count
}
