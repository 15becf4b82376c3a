package api

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/routes"
	"github.com/JaimeStill/longevity/pkg/storage"
)

// storageHandler exposes read-only browsing of the blob container that holds
// evidence source files and report snapshots.
type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newStorageHandler(
	store storage.System,
	logger *slog.Logger,
	maxListSize int32,
) *storageHandler {
	return &storageHandler{
		store:       store,
		logger:      logger.With("handler", "storage"),
		maxListSize: maxListSize,
	}
}

func (h *storageHandler) routes() routes.Group {
	keyParam := &openapi.Parameter{
		Name:        "key",
		In:          "path",
		Required:    true,
		Description: "Blob key, e.g. reports/<uuid>.json",
		Schema:      &openapi.Schema{Type: "string"},
	}

	return routes.Group{
		Prefix: "/storage",
		Tags:   []string{"Storage"},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.list,
				OpenAPI: &openapi.Operation{
					Summary: "List stored blobs",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("prefix", "string", "Key prefix, e.g. evidence/ or reports/", false),
						openapi.QueryParam("marker", "string", "Continuation marker", false),
						openapi.QueryParam("max_results", "integer", "Page size", false),
					},
					Responses: map[int]*openapi.Response{
						200: {Description: "Blob listing"},
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/download/{key...}", Handler: h.download,
				OpenAPI: &openapi.Operation{
					Summary:    "Download a blob",
					Parameters: []*openapi.Parameter{keyParam},
					Responses: map[int]*openapi.Response{
						200: {Description: "Blob content"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{key...}", Handler: h.find,
				OpenAPI: &openapi.Operation{
					Summary:    "Blob metadata",
					Parameters: []*openapi.Parameter{keyParam},
					Responses: map[int]*openapi.Response{
						200: {Description: "Blob metadata"},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults, err := storage.ParseMaxResults(q.Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.store.List(r.Context(), q.Get("prefix"), q.Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	meta, err := h.store.Find(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	handlers.RespondAttachment(w, blob.Body, blob.ContentType, blob.ContentLength, path.Base(key))
}
