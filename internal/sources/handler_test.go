package sources_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/internal/sources"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/storage"
)

type mockSystem struct {
	findFn     func(ctx context.Context, id uuid.UUID) (*sources.Source, error)
	downloadFn func(ctx context.Context, id uuid.UUID) (*sources.File, error)
	createFn   func(ctx context.Context, cmd sources.CreateCommand) (*sources.Source, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler(maxUploadSize int64) *sources.Handler {
	return newTestHandler(m, maxUploadSize)
}

func (m *mockSystem) List(_ context.Context, page pagination.PageRequest, _ sources.Filters) (*pagination.PageResult[sources.Source], error) {
	result := pagination.NewPageResult([]sources.Source{}, 0, page.Page, page.PageSize)
	return &result, nil
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*sources.Source, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Download(ctx context.Context, id uuid.UUID) (*sources.File, error) {
	return m.downloadFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd sources.CreateCommand) (*sources.Source, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys sources.System, maxUploadSize int64) *sources.Handler {
	return sources.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		maxUploadSize,
	)
}

func setupMux(h *sources.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func multipartBody(t *testing.T, evidenceID, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if evidenceID != "" {
		if err := mw.WriteField("evidence_id", evidenceID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write(content)
	}
	mw.Close()

	return &buf, mw.FormDataContentType()
}

func TestHandlerUpload(t *testing.T) {
	var got sources.CreateCommand
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd sources.CreateCommand) (*sources.Source, error) {
			if cmd.EvidenceID == 404 {
				return nil, sources.ErrEvidenceNotFound
			}
			got = cmd
			return &sources.Source{ID: uuid.New(), EvidenceID: cmd.EvidenceID, Filename: cmd.Filename}, nil
		},
	}
	mux := setupMux(newTestHandler(sys, 1<<20))

	tests := []struct {
		name       string
		evidenceID string
		filename   string
		content    []byte
		status     int
	}{
		{"valid", "12", "trial.txt", []byte("randomized, double blind"), http.StatusCreated},
		{"missing evidence id", "", "trial.txt", []byte("x"), http.StatusBadRequest},
		{"bad evidence id", "abc", "trial.txt", []byte("x"), http.StatusBadRequest},
		{"missing file", "12", "", nil, http.StatusBadRequest},
		{"empty file", "12", "trial.txt", []byte{}, http.StatusBadRequest},
		{"unknown evidence", "404", "trial.txt", []byte("x"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.evidenceID, tt.filename, tt.content)
			req := httptest.NewRequest("POST", "/sources", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	if got.EvidenceID != 12 || got.Filename != "trial.txt" {
		t.Errorf("command = %+v", got)
	}
	if got.PageCount != nil {
		t.Errorf("page count for non-PDF = %v, want nil", *got.PageCount)
	}
}

func TestHandlerUploadTooLarge(t *testing.T) {
	sys := &mockSystem{
		createFn: func(context.Context, sources.CreateCommand) (*sources.Source, error) {
			t.Fatal("create should not be called")
			return nil, nil
		},
	}
	mux := setupMux(newTestHandler(sys, 64))

	body, contentType := multipartBody(t, "1", "big.txt", bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest("POST", "/sources", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandlerDownload(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		downloadFn: func(_ context.Context, got uuid.UUID) (*sources.File, error) {
			if got != id {
				return nil, sources.ErrNotFound
			}
			return &sources.File{
				Source: &sources.Source{ID: id, Filename: "trial.pdf", ContentType: "application/pdf"},
				Blob: &storage.Blob{
					Body:          io.NopCloser(strings.NewReader("%PDF")),
					ContentLength: 4,
				},
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys, 1<<20))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/sources/"+id.String()+"/download", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want source fallback", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "trial.pdf") {
		t.Errorf("disposition = %q", rec.Header().Get("Content-Disposition"))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/sources/"+uuid.NewString()+"/download", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", rec.Code)
	}
}

func TestHandlerFindAndDelete(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		findFn: func(_ context.Context, got uuid.UUID) (*sources.Source, error) {
			if got != id {
				return nil, sources.ErrNotFound
			}
			return &sources.Source{ID: id}, nil
		},
		deleteFn: func(_ context.Context, got uuid.UUID) error {
			if got != id {
				return sources.ErrNotFound
			}
			return nil
		},
	}
	mux := setupMux(newTestHandler(sys, 1<<20))

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"GET", "/sources/" + id.String(), http.StatusOK},
		{"GET", "/sources/" + uuid.NewString(), http.StatusNotFound},
		{"GET", "/sources/not-a-uuid", http.StatusBadRequest},
		{"DELETE", "/sources/" + id.String(), http.StatusNoContent},
		{"DELETE", "/sources/" + uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.url, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	pdf := []byte("%PDF-1.7\n")

	tests := []struct {
		name     string
		declared string
		data     []byte
		want     string
	}{
		{"declared wins", "application/pdf", []byte("anything"), "application/pdf"},
		{"octet stream sniffed", "application/octet-stream", pdf, "application/pdf"},
		{"empty sniffed", "", pdf, "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sources.DetectContentType(tt.declared, tt.data); got != tt.want {
				t.Errorf("DetectContentType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if got := sources.PageCount(logger, []byte("plain"), "text/plain"); got != nil {
		t.Errorf("non-PDF page count = %v, want nil", *got)
	}
	if got := sources.PageCount(logger, []byte("%PDF-broken"), "application/pdf"); got != nil {
		t.Errorf("corrupt PDF page count = %v, want nil", *got)
	}
}
