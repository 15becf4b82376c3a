package reports_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/internal/reports"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/storage"
)

type mockSystem struct {
	generateFn func(ctx context.Context, userID int64, limit int) (*reports.Report, error)
	listFn     func(ctx context.Context, userID int64, page pagination.PageRequest) (*pagination.PageResult[reports.Report], error)
	findFn     func(ctx context.Context, id uuid.UUID) (*reports.Report, error)
	downloadFn func(ctx context.Context, id uuid.UUID) (*reports.File, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *reports.Handler { return newTestHandler(m) }

func (m *mockSystem) Generate(ctx context.Context, userID int64, limit int) (*reports.Report, error) {
	return m.generateFn(ctx, userID, limit)
}

func (m *mockSystem) ListByUser(ctx context.Context, userID int64, page pagination.PageRequest) (*pagination.PageResult[reports.Report], error) {
	return m.listFn(ctx, userID, page)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*reports.Report, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Download(ctx context.Context, id uuid.UUID) (*reports.File, error) {
	return m.downloadFn(ctx, id)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys reports.System) *reports.Handler {
	return reports.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		4,
	)
}

func setupMux(h *reports.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func send(mux *http.ServeMux, method, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, url, nil))
	return rec
}

func TestHandlerGenerate(t *testing.T) {
	var gotLimit int
	sys := &mockSystem{
		generateFn: func(_ context.Context, userID int64, limit int) (*reports.Report, error) {
			gotLimit = limit
			if userID == 404 {
				return nil, reports.ErrUserNotFound
			}
			return &reports.Report{ID: uuid.New(), UserID: userID, ItemCount: limit}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name      string
		url       string
		status    int
		wantLimit int
	}{
		{"default limit", "/reports/user/1", http.StatusCreated, 4},
		{"explicit limit", "/reports/user/1?limit=2", http.StatusCreated, 2},
		{"zero limit", "/reports/user/1?limit=0", http.StatusBadRequest, 0},
		{"non-numeric limit", "/reports/user/1?limit=abc", http.StatusBadRequest, 0},
		{"bad user id", "/reports/user/abc", http.StatusBadRequest, 0},
		{"unknown user", "/reports/user/404", http.StatusNotFound, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLimit = 0
			rec := send(mux, "POST", tt.url)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestHandlerListByUser(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, userID int64, page pagination.PageRequest) (*pagination.PageResult[reports.Report], error) {
			items := []reports.Report{{ID: uuid.New(), UserID: userID}}
			result := pagination.NewPageResult(items, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := send(mux, "GET", "/reports/user/3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[reports.Report]
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Data) != 1 || result.Data[0].UserID != 3 {
		t.Errorf("data = %+v", result.Data)
	}
}

func TestHandlerDownload(t *testing.T) {
	id := uuid.New()
	body := `{"total":0}`

	sys := &mockSystem{
		downloadFn: func(_ context.Context, got uuid.UUID) (*reports.File, error) {
			if got != id {
				return nil, reports.ErrNotFound
			}
			return &reports.File{
				Report: &reports.Report{ID: id, UserID: 9},
				Blob: &storage.Blob{
					Body:          io.NopCloser(strings.NewReader(body)),
					ContentType:   "application/json",
					ContentLength: int64(len(body)),
				},
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := send(mux, "GET", "/reports/download/"+id.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != body {
		t.Errorf("body = %q, want %q", got, body)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report-9-"+id.String()+".json") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	if rec := send(mux, "GET", "/reports/download/"+uuid.NewString()); rec.Code != http.StatusNotFound {
		t.Errorf("unknown status = %d, want 404", rec.Code)
	}
	if rec := send(mux, "GET", "/reports/download/not-a-uuid"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestHandlerFindAndDelete(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		findFn: func(_ context.Context, got uuid.UUID) (*reports.Report, error) {
			if got != id {
				return nil, reports.ErrNotFound
			}
			return &reports.Report{ID: id}, nil
		},
		deleteFn: func(_ context.Context, got uuid.UUID) error {
			if got != id {
				return reports.ErrNotFound
			}
			return nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name   string
		method string
		url    string
		status int
	}{
		{"find", "GET", "/reports/" + id.String(), http.StatusOK},
		{"find missing", "GET", "/reports/" + uuid.NewString(), http.StatusNotFound},
		{"find bad id", "GET", "/reports/xyz", http.StatusBadRequest},
		{"delete", "DELETE", "/reports/" + id.String(), http.StatusNoContent},
		{"delete missing", "DELETE", "/reports/" + uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := send(mux, tt.method, tt.url); rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
