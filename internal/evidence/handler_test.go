package evidence_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/longevity/internal/evidence"
	"github.com/JaimeStill/longevity/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters evidence.Filters) (*pagination.PageResult[evidence.Evidence], error)
	findFn   func(ctx context.Context, id int64) (*evidence.Evidence, error)
	createFn func(ctx context.Context, cmd evidence.CreateCommand) (*evidence.Evidence, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockSystem) Handler() *evidence.Handler { return newTestHandler(m) }

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters evidence.Filters) (*pagination.PageResult[evidence.Evidence], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) ForInterventions(context.Context, ...int64) ([]evidence.Evidence, error) {
	return []evidence.Evidence{}, nil
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*evidence.Evidence, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd evidence.CreateCommand) (*evidence.Evidence, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys evidence.System) *evidence.Handler {
	return evidence.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *evidence.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func capturingSystem(captured *evidence.Filters) *mockSystem {
	return &mockSystem{
		listFn: func(_ context.Context, _ pagination.PageRequest, f evidence.Filters) (*pagination.PageResult[evidence.Evidence], error) {
			*captured = f
			result := pagination.NewPageResult([]evidence.Evidence{}, 0, 1, 20)
			return &result, nil
		},
	}
}

func TestHandlerQuality(t *testing.T) {
	var captured evidence.Filters
	mux := setupMux(newTestHandler(capturingSystem(&captured)))

	tests := []struct {
		name    string
		url     string
		status  int
		wantMin float64
	}{
		{"default threshold", "/evidence/quality", http.StatusOK, 70},
		{"explicit threshold", "/evidence/quality?min=85.5", http.StatusOK, 85.5},
		{"out of range", "/evidence/quality?min=120", http.StatusBadRequest, 0},
		{"not a number", "/evidence/quality?min=high", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured = evidence.Filters{}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.url, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if captured.MinQuality == nil || *captured.MinQuality != tt.wantMin {
				t.Errorf("min quality = %v, want %v", captured.MinQuality, tt.wantMin)
			}
		})
	}
}

func TestHandlerSourceShortcuts(t *testing.T) {
	var captured evidence.Filters
	mux := setupMux(newTestHandler(capturingSystem(&captured)))

	tests := []struct {
		url  string
		want string
	}{
		{"/evidence/meta-analyses", evidence.SourceMetaAnalysis},
		{"/evidence/randomized-trials", evidence.SourceRandomizedTrial},
	}

	for _, tt := range tests {
		captured = evidence.Filters{}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.url, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", tt.url, rec.Code)
		}
		if captured.SourceType == nil || *captured.SourceType != tt.want {
			t.Errorf("%s source type = %v, want %s", tt.url, captured.SourceType, tt.want)
		}
	}
}

func TestHandlerByIntervention(t *testing.T) {
	var captured evidence.Filters
	mux := setupMux(newTestHandler(capturingSystem(&captured)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/evidence/intervention/12", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.InterventionID == nil || *captured.InterventionID != 12 {
		t.Errorf("intervention filter = %v, want 12", captured.InterventionID)
	}
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd evidence.CreateCommand) (*evidence.Evidence, error) {
			if cmd.InterventionID == 404 {
				return nil, evidence.ErrInterventionNotFound
			}
			return &evidence.Evidence{
				ID:             1,
				InterventionID: cmd.InterventionID,
				SourceType:     cmd.SourceType,
				EffectSize:     cmd.EffectSize,
				Outcomes:       cmd.Outcomes,
			}, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"intervention_id":1,"source_type":"meta_analysis","effect_size":{"hr":0.8},"outcomes":["mortality"],"quality_score":90}`, http.StatusCreated},
		{"unknown intervention", `{"intervention_id":404,"source_type":"expert"}`, http.StatusNotFound},
		{"bad source type", `{"intervention_id":1,"source_type":"anecdote"}`, http.StatusBadRequest},
		{"quality above 100", `{"intervention_id":1,"source_type":"expert","quality_score":101}`, http.StatusBadRequest},
		{"level out of range", `{"intervention_id":1,"source_type":"expert","evidence_level":5}`, http.StatusBadRequest},
		{"non-numeric pubmed id", `{"intervention_id":1,"source_type":"expert","pubmed_id":"PMC1"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", "/evidence", bytes.NewBufferString(tt.body)))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	t.Run("effect size round-trips verbatim", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := `{"intervention_id":1,"source_type":"cohort_study","effect_size":{"hr":0.8}}`
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/evidence", bytes.NewBufferString(body)))

		var got map[string]json.RawMessage
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(got["effect_size"]) != `{"hr":0.8}` {
			t.Errorf("effect_size = %s", got["effect_size"])
		}
	})
}

func TestHandlerFindAndDelete(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id int64) (*evidence.Evidence, error) {
			if id != 3 {
				return nil, evidence.ErrNotFound
			}
			return &evidence.Evidence{ID: 3, SourceType: evidence.SourceExpert}, nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			if id != 3 {
				return evidence.ErrNotFound
			}
			return nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/evidence/3", http.StatusOK},
		{"GET", "/evidence/4", http.StatusNotFound},
		{"GET", "/evidence/-1", http.StatusBadRequest},
		{"DELETE", "/evidence/3", http.StatusNoContent},
		{"DELETE", "/evidence/4", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.status)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	if got := evidence.MapHTTPStatus(evidence.ErrInvalidQuality); got != http.StatusBadRequest {
		t.Errorf("invalid quality = %d", got)
	}
	if got := evidence.MapHTTPStatus(errors.New("db down")); got != http.StatusInternalServerError {
		t.Errorf("unknown = %d", got)
	}
}
