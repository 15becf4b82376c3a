package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/longevity/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic for invalid prefix")
				}
			}()
			module.New(tt.prefix, http.NewServeMux())
		})
	}
}

func TestServePrefixStripping(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"nested", "/api/interventions/4", "/interventions/4"},
		{"root", "/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received = r.URL.Path
			})

			m := module.New("/api", inner)
			m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))

			if received != tt.wantPath {
				t.Errorf("inner path = %s, want %s", received, tt.wantPath)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var calls int
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			next.ServeHTTP(w, r)
		})
	})

	for range 2 {
		m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api", nil))
	}

	if calls != 2 {
		t.Errorf("middleware calls = %d, want 2", calls)
	}
}

func TestRouterDispatch(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /recommendations/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api:" + r.PathValue("user_id")))
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", apiMux))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"module route", "/api/recommendations/7", http.StatusOK, "api:7"},
		{"trailing slash", "/api/recommendations/7/", http.StatusOK, "api:7"},
		{"native route", "/healthz", http.StatusOK, "ok"},
		{"unknown", "/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouterDuplicateMountPanics(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", http.NewServeMux()))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate mount")
		}
	}()
	router.Mount(module.New("/api", http.NewServeMux()))
}
