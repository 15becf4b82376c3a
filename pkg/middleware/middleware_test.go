package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/longevity/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}
	mw.Use(nil)

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if len(order) != 3 {
		t.Fatalf("execution count = %d, want 3", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "handler" {
		t.Errorf("order = %v, want [first second handler]", order)
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://example.com"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           3600,
	}

	t.Run("allowed origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://example.com")
		middleware.CORS(cfg)(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
			t.Errorf("allow-origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
			t.Errorf("allow-methods = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
			t.Errorf("max-age = %q, want 3600", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("allow-credentials = %q, want true", got)
		}
	})

	t.Run("disallowed origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://denied.com")
		middleware.CORS(cfg)(okHandler()).ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("allow-origin should not be set for disallowed origin")
		}
	})

	t.Run("preflight short circuits", func(t *testing.T) {
		var called bool
		h := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", "http://example.com")
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if called {
			t.Error("handler should not be called for preflight")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://example.com")
		middleware.CORS(&middleware.CORSConfig{})(okHandler()).ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("CORS headers should not be set when disabled")
		}
	})
}

func TestLoggerPassesStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

type observer struct {
	method string
	status int
}

func (o *observer) ObserveRequest(method string, status int, _ time.Duration) {
	o.method = method
	o.status = status
}

func TestMetricsObservesStatus(t *testing.T) {
	obs := &observer{}
	handler := middleware.Metrics(obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/x", nil))

	if obs.method != "DELETE" {
		t.Errorf("method = %q, want DELETE", obs.method)
	}
	if obs.status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", obs.status)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := &middleware.RateLimitConfig{Enabled: true}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1

	handler := middleware.RateLimit(cfg)(okHandler())

	send := func(addr string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("10.0.0.1:1000"); got != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", got)
	}
	if got := send("10.0.0.1:1001"); got != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", got)
	}
	if got := send("10.0.0.2:1000"); got != http.StatusOK {
		t.Errorf("other client status = %d, want 200", got)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	cfg := &middleware.RateLimitConfig{Enabled: false, RequestsPerSecond: 0.001, Burst: 1, IdleTimeout: "1m"}
	handler := middleware.RateLimit(cfg)(okHandler())

	for i := range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
}

type stubVerifier struct {
	subject string
	err     error
}

func (s stubVerifier) Verify(_ context.Context, raw string) (*oidc.IDToken, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &oidc.IDToken{Subject: s.subject}, nil
}

func TestAuth(t *testing.T) {
	var subject string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = middleware.Subject(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		verifier    middleware.TokenVerifier
		header      string
		wantStatus  int
		wantSubject string
	}{
		{"nil verifier passes", nil, "", http.StatusOK, ""},
		{"missing token", stubVerifier{subject: "u1"}, "", http.StatusUnauthorized, ""},
		{"wrong scheme", stubVerifier{subject: "u1"}, "Basic abc", http.StatusUnauthorized, ""},
		{"invalid token", stubVerifier{err: errors.New("expired")}, "Bearer abc", http.StatusUnauthorized, ""},
		{"valid token", stubVerifier{subject: "u1"}, "Bearer abc", http.StatusOK, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject = ""
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			middleware.Auth(tt.verifier)(inner).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
		})
	}
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://a.com, http://b.com")

	cfg := middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.com" {
		t.Errorf("origins = %v", cfg.Origins)
	}
	if len(cfg.AllowedMethods) != 5 {
		t.Errorf("allowed_methods = %d, want 5", len(cfg.AllowedMethods))
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age = %d, want 3600", cfg.MaxAge)
	}
}

func TestAuthConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     middleware.AuthConfig
		wantErr bool
	}{
		{"disabled needs nothing", middleware.AuthConfig{}, false},
		{"enabled without issuer", middleware.AuthConfig{Enabled: true, ClientID: "c"}, true},
		{"enabled without client", middleware.AuthConfig{Enabled: true, Issuer: "https://id"}, true},
		{"enabled complete", middleware.AuthConfig{Enabled: true, Issuer: "https://id", ClientID: "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
