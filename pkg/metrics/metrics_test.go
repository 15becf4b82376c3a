package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/JaimeStill/longevity/pkg/metrics"
)

func TestObserveRequest(t *testing.T) {
	m := metrics.New("test")

	m.ObserveRequest("GET", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", 200, 20*time.Millisecond)
	m.ObserveRequest("POST", 400, time.Millisecond)

	expected := `
# HELP test_http_requests_total HTTP requests by method and status code.
# TYPE test_http_requests_total counter
test_http_requests_total{method="GET",status="200"} 2
test_http_requests_total{method="POST",status="400"} 1
`
	err := testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected), "test_http_requests_total")
	if err != nil {
		t.Error(err)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	m := metrics.New("test")
	m.ObserveRequest("GET", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_http_request_duration_seconds") {
		t.Error("exposition missing request duration histogram")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := metrics.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if !cfg.IsEnabled() || cfg.Path != "/metrics" || cfg.Namespace != "longevity" {
			t.Errorf("config = %+v", cfg)
		}
	})

	t.Run("env disables", func(t *testing.T) {
		t.Setenv("TEST_METRICS_ENABLED", "false")

		cfg := metrics.Config{}
		if err := cfg.Finalize(&metrics.Env{Enabled: "TEST_METRICS_ENABLED"}); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.IsEnabled() {
			t.Error("IsEnabled() = true, want false")
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		cfg := metrics.Config{Path: "metrics"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})
}
