package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/longevity/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Longevity API", "1.0.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version = %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Longevity API" {
		t.Errorf("title = %s", spec.Info.Title)
	}
	if _, ok := spec.Components.Responses["TooManyRequests"]; !ok {
		t.Error("missing TooManyRequests response")
	}
	if spec.Components.Responses["NotFound"].Content["application/json"].Schema.Ref != "#/components/schemas/Error" {
		t.Error("NotFound should reference the Error schema")
	}
}

func TestPathItemSet(t *testing.T) {
	tests := []struct {
		method string
		get    func(*openapi.PathItem) *openapi.Operation
	}{
		{"GET", func(p *openapi.PathItem) *openapi.Operation { return p.Get }},
		{"POST", func(p *openapi.PathItem) *openapi.Operation { return p.Post }},
		{"PUT", func(p *openapi.PathItem) *openapi.Operation { return p.Put }},
		{"PATCH", func(p *openapi.PathItem) *openapi.Operation { return p.Patch }},
		{"DELETE", func(p *openapi.PathItem) *openapi.Operation { return p.Delete }},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			item := &openapi.PathItem{}
			op := &openapi.Operation{Summary: tt.method}
			item.Set(tt.method, op)

			if tt.get(item) != op {
				t.Errorf("%s slot not set", tt.method)
			}
		})
	}
}

func TestRequireBearer(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.Paths["/users"] = &openapi.PathItem{
		Get:  &openapi.Operation{Summary: "list"},
		Post: &openapi.Operation{Summary: "create"},
	}

	spec.RequireBearer()

	if spec.Components.SecuritySchemes["bearer"].Scheme != "bearer" {
		t.Error("bearer scheme not registered")
	}
	for _, op := range []*openapi.Operation{spec.Paths["/users"].Get, spec.Paths["/users"].Post} {
		if len(op.Security) != 1 {
			t.Errorf("%s security = %v", op.Summary, op.Security)
		}
	}
}

func TestHelpers(t *testing.T) {
	if p := openapi.IDParam("id", "User ID"); p.Schema.Type != "integer" || !p.Required {
		t.Errorf("IDParam = %+v", p)
	}
	if p := openapi.PathParam("id", "Report ID"); p.Schema.Format != "uuid" {
		t.Errorf("PathParam format = %s, want uuid", p.Schema.Format)
	}
	if s := openapi.ArrayOf("Goal"); s.Type != "array" || s.Items.Ref != "#/components/schemas/Goal" {
		t.Errorf("ArrayOf = %+v", s)
	}
	if b := openapi.RequestBodyJSON("Goal", true); !b.Required {
		t.Error("RequestBodyJSON should be required")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Custom")

	cfg := openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Custom" {
		t.Errorf("Title = %s, want Custom", cfg.Title)
	}
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %s, want 0.1.0", cfg.Version)
	}
	if cfg.Description == "" {
		t.Error("Description default should be set")
	}
}

func TestWriteAndServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	path := filepath.Join(t.TempDir(), "openapi.json")

	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var decoded openapi.Spec
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Info.Title != "Test" {
		t.Errorf("title = %s, want Test", decoded.Info.Title)
	}
}
