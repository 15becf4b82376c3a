package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/users",
		Tags:   []string{"Users"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "List users"}},
			{Method: "GET", Pattern: "/{id}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Find user"}},
			{Method: "DELETE", Pattern: "/{id}", Handler: ok},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/goals",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Create goal"}},
				},
			},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, testGroup())

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"list", "GET", "/users", http.StatusOK},
		{"find", "GET", "/users/3", http.StatusOK},
		{"delete", "DELETE", "/users/3", http.StatusOK},
		{"child", "POST", "/users/3/goals", http.StatusOK},
		{"wrong method", "PUT", "/users/3", http.StatusMethodNotAllowed},
		{"unknown", "GET", "/other", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec, "/api", testGroup())

	if len(spec.Paths) != 3 {
		t.Fatalf("paths = %d, want 3", len(spec.Paths))
	}

	item, ok := spec.Paths["/api/users/{id}"]
	if !ok {
		t.Fatal("missing /api/users/{id}")
	}
	if item.Get == nil || item.Get.Summary != "Find user" {
		t.Errorf("GET operation = %+v", item.Get)
	}
	if item.Delete != nil {
		t.Error("undocumented DELETE should not appear")
	}

	child := spec.Paths["/api/users/{id}/goals"]
	if child == nil || child.Post == nil {
		t.Fatal("missing child POST operation")
	}
	if len(child.Post.Tags) != 1 || child.Post.Tags[0] != "Users" {
		t.Errorf("child tags = %v, want inherited [Users]", child.Post.Tags)
	}
}
