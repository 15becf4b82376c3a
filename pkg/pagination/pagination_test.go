package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("config = %+v, want 20/100", cfg)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "50")
		t.Setenv("TEST_MAX_PAGE", "200")

		cfg := pagination.Config{}
		err := cfg.Finalize(&pagination.ConfigEnv{
			DefaultPageSize: "TEST_PAGE_SIZE",
			MaxPageSize:     "TEST_MAX_PAGE",
		})
		if err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 50 || cfg.MaxPageSize != 200 {
			t.Errorf("config = %+v, want 50/200", cfg)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"over max", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(defaultConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"3"},
		"page_size": {"15"},
		"search":    {"vitamin"},
		"sort":      {"name,-evidence_level"},
	}

	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 3 || req.PageSize != 15 {
		t.Errorf("page = %d/%d, want 3/15", req.Page, req.PageSize)
	}
	if req.Offset() != 30 {
		t.Errorf("Offset() = %d, want 30", req.Offset())
	}
	if req.Search == nil || *req.Search != "vitamin" {
		t.Errorf("Search = %v, want vitamin", req.Search)
	}
	if len(req.Sort) != 2 || !req.Sort[1].Descending {
		t.Errorf("Sort = %v", req.Sort)
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLen  int
		wantDesc bool
	}{
		{"string form", `{"sort":"-name"}`, 1, true},
		{"array form", `{"sort":[{"field":"name","descending":true},{"field":"id"}]}`, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req pagination.PageRequest
			if err := json.Unmarshal([]byte(tt.input), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(req.Sort) != tt.wantLen {
				t.Fatalf("Sort length = %d, want %d", len(req.Sort), tt.wantLen)
			}
			if req.Sort[0].Descending != tt.wantDesc {
				t.Errorf("Sort[0].Descending = %v, want %v", req.Sort[0].Descending, tt.wantDesc)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"empty", 0, 20, 1},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult[int](nil, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data should be non-nil")
			}
		})
	}
}
