package interventions_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/longevity/internal/interventions"
)

func TestParseCategory(t *testing.T) {
	for _, c := range interventions.Categories() {
		got, err := interventions.ParseCategory(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}

	if _, err := interventions.ParseCategory("Supplement"); !errors.Is(err, interventions.ErrInvalidCategory) {
		t.Errorf("case mismatch err = %v, want ErrInvalidCategory", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{4, false},
		{5, true},
	}

	for _, tt := range tests {
		_, err := interventions.ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%d) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	f := interventions.FiltersFromQuery(url.Values{
		"category":           {"sleep"},
		"evidence_level":     {"x"},
		"max_evidence_level": {"2"},
	})

	if f.Category == nil || *f.Category != "sleep" {
		t.Errorf("category = %v", f.Category)
	}
	if f.EvidenceLevel != nil {
		t.Errorf("evidence_level = %v, want nil for non-numeric input", *f.EvidenceLevel)
	}
	if f.MaxEvidenceLevel == nil || *f.MaxEvidenceLevel != 2 {
		t.Errorf("max_evidence_level = %v", f.MaxEvidenceLevel)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{interventions.ErrNotFound, http.StatusNotFound},
		{interventions.ErrRiskNotFound, http.StatusNotFound},
		{interventions.ErrDuplicate, http.StatusConflict},
		{interventions.ErrInvalidLevel, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := interventions.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
