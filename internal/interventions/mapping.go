package interventions

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "interventions", "i").
	Project("id", "ID").
	Project("name", "Name").
	Project("name_en", "NameEN").
	Project("description", "Description").
	Project("category", "Category").
	Project("mechanism", "Mechanism").
	Project("evidence_level", "EvidenceLevel").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "EvidenceLevel"},
	{Field: "ID"},
}

var riskProjection = query.
	NewProjectionMap("public", "risk_factors", "r").
	Project("id", "ID").
	Project("intervention_id", "InterventionID").
	Project("name", "Name").
	Project("severity", "Severity").
	Project("frequency", "Frequency").
	Project("description", "Description").
	Project("created_at", "CreatedAt")

var benefitProjection = query.
	NewProjectionMap("public", "benefits", "b").
	Project("id", "ID").
	Project("intervention_id", "InterventionID").
	Project("name", "Name").
	Project("category", "Category").
	Project("effect_size", "EffectSize").
	Project("confidence", "Confidence").
	Project("description", "Description").
	Project("created_at", "CreatedAt")

var childSort = []query.SortField{
	{Field: "InterventionID"},
	{Field: "ID"},
}

// Filters contains optional filtering criteria for intervention queries.
// MaxEvidenceLevel keeps interventions graded at least that strongly.
type Filters struct {
	Category         *string `json:"category,omitempty"`
	EvidenceLevel    *int    `json:"evidence_level,omitempty"`
	MaxEvidenceLevel *int    `json:"max_evidence_level,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("EvidenceLevel", f.EvidenceLevel).
		WhereAtMost("EvidenceLevel", f.MaxEvidenceLevel)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if lvl := values.Get("evidence_level"); lvl != "" {
		if v, err := strconv.Atoi(lvl); err == nil {
			f.EvidenceLevel = &v
		}
	}

	if lvl := values.Get("max_evidence_level"); lvl != "" {
		if v, err := strconv.Atoi(lvl); err == nil {
			f.MaxEvidenceLevel = &v
		}
	}

	return f
}

func scanIntervention(s repository.Scanner) (Intervention, error) {
	var i Intervention
	err := s.Scan(
		&i.ID,
		&i.Name,
		&i.NameEN,
		&i.Description,
		&i.Category,
		&i.Mechanism,
		&i.EvidenceLevel,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanRisk(s repository.Scanner) (Risk, error) {
	var r Risk
	err := s.Scan(
		&r.ID,
		&r.InterventionID,
		&r.Name,
		&r.Severity,
		&r.Frequency,
		&r.Description,
		&r.CreatedAt,
	)
	return r, err
}

func scanBenefit(s repository.Scanner) (Benefit, error) {
	var b Benefit
	err := s.Scan(
		&b.ID,
		&b.InterventionID,
		&b.Name,
		&b.Category,
		&b.EffectSize,
		&b.Confidence,
		&b.Description,
		&b.CreatedAt,
	)
	return b, err
}

func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
