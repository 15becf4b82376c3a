package evidence

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "evidence", "e").
	Project("id", "ID").
	Project("intervention_id", "InterventionID").
	Project("source_type", "SourceType").
	Project("pubmed_id", "PubmedID").
	Project("citation", "Citation").
	Project("sample_size", "SampleSize").
	Project("duration_days", "DurationDays").
	Project("effect_size", "EffectSize").
	Project("outcomes", "Outcomes").
	Project("quality_score", "QualityScore").
	Project("evidence_level", "EvidenceLevel").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var qualitySort = query.SortField{
	Field:      "QualityScore",
	Descending: true,
}

// Filters contains optional filtering criteria for evidence queries.
type Filters struct {
	InterventionID *int64   `json:"intervention_id,omitempty"`
	SourceType     *string  `json:"source_type,omitempty"`
	MinQuality     *float64 `json:"min_quality,omitempty"`
	PubmedID       *string  `json:"pubmed_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("InterventionID", f.InterventionID).
		WhereEquals("SourceType", f.SourceType).
		WhereAtLeast("QualityScore", f.MinQuality).
		WhereEquals("PubmedID", f.PubmedID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if iid := values.Get("intervention_id"); iid != "" {
		if v, err := strconv.ParseInt(iid, 10, 64); err == nil {
			f.InterventionID = &v
		}
	}

	if st := values.Get("source_type"); st != "" {
		f.SourceType = &st
	}

	if mq := values.Get("min_quality"); mq != "" {
		if v, err := strconv.ParseFloat(mq, 64); err == nil {
			f.MinQuality = &v
		}
	}

	if pm := values.Get("pubmed_id"); pm != "" {
		f.PubmedID = &pm
	}

	return f
}

func scanEvidence(s repository.Scanner) (Evidence, error) {
	var e Evidence
	err := s.Scan(
		&e.ID,
		&e.InterventionID,
		&e.SourceType,
		&e.PubmedID,
		&e.Citation,
		&e.SampleSize,
		&e.DurationDays,
		&e.EffectSize,
		&e.Outcomes,
		&e.QualityScore,
		&e.EvidenceLevel,
		&e.CreatedAt,
	)
	return e, err
}
