// Package evidence implements the study evidence domain: citations,
// study design, and quality grading attached to interventions.
package evidence

import (
	"time"

	"github.com/JaimeStill/longevity/pkg/repository"
)

// Study designs recognized by the quality score.
const (
	SourceRandomizedTrial = "randomized_trial"
	SourceMetaAnalysis    = "meta_analysis"
	SourceCohortStudy     = "cohort_study"
	SourceCaseControl     = "case_control"
	SourceExpert          = "expert"
)

// DefaultMinQuality is the quality threshold used when none is supplied.
const DefaultMinQuality = 70.0

// Evidence is one study backing an intervention.
type Evidence struct {
	ID             int64                 `json:"id"`
	InterventionID int64                 `json:"intervention_id"`
	SourceType     string                `json:"source_type"`
	PubmedID       *string               `json:"pubmed_id"`
	Citation       *string               `json:"citation"`
	SampleSize     *int                  `json:"sample_size"`
	DurationDays   *int                  `json:"duration_days"`
	EffectSize     repository.RawJSON    `json:"effect_size"`
	Outcomes       repository.StringList `json:"outcomes"`
	QualityScore   *float64              `json:"quality_score"`
	EvidenceLevel  *int                  `json:"evidence_level"`
	CreatedAt      time.Time             `json:"created_at"`
}

// CreateCommand carries the data needed to record a study.
type CreateCommand struct {
	InterventionID int64                 `json:"intervention_id" validate:"required,min=1"`
	SourceType     string                `json:"source_type" validate:"required,oneof=randomized_trial meta_analysis cohort_study case_control expert"`
	PubmedID       *string               `json:"pubmed_id" validate:"omitempty,numeric,max=12"`
	Citation       *string               `json:"citation"`
	SampleSize     *int                  `json:"sample_size" validate:"omitempty,min=1"`
	DurationDays   *int                  `json:"duration_days" validate:"omitempty,min=1"`
	EffectSize     repository.RawJSON    `json:"effect_size"`
	Outcomes       repository.StringList `json:"outcomes"`
	QualityScore   *float64              `json:"quality_score" validate:"omitempty,min=0,max=100"`
	EvidenceLevel  *int                  `json:"evidence_level" validate:"omitempty,min=1,max=4"`
}
