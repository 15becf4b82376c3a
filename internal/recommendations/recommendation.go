// Package recommendations scores interventions for a user and keeps a
// history of issued recommendations.
//
// The Orchestrator ranks the whole catalog for one user and explains single
// scores. Persisted recommendations use the simpler frequency and effect-size
// balance shown by Top.
package recommendations

import (
	"time"

	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/scoring"
)

// DefaultLimit is the number of personalized recommendations returned when
// the caller does not ask for a specific count.
const DefaultLimit = 10

// Recommendation is an issued recommendation with its simplified scores.
type Recommendation struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	InterventionID int64     `json:"intervention_id"`
	Priority       int       `json:"priority"`
	Reasoning      *string   `json:"reasoning"`
	RiskScore      float64   `json:"risk_score"`
	BenefitScore   float64   `json:"benefit_score"`
	NetBenefit     float64   `json:"net_benefit"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to issue a recommendation.
// Priority defaults to 5.
type CreateCommand struct {
	UserID         int64   `json:"user_id" validate:"required,min=1"`
	InterventionID int64   `json:"intervention_id" validate:"required,min=1"`
	Priority       *int    `json:"priority" validate:"omitempty,min=1,max=10"`
	Reasoning      *string `json:"reasoning" validate:"omitempty,max=2000"`
}

// TopIntervention is an intervention ranked by its simplified net benefit.
type TopIntervention struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	EvidenceLevel int     `json:"evidence_level"`
	RiskScore     float64 `json:"risk_score"`
	BenefitScore  float64 `json:"benefit_score"`
	NetBenefit    float64 `json:"net_benefit"`
}

// Item is one personalized recommendation.
type Item struct {
	InterventionID int64              `json:"intervention_id"`
	Name           string             `json:"name"`
	Category       string             `json:"category"`
	Score          float64            `json:"score"`
	Components     scoring.Components `json:"components"`
	Reasoning      string             `json:"reasoning"`
}

// Personalized is the ranked recommendation list for one user.
type Personalized struct {
	UserID          int64  `json:"user_id"`
	Recommendations []Item `json:"recommendations"`
	Total           int    `json:"total"`
}

// EvidenceSummary counts an intervention's studies by their own evidence level.
type EvidenceSummary struct {
	Total      int         `json:"total"`
	ByLevel    map[int]int `json:"by_level"`
	AvgQuality float64     `json:"avg_quality"`
}

// DrugInteractions lists interactions between the user's medications and
// the explained intervention.
type DrugInteractions struct {
	Count   int                        `json:"count"`
	Details []interactions.Interaction `json:"details"`
	Summary interactions.Summary       `json:"summary"`
}

// Explanation breaks down one intervention's score for one user.
type Explanation struct {
	InterventionID   int64              `json:"intervention_id"`
	Intervention     string             `json:"intervention"`
	TotalScore       float64            `json:"total_score"`
	ScoreBreakdown   scoring.Components `json:"score_breakdown"`
	Reasoning        string             `json:"reasoning"`
	EvidenceSummary  EvidenceSummary    `json:"evidence_summary"`
	DrugInteractions DrugInteractions   `json:"drug_interactions"`
}

// Comparison holds explanations for several interventions side by side.
type Comparison struct {
	UserID      int64         `json:"user_id"`
	Comparisons []Explanation `json:"comparisons"`
	Total       int           `json:"total"`
}
