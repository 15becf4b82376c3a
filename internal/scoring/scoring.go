// Package scoring computes the weighted, explainable score of an intervention
// for one user. It is pure: callers supply every record it reads.
package scoring

import (
	"strings"

	"github.com/JaimeStill/longevity/internal/interactions"
)

// Component weights. The total is their weighted sum clamped to [-1, 1].
const (
	WeightEvidence   = 0.30
	WeightHealth     = 0.25
	WeightRisk       = 0.25
	WeightDrug       = 0.15
	WeightAge        = 0.05
	defaultReasoning = "evidence-based match"
)

// Intervention is the scored subject.
type Intervention struct {
	ID            int64
	Name          string
	Category      string
	EvidenceLevel int
}

// Evidence is one supporting study. EvidenceLevel is the study's own grade;
// the evidence component reads the intervention's level instead.
type Evidence struct {
	SourceType    string
	QualityScore  *float64
	EvidenceLevel *int
}

// Risk is one known adverse effect.
type Risk struct {
	Severity  string
	Frequency *float64
}

// Benefit is one documented positive effect.
type Benefit struct {
	EffectSize *float64
	Confidence *float64
}

// Profile is the subset of a user's health profile the engine reads.
// Zero Age or SystolicBP is treated as unknown.
type Profile struct {
	Age         *int
	Conditions  []string
	Medications []string
	SystolicBP  *int
}

// Input bundles an intervention with its evidence, risks, and benefits.
type Input struct {
	Intervention Intervention
	Evidence     []Evidence
	Risks        []Risk
	Benefits     []Benefit
}

// Components holds the five component scores.
type Components struct {
	EvidenceQuality    float64 `json:"evidence_quality"`
	HealthMatch        float64 `json:"health_match"`
	RiskBenefit        float64 `json:"risk_benefit"`
	DrugInteraction    float64 `json:"drug_interaction"`
	AgeAppropriateness float64 `json:"age_appropriateness"`
}

// Result is an intervention's total score with its breakdown.
type Result struct {
	Total      float64    `json:"total"`
	Components Components `json:"components"`
	Reasoning  string     `json:"reasoning"`
}

// Engine scores interventions, using a Detector for the drug component.
type Engine struct {
	detector *interactions.Detector
}

// New creates an Engine backed by detector.
func New(detector *interactions.Detector) *Engine {
	return &Engine{detector: detector}
}

// Detector returns the interaction detector behind the drug component.
func (e *Engine) Detector() *interactions.Detector {
	return e.detector
}

// Score computes all five components for in against profile, which may be nil.
func (e *Engine) Score(in Input, profile *Profile) Result {
	c := Components{
		EvidenceQuality:    EvidenceQuality(in.Intervention.EvidenceLevel, in.Evidence),
		HealthMatch:        HealthMatch(in.Intervention, profile),
		RiskBenefit:        RiskBenefit(in.Risks, in.Benefits),
		DrugInteraction:    e.DrugInteraction(in.Intervention, profile),
		AgeAppropriateness: AgeAppropriateness(in.Intervention, profile),
	}

	return Result{
		Total:      c.Total(),
		Components: c,
		Reasoning:  Reasoning(c),
	}
}

// Total returns the weighted sum of the components clamped to [-1, 1].
func (c Components) Total() float64 {
	total := c.EvidenceQuality*WeightEvidence +
		c.HealthMatch*WeightHealth +
		c.RiskBenefit*WeightRisk +
		c.DrugInteraction*WeightDrug +
		c.AgeAppropriateness*WeightAge
	return clamp(total, -1, 1)
}

// Reasoning summarizes the components as "; "-joined phrases.
func Reasoning(c Components) string {
	var phrases []string

	switch {
	case c.EvidenceQuality > 0.7:
		phrases = append(phrases, "strong evidence support")
	case c.EvidenceQuality > 0.4:
		phrases = append(phrases, "moderate evidence")
	}

	if c.DrugInteraction < -0.5 {
		phrases = append(phrases, "drug-interaction risk present")
	}

	if len(phrases) == 0 {
		return defaultReasoning
	}
	return strings.Join(phrases, "; ")
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func known(p *int) (int, bool) {
	if p == nil || *p == 0 {
		return 0, false
	}
	return *p, true
}
