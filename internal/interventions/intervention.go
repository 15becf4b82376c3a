// Package interventions implements the intervention catalog domain.
// It manages interventions together with their risk factors and benefits,
// which feed the scoring engine.
package interventions

import "time"

// Intervention is a health intervention with its evidence grade.
// EvidenceLevel runs from 1 (strongest) to 4.
type Intervention struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	NameEN        *string   `json:"name_en"`
	Description   *string   `json:"description"`
	Category      Category  `json:"category"`
	Mechanism     *string   `json:"mechanism"`
	EvidenceLevel int       `json:"evidence_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Risk is a known adverse effect of an intervention.
// Frequency is the percentage of people affected.
type Risk struct {
	ID             int64     `json:"id"`
	InterventionID int64     `json:"intervention_id"`
	Name           string    `json:"name"`
	Severity       string    `json:"severity"`
	Frequency      *float64  `json:"frequency"`
	Description    *string   `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// Benefit is a measured positive effect of an intervention.
// Confidence is a percentage.
type Benefit struct {
	ID             int64     `json:"id"`
	InterventionID int64     `json:"intervention_id"`
	Name           string    `json:"name"`
	Category       *string   `json:"category"`
	EffectSize     *float64  `json:"effect_size"`
	Confidence     *float64  `json:"confidence"`
	Description    *string   `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to register an intervention.
type CreateCommand struct {
	Name          string   `json:"name" validate:"required,max=200"`
	NameEN        *string  `json:"name_en" validate:"omitempty,max=200"`
	Description   *string  `json:"description"`
	Category      Category `json:"category" validate:"required,oneof=nutrition exercise sleep supplement medical"`
	Mechanism     *string  `json:"mechanism"`
	EvidenceLevel int      `json:"evidence_level" validate:"min=1,max=4"`
}

// UpdateCommand replaces the mutable fields of an intervention.
type UpdateCommand CreateCommand

// RiskCommand carries the data needed to attach a risk factor.
type RiskCommand struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Severity    string   `json:"severity" validate:"required,oneof=mild moderate severe"`
	Frequency   *float64 `json:"frequency" validate:"omitempty,min=0,max=100"`
	Description *string  `json:"description"`
}

// BenefitCommand carries the data needed to attach a benefit.
type BenefitCommand struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Category    *string  `json:"category"`
	EffectSize  *float64 `json:"effect_size"`
	Confidence  *float64 `json:"confidence" validate:"omitempty,min=0,max=100"`
	Description *string  `json:"description"`
}
