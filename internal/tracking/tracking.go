// Package tracking follows a user's adopted interventions and the health
// data recorded against them: effect measurements, goals, and biomarkers.
package tracking

import (
	"time"

	"github.com/JaimeStill/longevity/pkg/repository"
)

// Intervention tracking statuses.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusStopped   = "stopped"
)

// Goal statuses. A goal is active while not started or in progress.
const (
	GoalNotStarted = "not_started"
	GoalInProgress = "in_progress"
	GoalAchieved   = "achieved"
	GoalMissed     = "missed"
)

// DefaultTrendDays is the biomarker trend window when none is requested.
const DefaultTrendDays = 30

// Tracking records a user's adoption of an intervention.
// AdherenceRate is a percentage.
type Tracking struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	InterventionID int64      `json:"intervention_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Status         string     `json:"status"`
	AdherenceRate  *float64   `json:"adherence_rate"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// StartCommand begins tracking an intervention for a user.
type StartCommand struct {
	UserID         int64   `json:"user_id" validate:"required,min=1"`
	InterventionID int64   `json:"intervention_id" validate:"required,min=1"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateCommand changes the given fields of a tracking record.
// Omitted fields keep their values.
type UpdateCommand struct {
	Status        *string    `json:"status" validate:"omitempty,oneof=active paused completed stopped"`
	AdherenceRate *float64   `json:"adherence_rate" validate:"omitempty,min=0,max=100"`
	EndDate       *time.Time `json:"end_date"`
	Notes         *string    `json:"notes" validate:"omitempty,max=2000"`
}

// Measurement is one reading of a metric taken while tracking.
type Measurement struct {
	ID              int64     `json:"id"`
	TrackingID      int64     `json:"tracking_id"`
	UserID          int64     `json:"user_id"`
	MetricName      string    `json:"metric_name"`
	MetricValue     float64   `json:"metric_value"`
	Unit            *string   `json:"unit"`
	MeasurementDate time.Time `json:"measurement_date"`
	BaselineValue   *float64  `json:"baseline_value"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// MeasurementCommand records a metric reading. MeasurementDate defaults to now.
type MeasurementCommand struct {
	TrackingID      int64      `json:"tracking_id" validate:"required,min=1"`
	MetricName      string     `json:"metric_name" validate:"required,max=100"`
	MetricValue     float64    `json:"metric_value"`
	Unit            *string    `json:"unit" validate:"omitempty,max=50"`
	MeasurementDate *time.Time `json:"measurement_date"`
	BaselineValue   *float64   `json:"baseline_value"`
	Notes           *string    `json:"notes"`
}

// Goal is a health target a user works toward.
type Goal struct {
	ID            int64                `json:"id"`
	UserID        int64                `json:"user_id"`
	GoalType      string               `json:"goal_type"`
	TargetValue   float64              `json:"target_value"`
	CurrentValue  *float64             `json:"current_value"`
	Unit          *string              `json:"unit"`
	StartDate     time.Time            `json:"start_date"`
	TargetDate    time.Time            `json:"target_date"`
	Status        string               `json:"status"`
	Interventions repository.Int64List `json:"interventions"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// GoalCommand creates a goal. New goals start as not_started.
type GoalCommand struct {
	UserID        int64     `json:"user_id" validate:"required,min=1"`
	GoalType      string    `json:"goal_type" validate:"required,max=50"`
	TargetValue   float64   `json:"target_value"`
	Unit          *string   `json:"unit" validate:"omitempty,max=50"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	TargetDate    time.Time `json:"target_date" validate:"required,gtefield=StartDate"`
	Interventions []int64   `json:"interventions" validate:"max=50,dive,min=1"`
}

// GoalUpdateCommand changes the given fields of a goal.
type GoalUpdateCommand struct {
	CurrentValue *float64   `json:"current_value"`
	Status       *string    `json:"status" validate:"omitempty,oneof=not_started in_progress achieved missed"`
	TargetDate   *time.Time `json:"target_date"`
}

// Biomarker is one lab or device reading for a user.
type Biomarker struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	BiomarkerName      string    `json:"biomarker_name"`
	Value              float64   `json:"value"`
	Unit               *string   `json:"unit"`
	ReferenceRangeLow  *float64  `json:"reference_range_low"`
	ReferenceRangeHigh *float64  `json:"reference_range_high"`
	IsNormal           bool      `json:"is_normal"`
	MeasurementDate    time.Time `json:"measurement_date"`
	Source             *string   `json:"source"`
	Notes              *string   `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
}

// BiomarkerCommand records a biomarker reading. MeasurementDate defaults to now.
type BiomarkerCommand struct {
	UserID             int64      `json:"user_id" validate:"required,min=1"`
	BiomarkerName      string     `json:"biomarker_name" validate:"required,max=100"`
	Value              float64    `json:"value"`
	Unit               *string    `json:"unit" validate:"omitempty,max=50"`
	ReferenceRangeLow  *float64   `json:"reference_range_low"`
	ReferenceRangeHigh *float64   `json:"reference_range_high"`
	MeasurementDate    *time.Time `json:"measurement_date"`
	Source             *string    `json:"source" validate:"omitempty,max=50"`
	Notes              *string    `json:"notes"`
}

// Point is one dated reading in a progress series.
type Point struct {
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
	Notes *string   `json:"notes"`
}

// MetricProgress is the series of one metric with the baseline of its
// first reading.
type MetricProgress struct {
	Baseline     *float64 `json:"baseline"`
	Measurements []Point  `json:"measurements"`
}

// TrendPoint is one dated biomarker reading.
type TrendPoint struct {
	Value    float64   `json:"value"`
	Date     time.Time `json:"date"`
	IsNormal bool      `json:"is_normal"`
}

// Trend is a biomarker's readings over a recent window, oldest first.
type Trend struct {
	BiomarkerName string       `json:"biomarker_name"`
	PeriodDays    int          `json:"period_days"`
	Measurements  []TrendPoint `json:"measurements"`
}
