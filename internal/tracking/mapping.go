package tracking

import (
	"net/url"

	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var trackingProjection = query.
	NewProjectionMap("public", "intervention_tracking", "t").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("intervention_id", "InterventionID").
	Project("start_date", "StartDate").
	Project("end_date", "EndDate").
	Project("status", "Status").
	Project("adherence_rate", "AdherenceRate").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var trackingSort = []query.SortField{
	{Field: "StartDate", Descending: true},
	{Field: "ID", Descending: true},
}

var measurementProjection = query.
	NewProjectionMap("public", "effect_measurements", "em").
	Project("id", "ID").
	Project("tracking_id", "TrackingID").
	Project("metric_name", "MetricName").
	Project("metric_value", "MetricValue").
	Project("unit", "Unit").
	Project("measurement_date", "MeasurementDate").
	Project("baseline_value", "BaselineValue").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt").
	Join("public", "intervention_tracking", "t", "JOIN", "t.id = em.tracking_id").
	Project("user_id", "UserID")

var measurementSort = []query.SortField{
	{Field: "MeasurementDate", Descending: true},
	{Field: "ID", Descending: true},
}

var chronological = []query.SortField{
	{Field: "MeasurementDate"},
	{Field: "ID"},
}

var goalProjection = query.
	NewProjectionMap("public", "health_goals", "g").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("goal_type", "GoalType").
	Project("target_value", "TargetValue").
	Project("current_value", "CurrentValue").
	Project("unit", "Unit").
	Project("start_date", "StartDate").
	Project("target_date", "TargetDate").
	Project("status", "Status").
	Project("interventions", "Interventions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var goalSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

var activeGoalSort = []query.SortField{
	{Field: "TargetDate"},
	{Field: "ID"},
}

var biomarkerProjection = query.
	NewProjectionMap("public", "biomarker_measurements", "b").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("biomarker_name", "BiomarkerName").
	Project("value", "Value").
	Project("unit", "Unit").
	Project("reference_range_low", "ReferenceRangeLow").
	Project("reference_range_high", "ReferenceRangeHigh").
	Project("is_normal", "IsNormal").
	Project("measurement_date", "MeasurementDate").
	Project("source", "Source").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt")

// Filters narrows per-user listings. Status applies to tracking records,
// Metric to measurements, and Biomarker to biomarker readings.
type Filters struct {
	Status    *string `json:"status,omitempty"`
	Metric    *string `json:"metric_name,omitempty"`
	Biomarker *string `json:"biomarker_name,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if m := values.Get("metric_name"); m != "" {
		f.Metric = &m
	}

	if b := values.Get("biomarker_name"); b != "" {
		f.Biomarker = &b
	}

	return f
}

// ValidStatus reports whether s is a tracking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted, StatusStopped:
		return true
	}
	return false
}

func scanTracking(s repository.Scanner) (Tracking, error) {
	var t Tracking
	err := s.Scan(
		&t.ID,
		&t.UserID,
		&t.InterventionID,
		&t.StartDate,
		&t.EndDate,
		&t.Status,
		&t.AdherenceRate,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func scanMeasurement(s repository.Scanner) (Measurement, error) {
	var m Measurement
	err := s.Scan(
		&m.ID,
		&m.TrackingID,
		&m.MetricName,
		&m.MetricValue,
		&m.Unit,
		&m.MeasurementDate,
		&m.BaselineValue,
		&m.Notes,
		&m.CreatedAt,
		&m.UserID,
	)
	return m, err
}

func scanGoal(s repository.Scanner) (Goal, error) {
	var g Goal
	err := s.Scan(
		&g.ID,
		&g.UserID,
		&g.GoalType,
		&g.TargetValue,
		&g.CurrentValue,
		&g.Unit,
		&g.StartDate,
		&g.TargetDate,
		&g.Status,
		&g.Interventions,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func scanBiomarker(s repository.Scanner) (Biomarker, error) {
	var b Biomarker
	err := s.Scan(
		&b.ID,
		&b.UserID,
		&b.BiomarkerName,
		&b.Value,
		&b.Unit,
		&b.ReferenceRangeLow,
		&b.ReferenceRangeHigh,
		&b.IsNormal,
		&b.MeasurementDate,
		&b.Source,
		&b.Notes,
		&b.CreatedAt,
	)
	return b, err
}
