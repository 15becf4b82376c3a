package tracking

import "github.com/JaimeStill/longevity/pkg/openapi"

func page(item string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        openapi.ArrayOf(item),
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}

// Schemas returns the component schemas used by tracking routes.
func Schemas() map[string]*openapi.Schema {
	trackingStatus := []any{StatusActive, StatusPaused, StatusCompleted, StatusStopped}
	goalStatus := []any{GoalNotStarted, GoalInProgress, GoalAchieved, GoalMissed}
	percent := func() *openapi.Schema {
		return &openapi.Schema{Type: "number", Minimum: new(0.0), Maximum: new(100.0)}
	}
	dateTime := func() *openapi.Schema {
		return &openapi.Schema{Type: "string", Format: "date-time"}
	}

	return map[string]*openapi.Schema{
		"Tracking": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer", Format: "int64"},
				"user_id":         {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"start_date":      dateTime(),
				"end_date":        dateTime(),
				"status":          {Type: "string", Enum: trackingStatus},
				"adherence_rate":  percent(),
				"notes":           {Type: "string"},
				"created_at":      dateTime(),
				"updated_at":      dateTime(),
			},
		},
		"TrackingPage": page("Tracking"),
		"TrackingStartCommand": {
			Type:     "object",
			Required: []string{"user_id", "intervention_id"},
			Properties: map[string]*openapi.Schema{
				"user_id":         {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"notes":           {Type: "string"},
			},
		},
		"TrackingUpdateCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":         {Type: "string", Enum: trackingStatus},
				"adherence_rate": percent(),
				"end_date":       dateTime(),
				"notes":          {Type: "string"},
			},
		},
		"Measurement": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "integer", Format: "int64"},
				"tracking_id":      {Type: "integer", Format: "int64"},
				"user_id":          {Type: "integer", Format: "int64"},
				"metric_name":      {Type: "string"},
				"metric_value":     {Type: "number"},
				"unit":             {Type: "string"},
				"measurement_date": dateTime(),
				"baseline_value":   {Type: "number"},
				"notes":            {Type: "string"},
				"created_at":       dateTime(),
			},
		},
		"MeasurementPage": page("Measurement"),
		"MeasurementCommand": {
			Type:     "object",
			Required: []string{"tracking_id", "metric_name", "metric_value"},
			Properties: map[string]*openapi.Schema{
				"tracking_id":      {Type: "integer", Format: "int64"},
				"metric_name":      {Type: "string", Example: "resting_heart_rate"},
				"metric_value":     {Type: "number"},
				"unit":             {Type: "string"},
				"measurement_date": dateTime(),
				"baseline_value":   {Type: "number"},
				"notes":            {Type: "string"},
			},
		},
		"Progress": {
			Type:        "object",
			Description: "Keyed by metric name; each entry has a baseline and measurements ordered oldest first",
		},
		"Goal": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "integer", Format: "int64"},
				"user_id":       {Type: "integer", Format: "int64"},
				"goal_type":     {Type: "string"},
				"target_value":  {Type: "number"},
				"current_value": {Type: "number"},
				"unit":          {Type: "string"},
				"start_date":    dateTime(),
				"target_date":   dateTime(),
				"status":        {Type: "string", Enum: goalStatus},
				"interventions": {Type: "array", Items: &openapi.Schema{Type: "integer", Format: "int64"}},
				"created_at":    dateTime(),
				"updated_at":    dateTime(),
			},
		},
		"GoalCommand": {
			Type:     "object",
			Required: []string{"user_id", "goal_type", "target_value", "start_date", "target_date"},
			Properties: map[string]*openapi.Schema{
				"user_id":       {Type: "integer", Format: "int64"},
				"goal_type":     {Type: "string", Example: "weight"},
				"target_value":  {Type: "number"},
				"unit":          {Type: "string"},
				"start_date":    dateTime(),
				"target_date":   dateTime(),
				"interventions": {Type: "array", Items: &openapi.Schema{Type: "integer", Format: "int64"}},
			},
		},
		"GoalUpdateCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"current_value": {Type: "number"},
				"status":        {Type: "string", Enum: goalStatus},
				"target_date":   dateTime(),
			},
		},
		"Biomarker": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                   {Type: "integer", Format: "int64"},
				"user_id":              {Type: "integer", Format: "int64"},
				"biomarker_name":       {Type: "string"},
				"value":                {Type: "number"},
				"unit":                 {Type: "string"},
				"reference_range_low":  {Type: "number"},
				"reference_range_high": {Type: "number"},
				"is_normal":            {Type: "boolean"},
				"measurement_date":     dateTime(),
				"source":               {Type: "string"},
				"notes":                {Type: "string"},
				"created_at":           dateTime(),
			},
		},
		"BiomarkerPage": page("Biomarker"),
		"BiomarkerCommand": {
			Type:     "object",
			Required: []string{"user_id", "biomarker_name", "value"},
			Properties: map[string]*openapi.Schema{
				"user_id":              {Type: "integer", Format: "int64"},
				"biomarker_name":       {Type: "string", Example: "ldl_cholesterol"},
				"value":                {Type: "number"},
				"unit":                 {Type: "string"},
				"reference_range_low":  {Type: "number"},
				"reference_range_high": {Type: "number"},
				"measurement_date":     dateTime(),
				"source":               {Type: "string"},
				"notes":                {Type: "string"},
			},
		},
		"Trend": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"biomarker_name": {Type: "string"},
				"period_days":    {Type: "integer"},
				"measurements": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"value":     {Type: "number"},
							"date":      dateTime(),
							"is_normal": {Type: "boolean"},
						},
					},
				},
			},
		},
	}
}
