package interventions

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by intervention routes.
func Schemas() map[string]*openapi.Schema {
	categoryEnum := make([]any, len(categories))
	for i, c := range categories {
		categoryEnum[i] = string(c)
	}

	intervention := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             {Type: "integer", Format: "int64"},
			"name":           {Type: "string"},
			"name_en":        {Type: "string"},
			"description":    {Type: "string"},
			"category":       {Type: "string", Enum: categoryEnum},
			"mechanism":      {Type: "string"},
			"evidence_level": {Type: "integer", Minimum: new(1.0), Maximum: new(4.0)},
			"created_at":     {Type: "string", Format: "date-time"},
			"updated_at":     {Type: "string", Format: "date-time"},
		},
	}

	return map[string]*openapi.Schema{
		"Intervention": intervention,
		"InterventionPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Intervention"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"InterventionCommand": {
			Type:     "object",
			Required: []string{"name", "category", "evidence_level"},
			Properties: map[string]*openapi.Schema{
				"name":           {Type: "string", Example: "Metformin"},
				"name_en":        {Type: "string"},
				"description":    {Type: "string"},
				"category":       {Type: "string", Enum: categoryEnum},
				"mechanism":      {Type: "string"},
				"evidence_level": {Type: "integer", Minimum: new(1.0), Maximum: new(4.0)},
			},
		},
		"RiskFactor": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"name":            {Type: "string"},
				"severity":        {Type: "string", Enum: []any{"mild", "moderate", "severe"}},
				"frequency":       {Type: "number"},
				"description":     {Type: "string"},
			},
		},
		"RiskFactorCommand": {
			Type:     "object",
			Required: []string{"name", "severity"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"severity":    {Type: "string", Enum: []any{"mild", "moderate", "severe"}},
				"frequency":   {Type: "number", Minimum: new(0.0), Maximum: new(100.0)},
				"description": {Type: "string"},
			},
		},
		"Benefit": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"name":            {Type: "string"},
				"category":        {Type: "string"},
				"effect_size":     {Type: "number"},
				"confidence":      {Type: "number"},
				"description":     {Type: "string"},
			},
		},
		"BenefitCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"category":    {Type: "string"},
				"effect_size": {Type: "number"},
				"confidence":  {Type: "number", Minimum: new(0.0), Maximum: new(100.0)},
				"description": {Type: "string"},
			},
		},
	}
}
