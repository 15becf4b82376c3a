package evidence

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by evidence routes.
func Schemas() map[string]*openapi.Schema {
	sourceTypes := []any{
		SourceRandomizedTrial,
		SourceMetaAnalysis,
		SourceCohortStudy,
		SourceCaseControl,
		SourceExpert,
	}

	return map[string]*openapi.Schema{
		"Evidence": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"source_type":     {Type: "string", Enum: sourceTypes},
				"pubmed_id":       {Type: "string"},
				"citation":        {Type: "string"},
				"sample_size":     {Type: "integer"},
				"duration_days":   {Type: "integer"},
				"effect_size":     {Type: "object", Description: "Free-form effect measures"},
				"outcomes":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"quality_score":   {Type: "number"},
				"evidence_level":  {Type: "integer"},
				"created_at":      {Type: "string", Format: "date-time"},
			},
		},
		"EvidencePage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Evidence"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"EvidenceCommand": {
			Type:     "object",
			Required: []string{"intervention_id", "source_type"},
			Properties: map[string]*openapi.Schema{
				"intervention_id": {Type: "integer", Format: "int64"},
				"source_type":     {Type: "string", Enum: sourceTypes},
				"pubmed_id":       {Type: "string", Example: "31234567"},
				"citation":        {Type: "string"},
				"sample_size":     {Type: "integer"},
				"duration_days":   {Type: "integer"},
				"effect_size":     {Type: "object"},
				"outcomes":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"quality_score":   {Type: "number", Minimum: new(0.0), Maximum: new(100.0)},
				"evidence_level":  {Type: "integer", Minimum: new(1.0), Maximum: new(4.0)},
			},
		},
	}
}
