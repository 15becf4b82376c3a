package recommendations

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by recommendation routes.
func Schemas() map[string]*openapi.Schema {
	components := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"evidence_quality":    {Type: "number"},
			"health_match":        {Type: "number"},
			"risk_benefit":        {Type: "number"},
			"drug_interaction":    {Type: "number"},
			"age_appropriateness": {Type: "number"},
		},
	}

	return map[string]*openapi.Schema{
		"Recommendation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer", Format: "int64"},
				"user_id":         {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"priority":        {Type: "integer"},
				"reasoning":       {Type: "string"},
				"risk_score":      {Type: "number"},
				"benefit_score":   {Type: "number"},
				"net_benefit":     {Type: "number"},
				"created_at":      {Type: "string", Format: "date-time"},
			},
		},
		"RecommendationPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Recommendation"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"RecommendationCommand": {
			Type:     "object",
			Required: []string{"user_id", "intervention_id"},
			Properties: map[string]*openapi.Schema{
				"user_id":         {Type: "integer", Format: "int64"},
				"intervention_id": {Type: "integer", Format: "int64"},
				"priority":        {Type: "integer", Minimum: new(1.0), Maximum: new(10.0), Default: defaultPriority},
				"reasoning":       {Type: "string"},
			},
		},
		"TopIntervention": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "integer", Format: "int64"},
				"name":           {Type: "string"},
				"category":       {Type: "string"},
				"evidence_level": {Type: "integer"},
				"risk_score":     {Type: "number"},
				"benefit_score":  {Type: "number"},
				"net_benefit":    {Type: "number"},
			},
		},
		"ScoreComponents": components,
		"PersonalizedItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"intervention_id": {Type: "integer", Format: "int64"},
				"name":            {Type: "string"},
				"category":        {Type: "string"},
				"score":           {Type: "number", Minimum: new(-1.0), Maximum: new(1.0)},
				"components":      openapi.SchemaRef("ScoreComponents"),
				"reasoning":       {Type: "string"},
			},
		},
		"Personalized": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"user_id":         {Type: "integer", Format: "int64"},
				"recommendations": openapi.ArrayOf("PersonalizedItem"),
				"total":           {Type: "integer"},
			},
		},
		"Explanation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"intervention_id": {Type: "integer", Format: "int64"},
				"intervention":    {Type: "string"},
				"total_score":     {Type: "number"},
				"score_breakdown": openapi.SchemaRef("ScoreComponents"),
				"reasoning":       {Type: "string"},
				"evidence_summary": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"total":       {Type: "integer"},
						"by_level":    {Type: "object", Description: "Study counts keyed by evidence level 1 to 4"},
						"avg_quality": {Type: "number"},
					},
				},
				"drug_interactions": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"count":   {Type: "integer"},
						"details": openapi.ArrayOf("Interaction"),
						"summary": openapi.SchemaRef("InteractionSummary"),
					},
				},
			},
		},
		"Comparison": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"user_id":     {Type: "integer", Format: "int64"},
				"comparisons": openapi.ArrayOf("Explanation"),
				"total":       {Type: "integer"},
			},
		},
	}
}
