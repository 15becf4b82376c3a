package interactions

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by interaction routes.
func Schemas() map[string]*openapi.Schema {
	severity := &openapi.Schema{
		Type: "string",
		Enum: []any{"mild", "moderate", "high", "contraindicated"},
	}

	return map[string]*openapi.Schema{
		"InteractionCheck": {
			Type:     "object",
			Required: []string{"substances"},
			Properties: map[string]*openapi.Schema{
				"substances": {
					Type:    "array",
					Items:   &openapi.Schema{Type: "string"},
					Example: []string{"warfarin", "aspirin"},
				},
			},
		},
		"Interaction": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"drug_a":      {Type: "string"},
				"drug_b":      {Type: "string"},
				"severity":    severity,
				"mechanism":   {Type: "string"},
				"effect_code": {Type: "string"},
				"management":  {Type: "string"},
			},
		},
		"InteractionSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total":            {Type: "integer"},
				"high":             {Type: "integer"},
				"moderate":         {Type: "integer"},
				"mild":             {Type: "integer"},
				"highest_severity": {Type: "string", Description: "null when nothing was bucketed"},
				"recommendation":   {Type: "string"},
			},
		},
		"InteractionResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"interactions": openapi.ArrayOf("Interaction"),
				"summary":      openapi.SchemaRef("InteractionSummary"),
			},
		},
		"InteractionCatalog": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"version": {Type: "string"},
				"entries": {Type: "array", Items: &openapi.Schema{Type: "object"}},
			},
		},
	}
}
