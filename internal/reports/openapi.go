package reports

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by report routes.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"user_id":     {Type: "integer", Format: "int64"},
				"item_count":  {Type: "integer"},
				"size_bytes":  {Type: "integer", Format: "int64"},
				"storage_key": {Type: "string"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"ReportPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Report"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"ReportSnapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"report_id":       {Type: "string", Format: "uuid"},
				"generated_at":    {Type: "string", Format: "date-time"},
				"user":            openapi.SchemaRef("User"),
				"profile":         openapi.SchemaRef("HealthProfile"),
				"recommendations": openapi.ArrayOf("PersonalizedItem"),
				"total":           {Type: "integer"},
			},
		},
	}
}
