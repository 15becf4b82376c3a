package sources

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by evidence source routes.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Source": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"evidence_id":  {Type: "integer", Format: "int64"},
				"filename":     {Type: "string"},
				"content_type": {Type: "string"},
				"size_bytes":   {Type: "integer", Format: "int64"},
				"page_count":   {Type: "integer"},
				"storage_key":  {Type: "string"},
				"uploaded_at":  {Type: "string", Format: "date-time"},
			},
		},
		"SourcePage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Source"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"SourceUpload": {
			Type:     "object",
			Required: []string{"evidence_id", "file"},
			Properties: map[string]*openapi.Schema{
				"evidence_id": {Type: "integer", Format: "int64"},
				"file":        {Type: "string", Format: "binary"},
			},
		},
	}
}
