package profiles

import "github.com/JaimeStill/longevity/pkg/openapi"

// Schemas returns the component schemas used by user routes.
func Schemas() map[string]*openapi.Schema {
	list := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}

	profileFields := map[string]*openapi.Schema{
		"age":                      {Type: "integer", Minimum: new(0.0), Maximum: new(150.0)},
		"gender":                   {Type: "string", Enum: []any{"male", "female", "other"}},
		"weight":                   {Type: "number", Description: "Kilograms"},
		"height":                   {Type: "number", Description: "Centimeters"},
		"blood_pressure_systolic":  {Type: "integer"},
		"blood_pressure_diastolic": {Type: "integer"},
		"heart_rate":               {Type: "integer"},
		"medical_conditions":       list,
		"allergies":                list,
		"current_medications":      list,
		"family_history":           list,
	}

	profile := map[string]*openapi.Schema{
		"user_id":    {Type: "integer", Format: "int64"},
		"created_at": {Type: "string", Format: "date-time"},
		"updated_at": {Type: "string", Format: "date-time"},
	}
	for k, v := range profileFields {
		profile[k] = v
	}

	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "integer", Format: "int64"},
				"username":   {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"full_name":  {Type: "string"},
				"is_active":  {Type: "boolean"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"UserPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("User"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"UserCommand": {
			Type:     "object",
			Required: []string{"username", "email"},
			Properties: map[string]*openapi.Schema{
				"username":  {Type: "string"},
				"email":     {Type: "string", Format: "email"},
				"full_name": {Type: "string"},
			},
		},
		"HealthProfile":        {Type: "object", Properties: profile},
		"HealthProfileCommand": {Type: "object", Properties: profileFields},
	}
}
