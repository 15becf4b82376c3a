package profiles

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("full_name", "FullName").
	Project("is_active", "IsActive").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Username"}

var profileProjection = query.
	NewProjectionMap("public", "health_profiles", "hp").
	Project("user_id", "UserID").
	Project("age", "Age").
	Project("gender", "Gender").
	Project("weight", "Weight").
	Project("height", "Height").
	Project("blood_pressure_systolic", "BloodPressureSystolic").
	Project("blood_pressure_diastolic", "BloodPressureDiastolic").
	Project("heart_rate", "HeartRate").
	Project("medical_conditions", "MedicalConditions").
	Project("allergies", "Allergies").
	Project("current_medications", "CurrentMedications").
	Project("family_history", "FamilyHistory").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Filters contains optional filtering criteria for user queries.
type Filters struct {
	IsActive *bool   `json:"is_active,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("IsActive", f.IsActive).
		WhereEquals("Email", f.Email)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if a := values.Get("is_active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.IsActive = &v
		}
	}

	if e := values.Get("email"); e != "" {
		f.Email = &e
	}

	return f
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func scanProfile(s repository.Scanner) (HealthProfile, error) {
	var p HealthProfile
	err := s.Scan(
		&p.UserID,
		&p.Age,
		&p.Gender,
		&p.Weight,
		&p.Height,
		&p.BloodPressureSystolic,
		&p.BloodPressureDiastolic,
		&p.HeartRate,
		&p.MedicalConditions,
		&p.Allergies,
		&p.CurrentMedications,
		&p.FamilyHistory,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
