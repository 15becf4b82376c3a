// Package profiles implements users and their health profiles,
// the personal context the recommendation engine scores against.
package profiles

import (
	"time"

	"github.com/JaimeStill/longevity/pkg/repository"
)

// User is an account that receives recommendations.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HealthProfile holds a user's vitals, conditions, and current medications.
// Each user has at most one profile.
type HealthProfile struct {
	UserID                 int64                 `json:"user_id"`
	Age                    *int                  `json:"age"`
	Gender                 *string               `json:"gender"`
	Weight                 *float64              `json:"weight"`
	Height                 *float64              `json:"height"`
	BloodPressureSystolic  *int                  `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int                  `json:"blood_pressure_diastolic"`
	HeartRate              *int                  `json:"heart_rate"`
	MedicalConditions      repository.StringList `json:"medical_conditions"`
	Allergies              repository.StringList `json:"allergies"`
	CurrentMedications     repository.StringList `json:"current_medications"`
	FamilyHistory          repository.StringList `json:"family_history"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              time.Time             `json:"updated_at"`
}

// CreateUserCommand carries the data needed to register a user.
type CreateUserCommand struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
}

// ProfileCommand replaces a user's health profile.
type ProfileCommand struct {
	Age                    *int                  `json:"age" validate:"omitempty,min=0,max=150"`
	Gender                 *string               `json:"gender" validate:"omitempty,oneof=male female other"`
	Weight                 *float64              `json:"weight" validate:"omitempty,gt=0,lt=700"`
	Height                 *float64              `json:"height" validate:"omitempty,gt=0,lt=300"`
	BloodPressureSystolic  *int                  `json:"blood_pressure_systolic" validate:"omitempty,min=50,max=300"`
	BloodPressureDiastolic *int                  `json:"blood_pressure_diastolic" validate:"omitempty,min=30,max=200"`
	HeartRate              *int                  `json:"heart_rate" validate:"omitempty,min=20,max=250"`
	MedicalConditions      repository.StringList `json:"medical_conditions" validate:"max=100,dive,required,max=200"`
	Allergies              repository.StringList `json:"allergies" validate:"max=100,dive,required,max=200"`
	CurrentMedications     repository.StringList `json:"current_medications" validate:"max=100,dive,required,max=200"`
	FamilyHistory          repository.StringList `json:"family_history" validate:"max=100,dive,required,max=200"`
}
