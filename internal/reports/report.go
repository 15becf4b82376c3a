// Package reports archives point-in-time recommendation snapshots.
// Each snapshot is a JSON document in blob storage indexed by the reports table.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
	"github.com/JaimeStill/longevity/pkg/storage"
)

const contentType = "application/json"

// Report indexes an archived snapshot.
type Report struct {
	ID         uuid.UUID `json:"id"`
	UserID     int64     `json:"user_id"`
	ItemCount  int       `json:"item_count"`
	SizeBytes  int64     `json:"size_bytes"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// Snapshot is the archived document: the user's profile and their
// personalized recommendations at generation time.
type Snapshot struct {
	ReportID        uuid.UUID               `json:"report_id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	User            profiles.User           `json:"user"`
	Profile         *profiles.HealthProfile `json:"profile"`
	Recommendations []recommendations.Item  `json:"recommendations"`
	Total           int                     `json:"total"`
}

// File is a downloaded snapshot. The caller must close Blob.Body.
type File struct {
	Report *Report
	Blob   *storage.Blob
}
