// Package sources stores the study documents behind evidence records.
// Files live in blob storage; the evidence_sources table indexes them.
package sources

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/pkg/storage"
)

// Source is an uploaded study file attached to an evidence record.
type Source struct {
	ID          uuid.UUID `json:"id"`
	EvidenceID  int64     `json:"evidence_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CreateCommand carries an uploaded file. PageCount is set for PDFs.
type CreateCommand struct {
	EvidenceID  int64
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}

// File is a downloaded source. The caller must close Body.
type File struct {
	Source *Source
	Blob   *storage.Blob
}
