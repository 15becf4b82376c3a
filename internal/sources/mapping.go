package sources

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "evidence_sources", "s").
	Project("id", "ID").
	Project("evidence_id", "EvidenceID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("uploaded_at", "UploadedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for source queries.
// Filename uses case-insensitive contains matching.
type Filters struct {
	EvidenceID  *int64  `json:"evidence_id,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	Filename    *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("EvidenceID", f.EvidenceID).
		WhereEquals("ContentType", f.ContentType).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if e := values.Get("evidence_id"); e != "" {
		if v, err := strconv.ParseInt(e, 10, 64); err == nil {
			f.EvidenceID = &v
		}
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanSource(s repository.Scanner) (Source, error) {
	var src Source
	err := s.Scan(
		&src.ID,
		&src.EvidenceID,
		&src.Filename,
		&src.ContentType,
		&src.SizeBytes,
		&src.PageCount,
		&src.StorageKey,
		&src.UploadedAt,
	)
	return src, err
}
