package reports

import (
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("item_count", "ItemCount").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanReport(s repository.Scanner) (Report, error) {
	var r Report
	err := s.Scan(
		&r.ID,
		&r.UserID,
		&r.ItemCount,
		&r.SizeBytes,
		&r.StorageKey,
		&r.CreatedAt,
	)
	return r, err
}
