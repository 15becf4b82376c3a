package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for report operations.
type System interface {
	Handler() *Handler

	// Generate snapshots the user's profile and top limit recommendations
	// into blob storage and records the report.
	Generate(ctx context.Context, userID int64, limit int) (*Report, error)
	ListByUser(ctx context.Context, userID int64, page pagination.PageRequest) (*pagination.PageResult[Report], error)
	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Download(ctx context.Context, id uuid.UUID) (*File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
