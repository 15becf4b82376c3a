package sources

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for evidence source operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Source], error)
	Find(ctx context.Context, id uuid.UUID) (*Source, error)
	// Download opens the stored file of a source.
	Download(ctx context.Context, id uuid.UUID) (*File, error)
	// Create uploads the file, then registers it. A failed insert removes the blob.
	Create(ctx context.Context, cmd CreateCommand) (*Source, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
