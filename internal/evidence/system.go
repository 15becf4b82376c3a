package evidence

import (
	"context"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for evidence domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Evidence], error)

	// ForInterventions returns every study attached to the given interventions.
	ForInterventions(ctx context.Context, ids ...int64) ([]Evidence, error)

	Find(ctx context.Context, id int64) (*Evidence, error)
	Create(ctx context.Context, cmd CreateCommand) (*Evidence, error)
	Delete(ctx context.Context, id int64) error
}
