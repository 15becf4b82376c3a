package recommendations

import (
	"context"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for recommendation operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Recommendation, error)
	Find(ctx context.Context, id int64) (*Recommendation, error)
	ListByUser(ctx context.Context, userID int64, page pagination.PageRequest) (*pagination.PageResult[Recommendation], error)

	// Top ranks the limit best-graded interventions by simplified net benefit.
	Top(ctx context.Context, limit int) ([]TopIntervention, error)

	Personalized(ctx context.Context, userID int64, limit int, exclude []string) (*Personalized, error)
	Explain(ctx context.Context, interventionID, userID int64) (*Explanation, error)
	Compare(ctx context.Context, userID int64, interventionIDs []int64) (*Comparison, error)
}
