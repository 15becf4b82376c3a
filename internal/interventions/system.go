package interventions

import (
	"context"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for intervention domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Intervention], error)

	// All returns every intervention ordered by ID.
	All(ctx context.Context) ([]Intervention, error)
	// Top returns up to limit interventions ordered by evidence level, strongest first.
	Top(ctx context.Context, limit int) ([]Intervention, error)

	Find(ctx context.Context, id int64) (*Intervention, error)
	Create(ctx context.Context, cmd CreateCommand) (*Intervention, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (*Intervention, error)
	Delete(ctx context.Context, id int64) error

	// Risks returns the risk factors of the given interventions.
	Risks(ctx context.Context, ids ...int64) ([]Risk, error)
	AddRisk(ctx context.Context, interventionID int64, cmd RiskCommand) (*Risk, error)
	DeleteRisk(ctx context.Context, id int64) error

	// Benefits returns the benefits of the given interventions.
	Benefits(ctx context.Context, ids ...int64) ([]Benefit, error)
	AddBenefit(ctx context.Context, interventionID int64, cmd BenefitCommand) (*Benefit, error)
	DeleteBenefit(ctx context.Context, id int64) error
}
