package profiles

import (
	"context"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for user and profile operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[User], error)

	Find(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, cmd CreateUserCommand) (*User, error)

	// Profile returns the user's health profile, or ErrProfileNotFound.
	Profile(ctx context.Context, userID int64) (*HealthProfile, error)
	// SaveProfile creates or replaces the user's health profile.
	SaveProfile(ctx context.Context, userID int64, cmd ProfileCommand) (*HealthProfile, error)
}
