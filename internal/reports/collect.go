package reports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
)

// Users reads the user and health profile a snapshot embeds.
type Users interface {
	Find(ctx context.Context, id int64) (*profiles.User, error)
	Profile(ctx context.Context, userID int64) (*profiles.HealthProfile, error)
}

// Recommender produces the personalized ranking a snapshot embeds.
type Recommender interface {
	Personalized(ctx context.Context, userID int64, limit int, exclude []string) (*recommendations.Personalized, error)
}

// Collect gathers the user, profile, and recommendations concurrently.
// A user without a health profile yields a nil Profile.
func Collect(
	ctx context.Context,
	users Users,
	rec Recommender,
	id uuid.UUID,
	userID int64,
	limit int,
	now time.Time,
) (*Snapshot, error) {
	var (
		user    *profiles.User
		profile *profiles.HealthProfile
		ranked  *recommendations.Personalized
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := users.Find(gctx, userID)
		if errors.Is(err, profiles.ErrNotFound) {
			return ErrUserNotFound
		}
		user = u
		return err
	})

	g.Go(func() error {
		p, err := users.Profile(gctx, userID)
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return nil
		}
		profile = p
		return err
	})

	g.Go(func() error {
		var err error
		ranked, err = rec.Personalized(gctx, userID, limit, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		ReportID:        id,
		GeneratedAt:     now.UTC(),
		User:            *user,
		Profile:         profile,
		Recommendations: ranked.Recommendations,
		Total:           ranked.Total,
	}, nil
}
