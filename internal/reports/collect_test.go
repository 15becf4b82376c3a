package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
	"github.com/JaimeStill/longevity/internal/reports"
)

type fakeUsers struct {
	users    map[int64]*profiles.User
	profiles map[int64]*profiles.HealthProfile
}

func (f *fakeUsers) Find(_ context.Context, id int64) (*profiles.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, profiles.ErrNotFound
}

func (f *fakeUsers) Profile(_ context.Context, userID int64) (*profiles.HealthProfile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, profiles.ErrProfileNotFound
}

type fakeRecommender struct {
	err error
}

func (f *fakeRecommender) Personalized(_ context.Context, userID int64, limit int, _ []string) (*recommendations.Personalized, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := make([]recommendations.Item, limit)
	for i := range items {
		items[i] = recommendations.Item{InterventionID: int64(i + 1)}
	}
	return &recommendations.Personalized{UserID: userID, Recommendations: items, Total: limit}, nil
}

func TestCollect(t *testing.T) {
	age := 52
	users := &fakeUsers{
		users: map[int64]*profiles.User{
			1: {ID: 1, Username: "ada"},
			2: {ID: 2, Username: "bo"},
		},
		profiles: map[int64]*profiles.HealthProfile{
			1: {UserID: 1, Age: &age},
		},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	id := uuid.New()

	t.Run("full snapshot", func(t *testing.T) {
		snap, err := reports.Collect(context.Background(), users, &fakeRecommender{}, id, 1, 3, now)
		if err != nil {
			t.Fatal(err)
		}
		if snap.ReportID != id {
			t.Errorf("ReportID = %s, want %s", snap.ReportID, id)
		}
		if snap.User.Username != "ada" {
			t.Errorf("User = %+v", snap.User)
		}
		if snap.Profile == nil || *snap.Profile.Age != 52 {
			t.Errorf("Profile = %+v", snap.Profile)
		}
		if snap.Total != 3 || len(snap.Recommendations) != 3 {
			t.Errorf("Total = %d, items = %d, want 3", snap.Total, len(snap.Recommendations))
		}
		if snap.GeneratedAt.Location() != time.UTC || !snap.GeneratedAt.Equal(now) {
			t.Errorf("GeneratedAt = %v", snap.GeneratedAt)
		}
	})

	t.Run("no health profile", func(t *testing.T) {
		snap, err := reports.Collect(context.Background(), users, &fakeRecommender{}, id, 2, 1, now)
		if err != nil {
			t.Fatal(err)
		}
		if snap.Profile != nil {
			t.Errorf("Profile = %+v, want nil", snap.Profile)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := reports.Collect(context.Background(), users, &fakeRecommender{}, id, 99, 1, now)
		if !errors.Is(err, reports.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("recommender failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := reports.Collect(context.Background(), users, &fakeRecommender{err: boom}, id, 1, 1, now)
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want boom", err)
		}
	})
}
