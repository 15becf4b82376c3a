//go:build integration

package recommendations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/longevity/internal/evidence"
	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/interventions"
	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
	"github.com/JaimeStill/longevity/internal/scoring"
	"github.com/JaimeStill/longevity/internal/testinfra"
	"github.com/JaimeStill/longevity/internal/tracking"
	"github.com/JaimeStill/longevity/pkg/pagination"
)

func TestIntegrationRecommendFlow(t *testing.T) {
	db := testinfra.Postgres(t)
	ctx := context.Background()
	logger := testinfra.Logger()
	page := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

	iv := interventions.New(db, logger, page)
	ev := evidence.New(db, logger, page)
	pr := profiles.New(db, logger, page)

	user, err := pr.Create(ctx, profiles.CreateUserCommand{Username: "ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	age := 45
	if _, err := pr.SaveProfile(ctx, user.ID, profiles.ProfileCommand{
		Age:                &age,
		CurrentMedications: []string{"Warfarin"},
	}); err != nil {
		t.Fatal(err)
	}

	walking, err := iv.Create(ctx, interventions.CreateCommand{
		Name:          "Brisk walking",
		Category:      interventions.CategoryExercise,
		EvidenceLevel: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	aspirin, err := iv.Create(ctx, interventions.CreateCommand{
		Name:          "Aspirin",
		Category:      interventions.CategoryMedical,
		EvidenceLevel: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	quality, level := 85.0, 1
	if _, err := ev.Create(ctx, evidence.CreateCommand{
		InterventionID: walking.ID,
		SourceType:     "meta_analysis",
		QualityScore:   &quality,
		EvidenceLevel:  &level,
	}); err != nil {
		t.Fatal(err)
	}

	freq := 30.0
	if _, err := iv.AddRisk(ctx, aspirin.ID, interventions.RiskCommand{
		Name:      "GI bleeding",
		Severity:  "moderate",
		Frequency: &freq,
	}); err != nil {
		t.Fatal(err)
	}

	orchestrator := recommendations.NewOrchestrator(
		recommendations.NewSource(iv, ev, pr),
		scoring.New(interactions.NewDetector(interactions.DefaultCatalog())),
		nil,
	)
	sys := recommendations.New(db, iv, orchestrator, logger, page, recommendations.DefaultLimit)

	t.Run("personalized ranks walking first", func(t *testing.T) {
		result, err := sys.Personalized(ctx, user.ID, 10, nil)
		if err != nil {
			t.Fatal(err)
		}
		if result.Total != 2 {
			t.Fatalf("total = %d, want 2", result.Total)
		}
		if result.Recommendations[0].InterventionID != walking.ID {
			t.Errorf("first = %d, want walking %d", result.Recommendations[0].InterventionID, walking.ID)
		}
	})

	t.Run("explain flags the warfarin interaction", func(t *testing.T) {
		exp, err := sys.Explain(ctx, aspirin.ID, user.ID)
		if err != nil {
			t.Fatal(err)
		}
		if exp.DrugInteractions.Count == 0 {
			t.Error("expected aspirin to interact with warfarin")
		}
	})

	t.Run("create persists simplified scores", func(t *testing.T) {
		rec, err := sys.Create(ctx, recommendations.CreateCommand{UserID: user.ID, InterventionID: aspirin.ID})
		if err != nil {
			t.Fatal(err)
		}
		if rec.RiskScore != 0.3 {
			t.Errorf("risk = %v, want 0.3", rec.RiskScore)
		}
		if rec.Priority != 5 {
			t.Errorf("priority = %d, want 5", rec.Priority)
		}

		list, err := sys.ListByUser(ctx, user.ID, pagination.PageRequest{Page: 1, PageSize: 10})
		if err != nil {
			t.Fatal(err)
		}
		if list.Total != 1 {
			t.Errorf("listed = %d, want 1", list.Total)
		}
	})

	t.Run("create for unknown intervention", func(t *testing.T) {
		_, err := sys.Create(ctx, recommendations.CreateCommand{UserID: user.ID, InterventionID: 9999})
		if !errors.Is(err, recommendations.ErrInterventionNotFound) {
			t.Errorf("err = %v, want ErrInterventionNotFound", err)
		}
	})

	t.Run("tracking progress", func(t *testing.T) {
		tr := tracking.New(db, logger, page)

		started, err := tr.Start(ctx, tracking.StartCommand{UserID: user.ID, InterventionID: walking.ID})
		if err != nil {
			t.Fatal(err)
		}
		if started.Status != tracking.StatusActive {
			t.Errorf("status = %q, want active", started.Status)
		}

		for _, v := range []float64{120, 118, 115} {
			if _, err := tr.AddMeasurement(ctx, tracking.MeasurementCommand{
				TrackingID:  started.ID,
				MetricName:  "systolic",
				MetricValue: v,
			}); err != nil {
				t.Fatal(err)
			}
		}

		progress, err := tr.Progress(ctx, started.ID)
		if err != nil {
			t.Fatal(err)
		}
		series := progress["systolic"]
		if len(series.Measurements) != 3 {
			t.Fatalf("measurements = %d, want 3", len(series.Measurements))
		}
		if series.Baseline == nil || *series.Baseline != 120 {
			t.Errorf("baseline = %v, want 120", series.Baseline)
		}

		if _, err := tr.Start(ctx, tracking.StartCommand{UserID: 9999, InterventionID: walking.ID}); !errors.Is(err, tracking.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})
}
