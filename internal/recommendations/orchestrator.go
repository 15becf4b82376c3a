package recommendations

import (
	"context"
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/scoring"
)

// Source supplies the records the Orchestrator scores.
type Source interface {
	// UserExists reports whether userID names a known user.
	UserExists(ctx context.Context, userID int64) (bool, error)
	// Profile returns the user's health profile, or nil when there is none.
	Profile(ctx context.Context, userID int64) (*scoring.Profile, error)
	// Catalog returns every intervention with its records, in ID order.
	Catalog(ctx context.Context) ([]scoring.Input, error)
	// Input returns one intervention with its records, or ErrInterventionNotFound.
	Input(ctx context.Context, interventionID int64) (*scoring.Input, error)
}

// Orchestrator ranks and explains interventions for a user.
type Orchestrator struct {
	source  Source
	engine  *scoring.Engine
	metrics *Metrics
}

// NewOrchestrator creates an Orchestrator. metrics may be nil.
func NewOrchestrator(source Source, engine *scoring.Engine, metrics *Metrics) *Orchestrator {
	return &Orchestrator{
		source:  source,
		engine:  engine,
		metrics: metrics,
	}
}

// Recommend scores every intervention outside exclude for userID and returns
// the best limit of them, highest score first. Equal scores keep ID order.
// An unknown user or a non-positive limit yields an empty list.
func (o *Orchestrator) Recommend(
	ctx context.Context,
	userID int64,
	limit int,
	exclude []string,
) ([]Item, error) {
	if limit <= 0 {
		return []Item{}, nil
	}

	start := time.Now()

	exists, err := o.source.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Item{}, nil
	}

	profile, err := o.source.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	inputs, err := o.source.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(inputs))
	for _, in := range inputs {
		if slices.Contains(exclude, in.Intervention.Category) {
			continue
		}

		res := o.engine.Score(in, profile)
		items = append(items, Item{
			InterventionID: in.Intervention.ID,
			Name:           in.Intervention.Name,
			Category:       in.Intervention.Category,
			Score:          res.Total,
			Components:     res.Components,
			Reasoning:      res.Reasoning,
		})
	}

	o.metrics.observe("recommend", len(items), start)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Explain scores one intervention for userID and details its evidence and
// any interactions with the user's medications. The user may be unknown.
func (o *Orchestrator) Explain(ctx context.Context, interventionID, userID int64) (*Explanation, error) {
	start := time.Now()

	in, err := o.source.Input(ctx, interventionID)
	if err != nil {
		return nil, err
	}

	profile, err := o.source.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := o.engine.Score(*in, profile)

	found := []interactions.Interaction{}
	if profile != nil && len(profile.Medications) > 0 {
		substances := append(slices.Clone(profile.Medications), in.Intervention.Name)
		found = o.engine.Detector().Detect(substances)
	}

	o.metrics.observe("explain", 1, start)

	return &Explanation{
		InterventionID:  in.Intervention.ID,
		Intervention:    in.Intervention.Name,
		TotalScore:      res.Total,
		ScoreBreakdown:  res.Components,
		Reasoning:       res.Reasoning,
		EvidenceSummary: summarizeEvidence(in.Evidence),
		DrugInteractions: DrugInteractions{
			Count:   len(found),
			Details: found,
			Summary: interactions.Summarize(found),
		},
	}, nil
}

// Compare explains each intervention in ids for userID, in the given order.
// IDs that name no intervention are skipped.
func (o *Orchestrator) Compare(ctx context.Context, userID int64, ids []int64) (*Comparison, error) {
	out := make([]Explanation, 0, len(ids))
	for _, id := range ids {
		exp, err := o.Explain(ctx, id, userID)
		if errors.Is(err, ErrInterventionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *exp)
	}

	return &Comparison{
		UserID:      userID,
		Comparisons: out,
		Total:       len(out),
	}, nil
}

func summarizeEvidence(evidence []scoring.Evidence) EvidenceSummary {
	s := EvidenceSummary{
		Total:   len(evidence),
		ByLevel: map[int]int{1: 0, 2: 0, 3: 0, 4: 0},
	}

	var quality float64
	for _, e := range evidence {
		if e.EvidenceLevel != nil {
			if _, ok := s.ByLevel[*e.EvidenceLevel]; ok {
				s.ByLevel[*e.EvidenceLevel]++
			}
		}
		if e.QualityScore != nil {
			quality += *e.QualityScore
		}
	}

	if len(evidence) > 0 {
		s.AvgQuality = quality / float64(len(evidence))
	}
	return s
}
