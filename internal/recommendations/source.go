package recommendations

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/longevity/internal/evidence"
	"github.com/JaimeStill/longevity/internal/interventions"
	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/scoring"
)

type store struct {
	interventions interventions.System
	evidence      evidence.System
	profiles      profiles.System
}

// NewSource creates a Source that reads through the domain systems.
func NewSource(iv interventions.System, ev evidence.System, pr profiles.System) Source {
	return &store{
		interventions: iv,
		evidence:      ev,
		profiles:      pr,
	}
}

func (s *store) UserExists(ctx context.Context, userID int64) (bool, error) {
	_, err := s.profiles.Find(ctx, userID)
	if errors.Is(err, profiles.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *store) Profile(ctx context.Context, userID int64) (*scoring.Profile, error) {
	p, err := s.profiles.Profile(ctx, userID)
	if errors.Is(err, profiles.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ScoringProfile(p), nil
}

func (s *store) Catalog(ctx context.Context) ([]scoring.Input, error) {
	ivs, err := s.interventions.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.inputs(ctx, ivs)
}

func (s *store) Input(ctx context.Context, interventionID int64) (*scoring.Input, error) {
	iv, err := s.interventions.Find(ctx, interventionID)
	if errors.Is(err, interventions.ErrNotFound) {
		return nil, ErrInterventionNotFound
	}
	if err != nil {
		return nil, err
	}

	inputs, err := s.inputs(ctx, []interventions.Intervention{*iv})
	if err != nil {
		return nil, err
	}
	return &inputs[0], nil
}

// inputs loads the risks, benefits, and evidence of ivs concurrently and
// groups them per intervention, preserving the order of ivs.
func (s *store) inputs(ctx context.Context, ivs []interventions.Intervention) ([]scoring.Input, error) {
	if len(ivs) == 0 {
		return []scoring.Input{}, nil
	}

	ids := make([]int64, len(ivs))
	for i, iv := range ivs {
		ids[i] = iv.ID
	}

	var (
		risks    []interventions.Risk
		benefits []interventions.Benefit
		studies  []evidence.Evidence
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		risks, err = s.interventions.Risks(gctx, ids...)
		return err
	})
	g.Go(func() error {
		var err error
		benefits, err = s.interventions.Benefits(gctx, ids...)
		return err
	})
	g.Go(func() error {
		var err error
		studies, err = s.evidence.ForInterventions(gctx, ids...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Assemble(ivs, risks, benefits, studies), nil
}

// Assemble groups records under their interventions, in the order of ivs.
func Assemble(
	ivs []interventions.Intervention,
	risks []interventions.Risk,
	benefits []interventions.Benefit,
	studies []evidence.Evidence,
) []scoring.Input {
	index := make(map[int64]int, len(ivs))
	inputs := make([]scoring.Input, len(ivs))

	for i, iv := range ivs {
		index[iv.ID] = i
		inputs[i].Intervention = scoring.Intervention{
			ID:            iv.ID,
			Name:          iv.Name,
			Category:      string(iv.Category),
			EvidenceLevel: iv.EvidenceLevel,
		}
	}

	for _, r := range risks {
		if i, ok := index[r.InterventionID]; ok {
			inputs[i].Risks = append(inputs[i].Risks, scoring.Risk{
				Severity:  r.Severity,
				Frequency: r.Frequency,
			})
		}
	}

	for _, b := range benefits {
		if i, ok := index[b.InterventionID]; ok {
			inputs[i].Benefits = append(inputs[i].Benefits, scoring.Benefit{
				EffectSize: b.EffectSize,
				Confidence: b.Confidence,
			})
		}
	}

	for _, e := range studies {
		if i, ok := index[e.InterventionID]; ok {
			inputs[i].Evidence = append(inputs[i].Evidence, scoring.Evidence{
				SourceType:    e.SourceType,
				QualityScore:  e.QualityScore,
				EvidenceLevel: e.EvidenceLevel,
			})
		}
	}

	return inputs
}

// ScoringProfile projects a stored health profile onto the fields the
// engine reads.
func ScoringProfile(p *profiles.HealthProfile) *scoring.Profile {
	if p == nil {
		return nil
	}
	return &scoring.Profile{
		Age:         p.Age,
		Conditions:  p.MedicalConditions,
		Medications: p.CurrentMedications,
		SystolicBP:  p.BloodPressureSystolic,
	}
}
