package scoring

import "github.com/JaimeStill/longevity/internal/interactions"

const (
	sourceRandomizedTrial = "randomized_trial"
	sourceMetaAnalysis    = "meta_analysis"
)

var severityWeights = map[string]float64{
	"mild":     1,
	"moderate": 2,
	"severe":   4,
}

var interactionPenalties = map[interactions.Severity]float64{
	interactions.SeverityMild:     -0.1,
	interactions.SeverityModerate: -0.3,
	interactions.SeverityHigh:     -0.5,
}

// EvidenceQuality scores the body of evidence in [0, 1].
// level is the intervention's evidence level, 1 being strongest.
func EvidenceQuality(level int, evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0.1
	}

	levelScore := float64(5-level) / 4.0

	var quality float64
	var rcts int
	var meta bool
	for _, e := range evidence {
		quality += value(e.QualityScore)
		switch e.SourceType {
		case sourceRandomizedTrial:
			rcts++
		case sourceMetaAnalysis:
			meta = true
		}
	}

	qualityBonus := quality / float64(len(evidence)) / 100.0 * 0.3
	rctBonus := min(0.2, float64(rcts)*0.05)

	var metaBonus float64
	if meta {
		metaBonus = 0.15
	}

	return min(1.0, levelScore+qualityBonus+rctBonus+metaBonus)
}

// RiskBenefit scores the balance of documented benefits against
// severity-weighted risks in [-0.5, 1].
func RiskBenefit(risks []Risk, benefits []Benefit) float64 {
	if len(benefits) == 0 {
		return 0.2
	}

	var risk float64
	for _, r := range risks {
		weight, ok := severityWeights[r.Severity]
		if !ok {
			weight = 1
		}
		risk += value(r.Frequency) / 100 * weight
	}

	var benefit float64
	for _, b := range benefits {
		confidence := value(b.Confidence)
		if confidence == 0 {
			confidence = 50
		}
		benefit += value(b.EffectSize) / 10 * (confidence / 100)
	}

	score := -0.3
	if benefit > risk {
		score = 1 - risk/benefit
	}

	return clamp(score, -0.5, 1)
}

// DrugInteraction penalizes supplement and medical interventions that
// interact with the profile's current medications. The result is in [-1, 0].
func (e *Engine) DrugInteraction(iv Intervention, profile *Profile) float64 {
	if profile == nil || len(profile.Medications) == 0 {
		return 0
	}
	if iv.Category != "supplement" && iv.Category != "medical" {
		return 0
	}

	substances := append(append([]string{}, profile.Medications...), iv.Name)

	var penalty float64
	for _, found := range e.detector.Detect(substances) {
		p, ok := interactionPenalties[found.Severity]
		if !ok {
			p = -0.2
		}
		penalty += p
	}

	return max(-1.0, penalty)
}
