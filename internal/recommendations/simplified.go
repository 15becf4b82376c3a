package recommendations

import "github.com/JaimeStill/longevity/internal/interventions"

// RiskScore sums risk frequencies, capped at 100, as a fraction in [0, 1].
func RiskScore(risks []interventions.Risk) float64 {
	var total float64
	for _, r := range risks {
		if r.Frequency != nil {
			total += *r.Frequency
		}
	}
	return min(total, 100) / 100
}

// BenefitScore sums effect sizes boosted by evidence strength, capped at
// 100, as a fraction. Level 1 evidence boosts by 0.8, level 4 by 0.2.
func BenefitScore(evidenceLevel int, benefits []interventions.Benefit) float64 {
	if len(benefits) == 0 {
		return 0
	}

	var total float64
	for _, b := range benefits {
		if b.EffectSize != nil {
			total += *b.EffectSize
		}
	}

	boost := float64(5-evidenceLevel) * 0.2
	return min(total*boost, 100) / 100
}
