package scoring

import "strings"

// healthRule adds delta when the category matches, the profile condition
// holds, and the intervention name contains any keyword.
type healthRule struct {
	category string
	applies  func(p *Profile) bool
	keywords []string
	delta    float64
}

var healthRules = []healthRule{
	{"supplement", hasCondition("cardio"), []string{"vitamin_d"}, 0.15},
	{"supplement", hasCondition("cardio"), []string{"omega_3"}, 0.1},
	{"supplement", hasCondition("hypertension"), []string{"magnesium", "potassium"}, 0.15},
	{"exercise", ageAbove(65), []string{"walking", "tai_chi"}, 0.2},
	{"exercise", ageBelow(40), []string{"hiit", "strength"}, 0.2},
	{"nutrition", systolicAbove(140), []string{"dash", "mediterranean"}, 0.15},
}

// ageBand applies the first matching adjustment to a category within
// [minAge, maxAge). A zero maxAge is unbounded.
type ageBand struct {
	category string
	minAge   int
	maxAge   int
	adjust   []adjustment
}

type adjustment struct {
	keywords []string
	delta    float64
}

var ageBands = []ageBand{
	{"exercise", 0, 30, []adjustment{
		{[]string{"hiit", "crossfit"}, 0.3},
		{[]string{"walking"}, -0.1},
	}},
	{"exercise", 30, 50, []adjustment{
		{[]string{"running", "swimming"}, 0.2},
		{[]string{"heavy"}, -0.1},
	}},
	{"exercise", 50, 0, []adjustment{
		{[]string{"walking", "tai_chi"}, 0.3},
		{[]string{"hiit", "plyometrics"}, -0.2},
	}},
	{"supplement", 50, 0, []adjustment{
		{[]string{"calcium", "vitamin_d"}, 0.2},
		{[]string{"creatine"}, -0.1},
	}},
}

// HealthMatch scores how well the intervention fits the profile in [0, 1].
// A nil profile is neutral.
func HealthMatch(iv Intervention, profile *Profile) float64 {
	if profile == nil {
		return 0.5
	}

	name := strings.ToLower(iv.Name)
	score := 0.5
	for _, rule := range healthRules {
		if rule.category == iv.Category && rule.applies(profile) && containsAny(name, rule.keywords) {
			score += rule.delta
		}
	}

	return clamp(score, 0, 1)
}

// AgeAppropriateness scores the intervention against the profile's age in [0, 1].
// An unknown age is neutral.
func AgeAppropriateness(iv Intervention, profile *Profile) float64 {
	if profile == nil {
		return 0.5
	}
	age, ok := known(profile.Age)
	if !ok {
		return 0.5
	}

	name := strings.ToLower(iv.Name)
	score := 0.5
	for _, band := range ageBands {
		if band.category != iv.Category || age < band.minAge {
			continue
		}
		if band.maxAge != 0 && age >= band.maxAge {
			continue
		}
		for _, adj := range band.adjust {
			if containsAny(name, adj.keywords) {
				score += adj.delta
				break
			}
		}
	}

	return clamp(score, 0, 1)
}

func hasCondition(fragment string) func(*Profile) bool {
	return func(p *Profile) bool {
		for _, c := range p.Conditions {
			if strings.Contains(strings.ToLower(c), fragment) {
				return true
			}
		}
		return false
	}
}

func ageAbove(n int) func(*Profile) bool {
	return func(p *Profile) bool {
		age, ok := known(p.Age)
		return ok && age > n
	}
}

func ageBelow(n int) func(*Profile) bool {
	return func(p *Profile) bool {
		age, ok := known(p.Age)
		return ok && age < n
	}
}

func systolicAbove(n int) func(*Profile) bool {
	return func(p *Profile) bool {
		bp, ok := known(p.SystolicBP)
		return ok && bp > n
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
