package scoring_test

import (
	"math"
	"testing"

	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/scoring"
)

const tolerance = 1e-9

func ptr[T any](v T) *T { return &v }

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func newEngine() *scoring.Engine {
	return scoring.New(interactions.NewDetector(interactions.DefaultCatalog()))
}

func TestEvidenceQuality(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		evidence []scoring.Evidence
		want     float64
	}{
		{"no evidence", 1, nil, 0.1},
		{
			"capped at one", 1,
			[]scoring.Evidence{{SourceType: "randomized_trial", QualityScore: ptr(80.0)}},
			1.0,
		},
		{
			"missing quality counts as zero", 3,
			[]scoring.Evidence{
				{SourceType: "cohort_study", QualityScore: ptr(60.0)},
				{SourceType: "cohort_study"},
			},
			0.59,
		},
		{
			"rct bonus capped with meta bonus", 4,
			[]scoring.Evidence{
				{SourceType: "randomized_trial"},
				{SourceType: "randomized_trial"},
				{SourceType: "randomized_trial"},
				{SourceType: "randomized_trial"},
				{SourceType: "randomized_trial"},
				{SourceType: "meta_analysis"},
			},
			0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.EvidenceQuality(tt.level, tt.evidence); !approx(got, tt.want) {
				t.Errorf("EvidenceQuality = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiskBenefit(t *testing.T) {
	tests := []struct {
		name     string
		risks    []scoring.Risk
		benefits []scoring.Benefit
		want     float64
	}{
		{"no benefits", []scoring.Risk{{Severity: "mild", Frequency: ptr(5.0)}}, nil, 0.2},
		{"no risks", nil, []scoring.Benefit{{EffectSize: ptr(5.0), Confidence: ptr(80.0)}}, 1.0},
		{
			"default confidence",
			[]scoring.Risk{{Severity: "moderate", Frequency: ptr(10.0)}},
			[]scoring.Benefit{{EffectSize: ptr(10.0)}},
			0.6,
		},
		{
			"zero confidence treated as default",
			[]scoring.Risk{{Severity: "moderate", Frequency: ptr(10.0)}},
			[]scoring.Benefit{{EffectSize: ptr(10.0), Confidence: ptr(0.0)}},
			0.6,
		},
		{
			"unknown severity weighs one",
			[]scoring.Risk{{Severity: "catastrophic", Frequency: ptr(20.0)}},
			[]scoring.Benefit{{EffectSize: ptr(10.0), Confidence: ptr(100.0)}},
			0.8,
		},
		{
			"risk exceeds benefit",
			[]scoring.Risk{{Severity: "severe", Frequency: ptr(50.0)}},
			[]scoring.Benefit{{EffectSize: ptr(1.0), Confidence: ptr(100.0)}},
			-0.3,
		},
		{
			"zero benefit equals zero risk",
			nil,
			[]scoring.Benefit{{}},
			-0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.RiskBenefit(tt.risks, tt.benefits); !approx(got, tt.want) {
				t.Errorf("RiskBenefit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHealthMatch(t *testing.T) {
	cardio := []string{"Cardiovascular disease"}

	tests := []struct {
		name    string
		iv      scoring.Intervention
		profile *scoring.Profile
		want    float64
	}{
		{"nil profile", scoring.Intervention{Name: "vitamin_d", Category: "supplement"}, nil, 0.5},
		{
			"cardio vitamin d",
			scoring.Intervention{Name: "Vitamin_D3", Category: "supplement"},
			&scoring.Profile{Conditions: cardio}, 0.65,
		},
		{
			"cardio rules are independent",
			scoring.Intervention{Name: "vitamin_d_omega_3_combo", Category: "supplement"},
			&scoring.Profile{Conditions: cardio}, 0.75,
		},
		{
			"hypertension magnesium",
			scoring.Intervention{Name: "Magnesium", Category: "supplement"},
			&scoring.Profile{Conditions: []string{"Hypertension"}}, 0.65,
		},
		{
			"supplement without conditions",
			scoring.Intervention{Name: "vitamin_d", Category: "supplement"},
			&scoring.Profile{}, 0.5,
		},
		{
			"older adult tai chi",
			scoring.Intervention{Name: "Tai_Chi", Category: "exercise"},
			&scoring.Profile{Age: ptr(70)}, 0.7,
		},
		{
			"zero age is unknown",
			scoring.Intervention{Name: "hiit", Category: "exercise"},
			&scoring.Profile{Age: ptr(0)}, 0.5,
		},
		{
			"young adult hiit",
			scoring.Intervention{Name: "HIIT", Category: "exercise"},
			&scoring.Profile{Age: ptr(25)}, 0.7,
		},
		{
			"elevated systolic dash",
			scoring.Intervention{Name: "DASH diet", Category: "nutrition"},
			&scoring.Profile{SystolicBP: ptr(150)}, 0.65,
		},
		{
			"systolic at threshold",
			scoring.Intervention{Name: "DASH diet", Category: "nutrition"},
			&scoring.Profile{SystolicBP: ptr(140)}, 0.5,
		},
		{
			"category must match",
			scoring.Intervention{Name: "walking", Category: "sleep"},
			&scoring.Profile{Age: ptr(80)}, 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.HealthMatch(tt.iv, tt.profile); !approx(got, tt.want) {
				t.Errorf("HealthMatch = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgeAppropriateness(t *testing.T) {
	tests := []struct {
		name     string
		category string
		ivName   string
		age      *int
		want     float64
	}{
		{"unknown age", "exercise", "hiit", nil, 0.5},
		{"under 30 hiit", "exercise", "hiit", ptr(25), 0.8},
		{"under 30 walking", "exercise", "walking", ptr(25), 0.4},
		{"first alternative wins", "exercise", "hiit_walking", ptr(25), 0.8},
		{"thirties running", "exercise", "running", ptr(35), 0.7},
		{"forties heavy", "exercise", "heavy_lifting", ptr(49), 0.4},
		{"fifty walking", "exercise", "walking", ptr(50), 0.8},
		{"older plyometrics", "exercise", "plyometrics", ptr(55), 0.3},
		{"older calcium", "supplement", "Calcium", ptr(55), 0.7},
		{"older creatine", "supplement", "creatine", ptr(60), 0.4},
		{"younger creatine", "supplement", "creatine", ptr(45), 0.5},
		{"other category", "nutrition", "walking", ptr(70), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := scoring.Intervention{Name: tt.ivName, Category: tt.category}
			got := scoring.AgeAppropriateness(iv, &scoring.Profile{Age: tt.age})
			if !approx(got, tt.want) {
				t.Errorf("AgeAppropriateness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrugInteraction(t *testing.T) {
	tests := []struct {
		name    string
		iv      scoring.Intervention
		profile *scoring.Profile
		want    float64
	}{
		{"nil profile", scoring.Intervention{Name: "aspirin", Category: "medical"}, nil, 0},
		{
			"no medications",
			scoring.Intervention{Name: "aspirin", Category: "medical"},
			&scoring.Profile{}, 0,
		},
		{
			"moderate supplement",
			scoring.Intervention{Name: "Ginkgo Biloba", Category: "supplement"},
			&scoring.Profile{Medications: []string{"warfarin"}}, -0.3,
		},
		{
			"high medical",
			scoring.Intervention{Name: "aspirin", Category: "medical"},
			&scoring.Profile{Medications: []string{"Warfarin"}}, -0.5,
		},
		{
			"ineligible category",
			scoring.Intervention{Name: "grapefruit", Category: "nutrition"},
			&scoring.Profile{Medications: []string{"simvastatin"}}, 0,
		},
		{
			"penalty floor",
			scoring.Intervention{Name: "aspirin", Category: "medical"},
			&scoring.Profile{Medications: []string{"warfarin", "warfarin", "warfarin"}}, -1,
		},
		{
			"intervention listed first is not checked",
			scoring.Intervention{Name: "warfarin", Category: "medical"},
			&scoring.Profile{Medications: []string{"aspirin"}}, 0,
		},
	}

	e := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.DrugInteraction(tt.iv, tt.profile); !approx(got, tt.want) {
				t.Errorf("DrugInteraction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrugInteractionUnbucketedSeverity(t *testing.T) {
	catalog, err := interactions.ParseCatalog([]byte(`
substances:
  isotretinoin:
    - interacting_drug: vitamin_a
      severity: contraindicated
      mechanism: Additive toxicity
      effect_code: TOXICITY
      management: Avoid
`))
	if err != nil {
		t.Fatal(err)
	}

	e := scoring.New(interactions.NewDetector(catalog))
	got := e.DrugInteraction(
		scoring.Intervention{Name: "Vitamin A", Category: "supplement"},
		&scoring.Profile{Medications: []string{"isotretinoin"}},
	)
	if !approx(got, -0.2) {
		t.Errorf("DrugInteraction = %v, want -0.2", got)
	}
}

func TestScore(t *testing.T) {
	aspirin := scoring.Input{
		Intervention: scoring.Intervention{ID: 1, Name: "aspirin", Category: "medical", EvidenceLevel: 1},
		Evidence:     []scoring.Evidence{{SourceType: "meta_analysis", QualityScore: ptr(90.0)}},
		Benefits:     []scoring.Benefit{{EffectSize: ptr(8.0), Confidence: ptr(90.0)}},
	}

	tests := []struct {
		name          string
		input         scoring.Input
		profile       *scoring.Profile
		wantTotal     float64
		wantReasoning string
	}{
		{
			name:          "bare intervention without profile",
			input:         scoring.Input{Intervention: scoring.Intervention{Name: "sleep_hygiene", Category: "sleep", EvidenceLevel: 2}},
			wantTotal:     0.23,
			wantReasoning: "evidence-based match",
		},
		{
			name:          "single high interaction",
			input:         aspirin,
			profile:       &scoring.Profile{Age: ptr(45), Medications: []string{"warfarin"}},
			wantTotal:     0.625,
			wantReasoning: "strong evidence support",
		},
		{
			name:          "repeated interaction flags risk",
			input:         aspirin,
			profile:       &scoring.Profile{Age: ptr(45), Medications: []string{"warfarin", "warfarin"}},
			wantTotal:     0.55,
			wantReasoning: "strong evidence support; drug-interaction risk present",
		},
	}

	e := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Score(tt.input, tt.profile)
			if !approx(got.Total, tt.wantTotal) {
				t.Errorf("Total = %v, want %v (components %+v)", got.Total, tt.wantTotal, got.Components)
			}
			if got.Reasoning != tt.wantReasoning {
				t.Errorf("Reasoning = %q, want %q", got.Reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestComponentsTotalClamped(t *testing.T) {
	high := scoring.Components{EvidenceQuality: 5, HealthMatch: 5, RiskBenefit: 5, DrugInteraction: 5, AgeAppropriateness: 5}
	if got := high.Total(); got != 1 {
		t.Errorf("Total = %v, want 1", got)
	}

	low := scoring.Components{EvidenceQuality: -5, HealthMatch: -5, RiskBenefit: -5, DrugInteraction: -5}
	if got := low.Total(); got != -1 {
		t.Errorf("Total = %v, want -1", got)
	}
}

func TestReasoning(t *testing.T) {
	tests := []struct {
		name string
		c    scoring.Components
		want string
	}{
		{"strong", scoring.Components{EvidenceQuality: 0.71}, "strong evidence support"},
		{"boundary is moderate", scoring.Components{EvidenceQuality: 0.7}, "moderate evidence"},
		{"weak", scoring.Components{EvidenceQuality: 0.4}, "evidence-based match"},
		{"drug only", scoring.Components{DrugInteraction: -0.6}, "drug-interaction risk present"},
		{"drug boundary", scoring.Components{DrugInteraction: -0.5}, "evidence-based match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.Reasoning(tt.c); got != tt.want {
				t.Errorf("Reasoning = %q, want %q", got, tt.want)
			}
		})
	}
}
