package interactions

import "strings"

// Interaction is a detected match between two substances.
type Interaction struct {
	DrugA      string   `json:"drug_a"`
	DrugB      string   `json:"drug_b"`
	Severity   Severity `json:"severity"`
	Mechanism  string   `json:"mechanism"`
	EffectCode string   `json:"effect_code"`
	Management string   `json:"management"`
}

// Detector pairs substances against a Catalog.
type Detector struct {
	catalog *Catalog
}

// NewDetector creates a Detector backed by catalog.
func NewDetector(catalog *Catalog) *Detector {
	return &Detector{catalog: catalog}
}

// Catalog returns the detector's catalog.
func (d *Detector) Catalog() *Catalog {
	return d.catalog
}

// Detect returns one Interaction for every ordered pair i<j where substances[i]
// is a catalog key listing substances[j]. The reverse direction is not checked
// and repeated names produce repeated matches.
func (d *Detector) Detect(substances []string) []Interaction {
	norm := make([]string, len(substances))
	for i, s := range substances {
		norm[i] = Normalize(s)
	}

	found := []Interaction{}
	for i := range norm {
		rules := d.catalog.Lookup(norm[i])
		if len(rules) == 0 {
			continue
		}

		for j := i + 1; j < len(norm); j++ {
			for _, rule := range rules {
				if norm[j] != Normalize(rule.InteractingDrug) {
					continue
				}
				found = append(found, Interaction{
					DrugA:      strings.ReplaceAll(norm[i], "_", " "),
					DrugB:      rule.InteractingDrug,
					Severity:   rule.Severity,
					Mechanism:  rule.Mechanism,
					EffectCode: rule.EffectCode,
					Management: rule.Management,
				})
			}
		}
	}

	return found
}
