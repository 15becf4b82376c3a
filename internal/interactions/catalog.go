// Package interactions detects drug and supplement interactions against a
// versioned catalog of one-directional rules.
package interactions

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Severity grades how serious an interaction is.
type Severity string

const (
	SeverityMild            Severity = "mild"
	SeverityModerate        Severity = "moderate"
	SeverityHigh            Severity = "high"
	SeverityContraindicated Severity = "contraindicated"
)

// Rule describes how a primary substance interacts with one other substance.
type Rule struct {
	InteractingDrug string   `yaml:"interacting_drug" json:"interacting_drug"`
	Severity        Severity `yaml:"severity" json:"severity"`
	Mechanism       string   `yaml:"mechanism" json:"mechanism"`
	EffectCode      string   `yaml:"effect_code" json:"effect_code"`
	Management      string   `yaml:"management" json:"management"`
}

// Catalog is read-only interaction reference data keyed by normalized primary substance.
type Catalog struct {
	version string
	rules   map[string][]Rule
}

type catalogFile struct {
	Version    string            `yaml:"version"`
	Substances map[string][]Rule `yaml:"substances"`
}

var separators = strings.NewReplacer(" ", "_", "-", "_")

// Normalize lower-cases a substance name and replaces spaces and hyphens with underscores.
func Normalize(name string) string {
	return separators.Replace(strings.ToLower(name))
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded interaction catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog from path, or returns the default catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML catalog data. Primary keys are normalized on load.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		version: file.Version,
		rules:   make(map[string][]Rule, len(file.Substances)),
	}

	for key, rules := range file.Substances {
		for _, r := range rules {
			if r.InteractingDrug == "" {
				return nil, fmt.Errorf("%w: %s has a rule without interacting_drug", ErrInvalidCatalog, key)
			}
		}
		norm := Normalize(key)
		c.rules[norm] = append(c.rules[norm], rules...)
	}

	return c, nil
}

// Version returns the catalog's version label.
func (c *Catalog) Version() string {
	return c.version
}

// Lookup returns the rules for a normalized primary substance.
func (c *Catalog) Lookup(key string) []Rule {
	return c.rules[key]
}

// Substances returns the primary substance keys in sorted order.
func (c *Catalog) Substances() []string {
	return slices.Sorted(maps.Keys(c.rules))
}

// Entry is one primary substance and its rules, as exposed by the API.
type Entry struct {
	Substance string `json:"substance"`
	Rules     []Rule `json:"rules"`
}

// View is the serializable form of a catalog.
type View struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

// View returns the catalog contents ordered by substance.
func (c *Catalog) View() View {
	v := View{Version: c.version, Entries: make([]Entry, 0, len(c.rules))}
	for _, key := range c.Substances() {
		v.Entries = append(v.Entries, Entry{Substance: key, Rules: c.rules[key]})
	}
	return v
}
