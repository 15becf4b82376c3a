// Package cli implements the longevity operator command line.
//
// Interaction screening runs offline against the embedded or a supplied
// catalog. Recommendation commands read the configured database.
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/longevity/internal/interactions"
)

type options struct {
	catalogPath string
}

// NewRootCommand builds the longevity command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "longevity",
		Short: "Evidence-based intervention recommendations",
		Long: `Longevity scores health interventions against a user's profile
and screens substance lists for drug interactions.

Examples:
  longevity interactions check warfarin aspirin
  longevity interactions catalog --catalog ./catalog.yaml
  longevity recommend --user 1 --limit 5
  longevity explain --user 1 --intervention 3`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "interaction catalog YAML (defaults to the embedded catalog)")

	root.AddCommand(
		newInteractionsCommand(opts),
		newRecommendCommand(opts),
		newExplainCommand(opts),
		newCompareCommand(opts),
	)

	return root
}

func (o *options) catalog() (*interactions.Catalog, error) {
	if o.catalogPath == "" {
		return interactions.DefaultCatalog(), nil
	}
	return interactions.LoadCatalog(o.catalogPath)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
