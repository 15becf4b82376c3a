package cli

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/longevity/internal/interactions"
)

func newInteractionsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactions",
		Short: "Screen substances for drug interactions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "check <substance>...",
			Short: "Detect interactions among the given substances",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				catalog, err := opts.catalog()
				if err != nil {
					return err
				}
				result := interactions.Check(interactions.NewDetector(catalog), args)
				return writeJSON(cmd.OutOrStdout(), result)
			},
		},
		&cobra.Command{
			Use:   "catalog",
			Short: "Print the active interaction catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				catalog, err := opts.catalog()
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), catalog.View())
			},
		},
	)

	return cmd
}
