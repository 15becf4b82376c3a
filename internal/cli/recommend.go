package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/internal/evidence"
	"github.com/JaimeStill/longevity/internal/interactions"
	"github.com/JaimeStill/longevity/internal/interventions"
	"github.com/JaimeStill/longevity/internal/profiles"
	"github.com/JaimeStill/longevity/internal/recommendations"
	"github.com/JaimeStill/longevity/internal/scoring"
	"github.com/JaimeStill/longevity/pkg/database"
)

// withOrchestrator opens the configured database, runs fn, and closes it.
func withOrchestrator(ctx context.Context, opts *options, fn func(*recommendations.Orchestrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := cfg.Logging.NewLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if opts.catalogPath == "" {
		opts.catalogPath = cfg.Recommendations.CatalogPath
	}
	catalog, err := opts.catalog()
	if err != nil {
		return err
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return err
	}
	conn := db.Connection()
	defer conn.Close()

	if err := db.Check(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	page := cfg.API.Pagination
	source := recommendations.NewSource(
		interventions.New(conn, logger, page),
		evidence.New(conn, logger, page),
		profiles.New(conn, logger, page),
	)

	orchestrator := recommendations.NewOrchestrator(
		source,
		scoring.New(interactions.NewDetector(catalog)),
		nil,
	)
	return fn(orchestrator)
}

func newRecommendCommand(opts *options) *cobra.Command {
	var (
		userID  int64
		limit   int
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank interventions for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withOrchestrator(cmd.Context(), opts, func(o *recommendations.Orchestrator) error {
				items, err := o.Recommend(cmd.Context(), userID, limit, exclude)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), recommendations.Personalized{
					UserID:          userID,
					Recommendations: items,
					Total:           len(items),
				})
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().IntVarP(&limit, "limit", "n", recommendations.DefaultLimit, "max recommendations")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "categories to skip")
	cmd.MarkFlagRequired("user")

	return cmd
}

func newExplainCommand(opts *options) *cobra.Command {
	var userID, interventionID int64

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain one intervention's score for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withOrchestrator(cmd.Context(), opts, func(o *recommendations.Orchestrator) error {
				exp, err := o.Explain(cmd.Context(), interventionID, userID)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), exp)
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().Int64Var(&interventionID, "intervention", 0, "intervention ID")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("intervention")

	return cmd
}

func newCompareCommand(opts *options) *cobra.Command {
	var (
		userID int64
		ids    string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Explain several interventions side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := recommendations.ParseIDList(ids)
			if err != nil {
				return err
			}
			return withOrchestrator(cmd.Context(), opts, func(o *recommendations.Orchestrator) error {
				result, err := o.Compare(cmd.Context(), userID, parsed)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated intervention IDs")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("ids")

	return cmd
}
