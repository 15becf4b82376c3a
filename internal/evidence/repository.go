package evidence

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an evidence repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "evidence"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Evidence], error) {
	page.Normalize(r.pagination)

	sort := defaultSort
	if filters.MinQuality != nil {
		sort = qualitySort
	}

	qb := query.
		NewBuilder(projection, sort).
		WhereSearch(page.Search, "Citation", "PubmedID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanEvidence)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	return result, nil
}

func (r *repo) ForInterventions(ctx context.Context, ids ...int64) ([]Evidence, error) {
	if len(ids) == 0 {
		return []Evidence{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	q, qargs := query.
		NewBuilder(projection, query.SortField{Field: "InterventionID"}, query.SortField{Field: "ID"}).
		WhereIn("InterventionID", args).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, qargs, scanEvidence)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Evidence, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEvidence)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Evidence, error) {
	q := `
		INSERT INTO evidence(intervention_id, source_type, pubmed_id, citation, sample_size,
			duration_days, effect_size, outcomes, quality_score, evidence_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, intervention_id, source_type, pubmed_id, citation, sample_size,
			duration_days, effect_size, outcomes, quality_score, evidence_level, created_at`

	args := []any{
		cmd.InterventionID,
		cmd.SourceType,
		cmd.PubmedID,
		cmd.Citation,
		cmd.SampleSize,
		cmd.DurationDays,
		cmd.EffectSize,
		cmd.Outcomes,
		cmd.QualityScore,
		cmd.EvidenceLevel,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evidence, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEvidence)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrInterventionNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("evidence created", "id", e.ID, "intervention_id", e.InterventionID, "source_type", e.SourceType)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM evidence WHERE id = $1", id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("evidence deleted", "id", id)
	return nil
}
