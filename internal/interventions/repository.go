package interventions

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

// New creates an intervention repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "interventions"),
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
) (*pagination.PageResult[Intervention], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Name", "NameEN", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanIntervention)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	return result, nil
}

func (r *repo) All(ctx context.Context) ([]Intervention, error) {
	q, args := query.
		NewBuilder(projection).
		OrderByFields([]query.SortField{{Field: "ID"}}).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanIntervention)
	if err != nil {
		return nil, fmt.Errorf("query interventions: %w", err)
	}
	return items, nil
}

func (r *repo) Top(ctx context.Context, limit int) ([]Intervention, error) {
	if limit <= 0 {
		return []Intervention{}, nil
	}

	q, args := query.
		NewBuilder(projection, defaultSort...).
		Limit(limit).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanIntervention)
	if err != nil {
		return nil, fmt.Errorf("query top interventions: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Intervention, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanIntervention)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Intervention, error) {
	q := `
		INSERT INTO interventions(name, name_en, description, category, mechanism, evidence_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, name_en, description, category, mechanism, evidence_level, created_at, updated_at`

	args := []any{cmd.Name, cmd.NameEN, cmd.Description, cmd.Category, cmd.Mechanism, cmd.EvidenceLevel}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Intervention, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIntervention)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("intervention created", "id", i.ID, "name", i.Name)
	return &i, nil
}

func (r *repo) Update(ctx context.Context, id int64, cmd UpdateCommand) (*Intervention, error) {
	q := `
		UPDATE interventions
		SET name = $1, name_en = $2, description = $3, category = $4, mechanism = $5,
			evidence_level = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, name, name_en, description, category, mechanism, evidence_level, created_at, updated_at`

	args := []any{cmd.Name, cmd.NameEN, cmd.Description, cmd.Category, cmd.Mechanism, cmd.EvidenceLevel, id}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Intervention, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIntervention)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("intervention updated", "id", i.ID, "name", i.Name)
	return &i, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	if err := r.deleteOne(ctx, "DELETE FROM interventions WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("intervention deleted", "id", id)
	return nil
}

func (r *repo) Risks(ctx context.Context, ids ...int64) ([]Risk, error) {
	if len(ids) == 0 {
		return []Risk{}, nil
	}

	q, args := query.
		NewBuilder(riskProjection, childSort...).
		WhereIn("InterventionID", idArgs(ids)).
		Build()

	risks, err := repository.QueryMany(ctx, r.db, q, args, scanRisk)
	if err != nil {
		return nil, fmt.Errorf("query risk factors: %w", err)
	}
	return risks, nil
}

func (r *repo) AddRisk(ctx context.Context, interventionID int64, cmd RiskCommand) (*Risk, error) {
	q := `
		INSERT INTO risk_factors(intervention_id, name, severity, frequency, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, intervention_id, name, severity, frequency, description, created_at`

	args := []any{interventionID, cmd.Name, cmd.Severity, cmd.Frequency, cmd.Description}

	risk, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Risk, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRisk)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrNotFound, ErrRiskNotFound, ErrDuplicate)
	}

	r.logger.Info("risk factor added", "id", risk.ID, "intervention_id", interventionID)
	return &risk, nil
}

func (r *repo) DeleteRisk(ctx context.Context, id int64) error {
	if err := r.deleteOne(ctx, "DELETE FROM risk_factors WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrRiskNotFound, ErrDuplicate)
	}

	r.logger.Info("risk factor deleted", "id", id)
	return nil
}

func (r *repo) Benefits(ctx context.Context, ids ...int64) ([]Benefit, error) {
	if len(ids) == 0 {
		return []Benefit{}, nil
	}

	q, args := query.
		NewBuilder(benefitProjection, childSort...).
		WhereIn("InterventionID", idArgs(ids)).
		Build()

	benefits, err := repository.QueryMany(ctx, r.db, q, args, scanBenefit)
	if err != nil {
		return nil, fmt.Errorf("query benefits: %w", err)
	}
	return benefits, nil
}

func (r *repo) AddBenefit(ctx context.Context, interventionID int64, cmd BenefitCommand) (*Benefit, error) {
	q := `
		INSERT INTO benefits(intervention_id, name, category, effect_size, confidence, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, intervention_id, name, category, effect_size, confidence, description, created_at`

	args := []any{interventionID, cmd.Name, cmd.Category, cmd.EffectSize, cmd.Confidence, cmd.Description}

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Benefit, error) {
		return repository.QueryOne(ctx, tx, q, args, scanBenefit)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrNotFound, ErrBenefitNotFound, ErrDuplicate)
	}

	r.logger.Info("benefit added", "id", b.ID, "intervention_id", interventionID)
	return &b, nil
}

func (r *repo) DeleteBenefit(ctx context.Context, id int64) error {
	if err := r.deleteOne(ctx, "DELETE FROM benefits WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrBenefitNotFound, ErrDuplicate)
	}

	r.logger.Info("benefit deleted", "id", id)
	return nil
}

func (r *repo) deleteOne(ctx context.Context, stmt string, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, stmt, id)
	})
	return err
}
