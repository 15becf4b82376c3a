package tracking

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var trackingRefs = map[string]error{
	"intervention_tracking_user_id_fkey":         ErrUserNotFound,
	"intervention_tracking_intervention_id_fkey": ErrInterventionNotFound,
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tracking repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tracking"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Start(ctx context.Context, cmd StartCommand) (*Tracking, error) {
	q := `
		INSERT INTO intervention_tracking(user_id, intervention_id, start_date, status, notes)
		VALUES ($1, $2, NOW(), $3, $4)
		RETURNING id, user_id, intervention_id, start_date, end_date, status,
			adherence_rate, notes, created_at, updated_at`

	args := []any{cmd.UserID, cmd.InterventionID, StatusActive, cmd.Notes}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tracking, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTracking)
	})

	if err != nil {
		return nil, repository.MapConstraint(err, trackingRefs, ErrUserNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"tracking started",
		"id", t.ID,
		"user_id", t.UserID,
		"intervention_id", t.InterventionID,
	)
	return &t, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Tracking, error) {
	q, args := query.NewBuilder(trackingProjection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTracking)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Update(ctx context.Context, id int64, cmd UpdateCommand) (*Tracking, error) {
	q := `
		UPDATE intervention_tracking SET
			status = COALESCE($1, status),
			adherence_rate = COALESCE($2, adherence_rate),
			end_date = COALESCE($3, end_date),
			notes = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, user_id, intervention_id, start_date, end_date, status,
			adherence_rate, notes, created_at, updated_at`

	args := []any{cmd.Status, cmd.AdherenceRate, cmd.EndDate, cmd.Notes, id}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tracking, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTracking)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tracking updated", "id", t.ID, "status", t.Status)
	return &t, nil
}

func (r *repo) ListByUser(
	ctx context.Context,
	userID int64,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Tracking], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(trackingProjection, trackingSort...).
		WhereEquals("UserID", userID).
		WhereEquals("Status", filters.Status)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanTracking)
	if err != nil {
		return nil, fmt.Errorf("list tracking: %w", err)
	}
	return result, nil
}

func (r *repo) AddMeasurement(ctx context.Context, cmd MeasurementCommand) (*Measurement, error) {
	insert := `
		INSERT INTO effect_measurements(tracking_id, metric_name, metric_value, unit,
			measurement_date, baseline_value, notes)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()), $6, $7)
		RETURNING id`

	args := []any{
		cmd.TrackingID,
		cmd.MetricName,
		cmd.MetricValue,
		cmd.Unit,
		cmd.MeasurementDate,
		cmd.BaselineValue,
		cmd.Notes,
	}

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Measurement, error) {
		var id int64
		if err := tx.QueryRowContext(ctx, insert, args...).Scan(&id); err != nil {
			return Measurement{}, err
		}
		q, qargs := query.NewBuilder(measurementProjection).BuildSingle("ID", id)
		return repository.QueryOne(ctx, tx, q, qargs, scanMeasurement)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"measurement recorded",
		"id", m.ID,
		"tracking_id", m.TrackingID,
		"metric", m.MetricName,
	)
	return &m, nil
}

func (r *repo) Measurements(ctx context.Context, trackingID int64) ([]Measurement, error) {
	return r.trackingMeasurements(ctx, trackingID, measurementSort)
}

func (r *repo) MeasurementsByUser(
	ctx context.Context,
	userID int64,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Measurement], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(measurementProjection, measurementSort...).
		WhereEquals("UserID", userID).
		WhereEquals("MetricName", filters.Metric)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanMeasurement)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return result, nil
}

func (r *repo) Progress(ctx context.Context, trackingID int64) (map[string]MetricProgress, error) {
	ms, err := r.trackingMeasurements(ctx, trackingID, chronological)
	if err != nil {
		return nil, err
	}
	return BuildProgress(ms), nil
}

func (r *repo) trackingMeasurements(ctx context.Context, trackingID int64, sort []query.SortField) ([]Measurement, error) {
	exists, err := repository.Exists(ctx, r.db, "SELECT 1 FROM intervention_tracking WHERE id = $1", trackingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	q, args := query.
		NewBuilder(measurementProjection, sort...).
		WhereEquals("TrackingID", trackingID).
		Build()

	ms, err := repository.QueryMany(ctx, r.db, q, args, scanMeasurement)
	if err != nil {
		return nil, fmt.Errorf("tracking measurements: %w", err)
	}
	return ms, nil
}

func (r *repo) CreateGoal(ctx context.Context, cmd GoalCommand) (*Goal, error) {
	q := `
		INSERT INTO health_goals(user_id, goal_type, target_value, unit, start_date,
			target_date, status, interventions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, goal_type, target_value, current_value, unit, start_date,
			target_date, status, interventions, created_at, updated_at`

	args := []any{
		cmd.UserID,
		cmd.GoalType,
		cmd.TargetValue,
		cmd.Unit,
		cmd.StartDate,
		cmd.TargetDate,
		GoalNotStarted,
		repository.Int64List(cmd.Interventions),
	}

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Goal, error) {
		return repository.QueryOne(ctx, tx, q, args, scanGoal)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrUserNotFound, ErrGoalNotFound, ErrDuplicate)
	}

	r.logger.Info("goal created", "id", g.ID, "user_id", g.UserID, "type", g.GoalType)
	return &g, nil
}

func (r *repo) UpdateGoal(ctx context.Context, id int64, cmd GoalUpdateCommand) (*Goal, error) {
	q := `
		UPDATE health_goals SET
			current_value = COALESCE($1, current_value),
			status = COALESCE($2, status),
			target_date = COALESCE($3, target_date),
			updated_at = NOW()
		WHERE id = $4
		RETURNING id, user_id, goal_type, target_value, current_value, unit, start_date,
			target_date, status, interventions, created_at, updated_at`

	args := []any{cmd.CurrentValue, cmd.Status, cmd.TargetDate, id}

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Goal, error) {
		return repository.QueryOne(ctx, tx, q, args, scanGoal)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrGoalNotFound, ErrDuplicate)
	}

	r.logger.Info("goal updated", "id", g.ID, "status", g.Status)
	return &g, nil
}

func (r *repo) GoalsByUser(ctx context.Context, userID int64) ([]Goal, error) {
	q, args := query.
		NewBuilder(goalProjection, goalSort...).
		WhereEquals("UserID", userID).
		Build()

	goals, err := repository.QueryMany(ctx, r.db, q, args, scanGoal)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (r *repo) ActiveGoals(ctx context.Context, userID int64) ([]Goal, error) {
	q, args := query.
		NewBuilder(goalProjection, activeGoalSort...).
		WhereEquals("UserID", userID).
		WhereIn("Status", []any{GoalNotStarted, GoalInProgress}).
		Build()

	goals, err := repository.QueryMany(ctx, r.db, q, args, scanGoal)
	if err != nil {
		return nil, fmt.Errorf("list active goals: %w", err)
	}
	return goals, nil
}

func (r *repo) AddBiomarker(ctx context.Context, cmd BiomarkerCommand) (*Biomarker, error) {
	q := `
		INSERT INTO biomarker_measurements(user_id, biomarker_name, value, unit,
			reference_range_low, reference_range_high, is_normal, measurement_date, source, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()), $9, $10)
		RETURNING id, user_id, biomarker_name, value, unit, reference_range_low,
			reference_range_high, is_normal, measurement_date, source, notes, created_at`

	args := []any{
		cmd.UserID,
		cmd.BiomarkerName,
		cmd.Value,
		cmd.Unit,
		cmd.ReferenceRangeLow,
		cmd.ReferenceRangeHigh,
		IsNormal(cmd.Value, cmd.ReferenceRangeLow, cmd.ReferenceRangeHigh),
		cmd.MeasurementDate,
		cmd.Source,
		cmd.Notes,
	}

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Biomarker, error) {
		return repository.QueryOne(ctx, tx, q, args, scanBiomarker)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrUserNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"biomarker recorded",
		"id", b.ID,
		"user_id", b.UserID,
		"biomarker", b.BiomarkerName,
		"is_normal", b.IsNormal,
	)
	return &b, nil
}

func (r *repo) BiomarkersByUser(
	ctx context.Context,
	userID int64,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Biomarker], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(biomarkerProjection, measurementSort...).
		WhereEquals("UserID", userID).
		WhereEquals("BiomarkerName", filters.Biomarker)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanBiomarker)
	if err != nil {
		return nil, fmt.Errorf("list biomarkers: %w", err)
	}
	return result, nil
}

func (r *repo) Trend(ctx context.Context, userID int64, name string, days int, now time.Time) (*Trend, error) {
	if name == "" {
		return nil, ErrBiomarkerRequired
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}

	since := now.AddDate(0, 0, -days)

	q, args := query.
		NewBuilder(biomarkerProjection, chronological...).
		WhereEquals("UserID", userID).
		WhereEquals("BiomarkerName", name).
		WhereAtLeast("MeasurementDate", since).
		Build()

	readings, err := repository.QueryMany(ctx, r.db, q, args, scanBiomarker)
	if err != nil {
		return nil, fmt.Errorf("biomarker trend: %w", err)
	}

	trend := BuildTrend(name, days, readings)
	return &trend, nil
}
