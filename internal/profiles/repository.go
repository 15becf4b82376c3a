package profiles

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

const profileColumns = `user_id, age, gender, weight, height, blood_pressure_systolic,
	blood_pressure_diastolic, heart_rate, medical_conditions, allergies,
	current_medications, family_history, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a profile repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "profiles"),
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
) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Username", "Email", "FullName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateUserCommand) (*User, error) {
	q := `
		INSERT INTO users(username, email, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, full_name, is_active, created_at, updated_at`

	args := []any{cmd.Username, strings.ToLower(cmd.Email), cmd.FullName}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, args, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user created", "id", u.ID, "username", u.Username)
	return &u, nil
}

func (r *repo) Profile(ctx context.Context, userID int64) (*HealthProfile, error) {
	q, args := query.NewBuilder(profileProjection).BuildSingle("UserID", userID)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, repository.MapError(err, ErrProfileNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) SaveProfile(ctx context.Context, userID int64, cmd ProfileCommand) (*HealthProfile, error) {
	q := `
		INSERT INTO health_profiles(user_id, age, gender, weight, height, blood_pressure_systolic,
			blood_pressure_diastolic, heart_rate, medical_conditions, allergies,
			current_medications, family_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			blood_pressure_systolic = EXCLUDED.blood_pressure_systolic,
			blood_pressure_diastolic = EXCLUDED.blood_pressure_diastolic,
			heart_rate = EXCLUDED.heart_rate,
			medical_conditions = EXCLUDED.medical_conditions,
			allergies = EXCLUDED.allergies,
			current_medications = EXCLUDED.current_medications,
			family_history = EXCLUDED.family_history,
			updated_at = NOW()
		RETURNING ` + profileColumns

	args := []any{
		userID,
		cmd.Age,
		cmd.Gender,
		cmd.Weight,
		cmd.Height,
		cmd.BloodPressureSystolic,
		cmd.BloodPressureDiastolic,
		cmd.HeartRate,
		cmd.MedicalConditions,
		cmd.Allergies,
		cmd.CurrentMedications,
		cmd.FamilyHistory,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (HealthProfile, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProfile)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrNotFound, ErrProfileNotFound, ErrDuplicate)
	}

	r.logger.Info("health profile saved", "user_id", userID)
	return &p, nil
}
