package recommendations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/JaimeStill/longevity/internal/interventions"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

const defaultPriority = 5

type repo struct {
	db            *sql.DB
	interventions interventions.System
	orchestrator  *Orchestrator
	logger        *slog.Logger
	pagination    pagination.Config
	defaultLimit  int
}

// New creates a recommendation repository implementing the System interface.
// defaultLimit applies to personalized requests that omit a limit.
func New(
	db *sql.DB,
	iv interventions.System,
	orchestrator *Orchestrator,
	logger *slog.Logger,
	pagination pagination.Config,
	defaultLimit int,
) System {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &repo{
		db:            db,
		interventions: iv,
		orchestrator:  orchestrator,
		logger:        logger.With("system", "recommendations"),
		pagination:    pagination,
		defaultLimit:  defaultLimit,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.defaultLimit)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Recommendation, error) {
	iv, err := r.interventions.Find(ctx, cmd.InterventionID)
	if errors.Is(err, interventions.ErrNotFound) {
		return nil, ErrInterventionNotFound
	}
	if err != nil {
		return nil, err
	}

	risks, err := r.interventions.Risks(ctx, iv.ID)
	if err != nil {
		return nil, err
	}
	benefits, err := r.interventions.Benefits(ctx, iv.ID)
	if err != nil {
		return nil, err
	}

	risk := RiskScore(risks)
	benefit := BenefitScore(iv.EvidenceLevel, benefits)

	priority := defaultPriority
	if cmd.Priority != nil {
		priority = *cmd.Priority
	}

	q := `
		INSERT INTO recommendations(user_id, intervention_id, priority, reasoning, risk_score, benefit_score, net_benefit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, intervention_id, priority, reasoning, risk_score, benefit_score, net_benefit, created_at`

	args := []any{cmd.UserID, iv.ID, priority, cmd.Reasoning, risk, benefit, benefit - risk}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Recommendation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRecommendation)
	})

	if err != nil {
		return nil, repository.MapReference(err, ErrUserNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"recommendation created",
		"id", rec.ID,
		"user_id", rec.UserID,
		"intervention_id", rec.InterventionID,
		"net_benefit", rec.NetBenefit,
	)
	return &rec, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Recommendation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecommendation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) ListByUser(
	ctx context.Context,
	userID int64,
	page pagination.PageRequest,
) (*pagination.PageResult[Recommendation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", userID)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanRecommendation)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return result, nil
}

func (r *repo) Top(ctx context.Context, limit int) ([]TopIntervention, error) {
	ivs, err := r.interventions.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(ivs) == 0 {
		return []TopIntervention{}, nil
	}

	ids := make([]int64, len(ivs))
	for i, iv := range ivs {
		ids[i] = iv.ID
	}

	risks, err := r.interventions.Risks(ctx, ids...)
	if err != nil {
		return nil, err
	}
	benefits, err := r.interventions.Benefits(ctx, ids...)
	if err != nil {
		return nil, err
	}

	return RankTop(ivs, risks, benefits), nil
}

func (r *repo) Personalized(ctx context.Context, userID int64, limit int, exclude []string) (*Personalized, error) {
	items, err := r.orchestrator.Recommend(ctx, userID, limit, exclude)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	return &Personalized{
		UserID:          userID,
		Recommendations: items,
		Total:           len(items),
	}, nil
}

func (r *repo) Explain(ctx context.Context, interventionID, userID int64) (*Explanation, error) {
	return r.orchestrator.Explain(ctx, interventionID, userID)
}

func (r *repo) Compare(ctx context.Context, userID int64, interventionIDs []int64) (*Comparison, error) {
	return r.orchestrator.Compare(ctx, userID, interventionIDs)
}

// RankTop scores ivs with the simplified risk and benefit measures and
// orders them by net benefit, highest first. Ties keep the order of ivs.
func RankTop(
	ivs []interventions.Intervention,
	risks []interventions.Risk,
	benefits []interventions.Benefit,
) []TopIntervention {
	riskBy := make(map[int64][]interventions.Risk)
	for _, rf := range risks {
		riskBy[rf.InterventionID] = append(riskBy[rf.InterventionID], rf)
	}
	benefitBy := make(map[int64][]interventions.Benefit)
	for _, b := range benefits {
		benefitBy[b.InterventionID] = append(benefitBy[b.InterventionID], b)
	}

	out := make([]TopIntervention, len(ivs))
	for i, iv := range ivs {
		risk := RiskScore(riskBy[iv.ID])
		benefit := BenefitScore(iv.EvidenceLevel, benefitBy[iv.ID])
		out[i] = TopIntervention{
			ID:            iv.ID,
			Name:          iv.Name,
			Category:      string(iv.Category),
			EvidenceLevel: iv.EvidenceLevel,
			RiskScore:     risk,
			BenefitScore:  benefit,
			NetBenefit:    benefit - risk,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetBenefit > out[j].NetBenefit
	})
	return out
}
