package recommendations

import (
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "recommendations", "r").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("intervention_id", "InterventionID").
	Project("priority", "Priority").
	Project("reasoning", "Reasoning").
	Project("risk_score", "RiskScore").
	Project("benefit_score", "BenefitScore").
	Project("net_benefit", "NetBenefit").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "NetBenefit", Descending: true},
	{Field: "ID"},
}

func scanRecommendation(s repository.Scanner) (Recommendation, error) {
	var r Recommendation
	err := s.Scan(
		&r.ID,
		&r.UserID,
		&r.InterventionID,
		&r.Priority,
		&r.Reasoning,
		&r.RiskScore,
		&r.BenefitScore,
		&r.NetBenefit,
		&r.CreatedAt,
	)
	return r, err
}
