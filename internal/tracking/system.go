package tracking

import (
	"context"
	"time"

	"github.com/JaimeStill/longevity/pkg/pagination"
)

// System defines the public contract for tracking operations.
type System interface {
	Handler() *Handler

	Start(ctx context.Context, cmd StartCommand) (*Tracking, error)
	Find(ctx context.Context, id int64) (*Tracking, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (*Tracking, error)
	ListByUser(ctx context.Context, userID int64, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Tracking], error)

	AddMeasurement(ctx context.Context, cmd MeasurementCommand) (*Measurement, error)
	// Measurements returns a tracking record's readings, newest first.
	Measurements(ctx context.Context, trackingID int64) ([]Measurement, error)
	MeasurementsByUser(ctx context.Context, userID int64, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Measurement], error)
	Progress(ctx context.Context, trackingID int64) (map[string]MetricProgress, error)

	CreateGoal(ctx context.Context, cmd GoalCommand) (*Goal, error)
	UpdateGoal(ctx context.Context, id int64, cmd GoalUpdateCommand) (*Goal, error)
	GoalsByUser(ctx context.Context, userID int64) ([]Goal, error)
	// ActiveGoals returns goals not yet achieved or missed, nearest target first.
	ActiveGoals(ctx context.Context, userID int64) ([]Goal, error)

	AddBiomarker(ctx context.Context, cmd BiomarkerCommand) (*Biomarker, error)
	BiomarkersByUser(ctx context.Context, userID int64, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Biomarker], error)
	// Trend returns readings of name taken since now minus days, oldest first.
	Trend(ctx context.Context, userID int64, name string, days int, now time.Time) (*Trend, error)
}
