package mcp

import (
	"context"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/dashboard"
	"github.com/claude/irontracker/internal/insights"
	"github.com/claude/irontracker/internal/models"
	"github.com/claude/irontracker/internal/tracker"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process
// tracker) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Dashboard(ctx context.Context) (dashboard.Stats, error)
	Overview(ctx context.Context, p analytics.Period) (analytics.Overview, error)
	WeeklyVolume(ctx context.Context, p analytics.Period, mode analytics.GroupMode) ([]analytics.VolumeRow, error)
	EquipmentDistribution(ctx context.Context, p analytics.Period) ([]analytics.EquipmentShare, error)
	ExerciseOptions(ctx context.Context) ([]analytics.ExerciseOption, error)
	ExerciseSeries(ctx context.Context, p analytics.Period, exerciseID int, metric analytics.Metric) ([]analytics.SeriesPoint, error)
	SBDRadar(ctx context.Context) (insights.Radar, error)
	Insights(ctx context.Context) ([]insights.Insight, error)
	Library(ctx context.Context) ([]models.LibraryExercise, error)
}

// Local serves tools straight from a loaded tracker.
type Local struct {
	svc *tracker.Service
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps svc. svc must already be loaded.
func NewLocal(svc *tracker.Service) *Local {
	return &Local{svc: svc}
}

func (l *Local) Dashboard(context.Context) (dashboard.Stats, error) {
	return l.svc.Stats(), nil
}

func (l *Local) Overview(_ context.Context, p analytics.Period) (analytics.Overview, error) {
	return l.svc.Aggregator().Overview(p), nil
}

func (l *Local) WeeklyVolume(_ context.Context, p analytics.Period, mode analytics.GroupMode) ([]analytics.VolumeRow, error) {
	return l.svc.Aggregator().WeeklyVolume(p, mode), nil
}

func (l *Local) EquipmentDistribution(_ context.Context, p analytics.Period) ([]analytics.EquipmentShare, error) {
	return l.svc.Aggregator().EquipmentDistribution(p), nil
}

func (l *Local) ExerciseOptions(context.Context) ([]analytics.ExerciseOption, error) {
	return l.svc.Aggregator().ExerciseOptions(), nil
}

func (l *Local) ExerciseSeries(_ context.Context, p analytics.Period, exerciseID int, metric analytics.Metric) ([]analytics.SeriesPoint, error) {
	return l.svc.Aggregator().ExerciseSeries(p, exerciseID, metric), nil
}

func (l *Local) SBDRadar(context.Context) (insights.Radar, error) {
	return l.svc.Radar(), nil
}

func (l *Local) Insights(context.Context) ([]insights.Insight, error) {
	return l.svc.Stats().Insights, nil
}

func (l *Local) Library(context.Context) ([]models.LibraryExercise, error) {
	return l.svc.Library().All(), nil
}
