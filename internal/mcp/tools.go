package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/estimate"
)

// parsePeriod validates the optional period argument, defaulting to 30d.
func parsePeriod(s string) (analytics.Period, error) {
	switch analytics.Period(s) {
	case "":
		return analytics.Period30d, nil
	case analytics.Period7d, analytics.Period30d, analytics.Period90d:
		return analytics.Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// --- Tool definitions ---

var periodOption = mcp.WithString("period",
	mcp.Description("Window ending now. Defaults to 30d."),
	mcp.Enum("7d", "30d", "90d"),
)

var toolGetDashboard = mcp.NewTool("get_dashboard",
	mcp.WithDescription("Current dashboard: working sets per day of the current week (Monday first), weekly total, sessions this calendar month, whether an unseen personal record exists, and insights."),
)

var toolGetOverview = mcp.NewTool("get_overview",
	mcp.WithDescription("Session count, working set count and tonnage (kg) over a window. Warmup and unfinished sets are excluded; cardio, static and stretching exercises do not count toward tonnage."),
	periodOption,
)

var toolGetWeeklyVolume = mcp.NewTool("get_weekly_volume",
	mcp.WithDescription("Average working sets per week for each primary muscle or exercise type over a window. About 10 sets per muscle per week is the usual target."),
	periodOption,
	mcp.WithString("group", mcp.Description("Grouping. Defaults to muscle."), mcp.Enum("muscle", "type")),
)

var toolGetEquipmentDistribution = mcp.NewTool("get_equipment_distribution",
	mcp.WithDescription("Working sets per equipment category (barbell, dumbbell, machine, cable, bodyweight, other) over a window, most used first."),
	periodOption,
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("Every exercise that appears in the training history, with its id. Use the id with get_exercise_series."),
)

var toolGetExerciseSeries = mcp.NewTool("get_exercise_series",
	mcp.WithDescription("Per-session progression of one exercise. Strength metrics: 1rm (estimated), max (heaviest weight), volume (working sets), tonnage (weight x reps). For timed exercises max is the longest hold in seconds; for cardio it is the longest distance."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Library exercise id")),
	periodOption,
	mcp.WithString("metric", mcp.Description("Metric. Defaults to 1rm."), mcp.Enum("1rm", "max", "volume", "tonnage")),
)

var toolGetSBDRadar = mcp.NewTool("get_sbd_radar",
	mcp.WithDescription("Best estimated one-rep max for squat, bench press and deadlift over the whole history, as a ratio of body weight and a 0-100 score against elite ratios."),
)

var toolGetInsights = mcp.NewTool("get_insights",
	mcp.WithDescription("Coaching insights derived from the last 7 days: muscle balance warnings and volume targets, highest priority first."),
)

var toolPlateBreakdown = mcp.NewTool("plate_breakdown",
	mcp.WithDescription("Plates to load on each side of the bar to reach a target weight, largest first."),
	mcp.WithString("target", mcp.Required(), mcp.Description("Target total weight in kg (comma or dot decimals)")),
	mcp.WithString("bar", mcp.Description("Bar weight in kg. Defaults to 20.")),
)

var toolEstimateOneRepMax = mcp.NewTool("estimate_one_rep_max",
	mcp.WithDescription("Estimated one-rep max for a set, rounded to the kilogram."),
	mcp.WithString("weight", mcp.Required(), mcp.Description("Weight lifted in kg")),
	mcp.WithString("reps", mcp.Required(), mcp.Description("Repetitions performed")),
)

// --- Tool handlers ---

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.Dashboard(ctx)
	if err != nil {
		h.log.Error("mcp get_dashboard", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}

func (h *handlers) getOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := parsePeriod(req.GetString("period", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	o, err := h.ds.Overview(ctx, p)
	if err != nil {
		h.log.Error("mcp get_overview", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(o)
}

func (h *handlers) getWeeklyVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := parsePeriod(req.GetString("period", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode := analytics.ParseGroupMode(req.GetString("group", ""))
	rows, err := h.ds.WeeklyVolume(ctx, p, mode)
	if err != nil {
		h.log.Error("mcp get_weekly_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func (h *handlers) getEquipmentDistribution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := parsePeriod(req.GetString("period", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rows, err := h.ds.EquipmentDistribution(ctx, p)
	if err != nil {
		h.log.Error("mcp get_equipment_distribution", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if rows == nil {
		rows = []analytics.EquipmentShare{}
	}
	return jsonResult(rows)
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts, err := h.ds.ExerciseOptions(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(opts)
}

func (h *handlers) getExerciseSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return mcp.NewToolResultError("exercise_id must be an integer"), nil
	}
	p, err := parsePeriod(req.GetString("period", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	metric := analytics.ParseMetric(req.GetString("metric", ""))

	pts, err := h.ds.ExerciseSeries(ctx, p, id, metric)
	if err != nil {
		h.log.Error("mcp get_exercise_series", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(pts)
}

func (h *handlers) getSBDRadar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := h.ds.SBDRadar(ctx)
	if err != nil {
		h.log.Error("mcp get_sbd_radar", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(r)
}

func (h *handlers) getInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := h.ds.Insights(ctx)
	if err != nil {
		h.log.Error("mcp get_insights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(items)
}

func (h *handlers) plateBreakdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError("target parameter is required"), nil
	}
	target := estimate.ParseNumber(raw)
	if target <= 0 {
		return mcp.NewToolResultError("target must be a positive number"), nil
	}
	bar := estimate.DefaultBarWeight
	if v := req.GetString("bar", ""); v != "" {
		bar = estimate.ParseNumber(v)
	}
	return jsonResult(map[string]any{
		"target":   target,
		"bar":      bar,
		"per_side": estimate.Plates(target, bar),
	})
}

func (h *handlers) estimateOneRepMax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireString("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireString("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	return jsonResult(map[string]float64{
		"weight":      estimate.ParseNumber(weight),
		"reps":        estimate.ParseNumber(reps),
		"one_rep_max": estimate.Estimate1RM(weight, reps),
	})
}
