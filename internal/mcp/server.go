// Package mcp exposes the training analytics to assistants as MCP tools and
// resources.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronTracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronTracker strength training server. Query the weekly dashboard, training volume per muscle, equipment usage, per-exercise progression, squat/bench/deadlift strength relative to body weight and coaching insights. Labels and muscle names are in French."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetDashboard, Handler: h.getDashboard},
		server.ServerTool{Tool: toolGetOverview, Handler: h.getOverview},
		server.ServerTool{Tool: toolGetWeeklyVolume, Handler: h.getWeeklyVolume},
		server.ServerTool{Tool: toolGetEquipmentDistribution, Handler: h.getEquipmentDistribution},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseSeries, Handler: h.getExerciseSeries},
		server.ServerTool{Tool: toolGetSBDRadar, Handler: h.getSBDRadar},
		server.ServerTool{Tool: toolGetInsights, Handler: h.getInsights},
		server.ServerTool{Tool: toolPlateBreakdown, Handler: h.plateBreakdown},
		server.ServerTool{Tool: toolEstimateOneRepMax, Handler: h.estimateOneRepMax},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDashboard, Handler: h.dashboard},
		server.ServerResource{Resource: resLibrary, Handler: h.library},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resDashboard = mcp.NewResource(
	"irontracker://dashboard",
	"Dashboard",
	mcp.WithResourceDescription("Current week volume per day, weekly working sets, sessions this month, new record flag and insights"),
	mcp.WithMIMEType("application/json"),
)

var resLibrary = mcp.NewResource(
	"irontracker://library",
	"Exercise Library",
	mcp.WithResourceDescription("All exercises with type, primary muscle and equipment code"),
	mcp.WithMIMEType("application/json"),
)
