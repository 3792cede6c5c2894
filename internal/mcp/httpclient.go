package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/dashboard"
	"github.com/claude/irontracker/internal/insights"
	"github.com/claude/irontracker/internal/models"
)

// HTTPClient implements DataSource by calling the irontracker REST API.
// Used when the MCP binary runs next to the assistant (stdio) while the data
// lives on the server, typically reached over Tailscale.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get fetches path and decodes the JSON body into v.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func periodParams(p analytics.Period) url.Values {
	v := url.Values{}
	v.Set("period", string(p))
	return v
}

func (c *HTTPClient) Dashboard(ctx context.Context) (dashboard.Stats, error) {
	var st dashboard.Stats
	err := c.get(ctx, "/api/v1/dashboard", nil, &st)
	return st, err
}

func (c *HTTPClient) Overview(ctx context.Context, p analytics.Period) (analytics.Overview, error) {
	var o analytics.Overview
	err := c.get(ctx, "/api/v1/analytics/overview", periodParams(p), &o)
	return o, err
}

func (c *HTTPClient) WeeklyVolume(ctx context.Context, p analytics.Period, mode analytics.GroupMode) ([]analytics.VolumeRow, error) {
	params := periodParams(p)
	params.Set("group", string(mode))
	var rows []analytics.VolumeRow
	err := c.get(ctx, "/api/v1/analytics/weekly-volume", params, &rows)
	return rows, err
}

func (c *HTTPClient) EquipmentDistribution(ctx context.Context, p analytics.Period) ([]analytics.EquipmentShare, error) {
	var rows []analytics.EquipmentShare
	err := c.get(ctx, "/api/v1/analytics/equipment", periodParams(p), &rows)
	return rows, err
}

func (c *HTTPClient) ExerciseOptions(ctx context.Context) ([]analytics.ExerciseOption, error) {
	var opts []analytics.ExerciseOption
	err := c.get(ctx, "/api/v1/analytics/exercises", nil, &opts)
	return opts, err
}

func (c *HTTPClient) ExerciseSeries(ctx context.Context, p analytics.Period, exerciseID int, metric analytics.Metric) ([]analytics.SeriesPoint, error) {
	params := periodParams(p)
	params.Set("metric", string(metric))
	var pts []analytics.SeriesPoint
	path := "/api/v1/analytics/exercises/" + strconv.Itoa(exerciseID) + "/series"
	err := c.get(ctx, path, params, &pts)
	return pts, err
}

func (c *HTTPClient) SBDRadar(ctx context.Context) (insights.Radar, error) {
	var r insights.Radar
	err := c.get(ctx, "/api/v1/analytics/sbd", nil, &r)
	return r, err
}

func (c *HTTPClient) Insights(ctx context.Context) ([]insights.Insight, error) {
	var out []insights.Insight
	err := c.get(ctx, "/api/v1/analytics/insights", nil, &out)
	return out, err
}

func (c *HTTPClient) Library(ctx context.Context) ([]models.LibraryExercise, error) {
	var out []models.LibraryExercise
	err := c.get(ctx, "/api/v1/library", nil, &out)
	return out, err
}
