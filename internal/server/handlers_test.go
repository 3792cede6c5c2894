package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claude/irontracker/internal/analytics"
	"github.com/claude/irontracker/internal/dashboard"
	"github.com/claude/irontracker/internal/insights"
	"github.com/claude/irontracker/internal/metrics"
	"github.com/claude/irontracker/internal/models"
	"github.com/claude/irontracker/internal/storage"
	"github.com/claude/irontracker/internal/tracker"
)

const testAPIKey = "test-key"

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *tracker.Service) {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := metrics.New()
	svc := tracker.New(store, dashboard.NewCache(slog.Default(), m), slog.Default())
	svc.SetClock(func() time.Time { return testNow })
	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, ex := range []models.LibraryExercise{
		{ID: 1, Name: "Développé couché", Type: models.TypeCompound, Muscle: models.MuscleChest, Equipment: "BB"},
		{ID: 10, Name: "Tirage", Type: models.TypeCompound, Muscle: models.MuscleBack, Equipment: "CB"},
	} {
		if err := svc.SaveExercise(ctx, ex); err != nil {
			t.Fatal(err)
		}
	}
	return New(svc, m, 1, testAPIKey, slog.Default()), svc
}

func do(t *testing.T, s *Server, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if auth {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
}

const pushSession = `{
  "start_time": "2026-03-18T08:00:00Z",
  "session_name": "Push",
  "fatigue": "4",
  "exercises": [
    {"exercise_id": 1, "sets": [
      {"weight": "100", "reps": "5", "done": true},
      {"weight": "100", "reps": "5", "done": true},
      {"weight": "60", "reps": "10", "done": true, "is_warmup": true}
    ]}
  ]
}`

// TestHealth verifies the liveness endpoint.
func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := do(t, s, http.MethodGet, "/healthz", "", false); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestMutationsRequireAPIKey verifies write routes are protected while reads are open.
func TestMutationsRequireAPIKey(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := do(t, s, http.MethodPost, "/api/v1/sessions", pushSession, false); rec.Code != http.StatusUnauthorized {
		t.Errorf("POST without key = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/dashboard/reindex", "", false); rec.Code != http.StatusUnauthorized {
		t.Errorf("reindex without key = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/dashboard", "", false); rec.Code != http.StatusOK {
		t.Errorf("GET dashboard = %d, want 200", rec.Code)
	}
}

// TestSaveSessionUpdatesDashboard verifies the dashboard served right after a
// write already reflects it.
func TestSaveSessionUpdatesDashboard(t *testing.T) {
	s, _ := newTestServer(t)

	var empty dashboard.Stats
	decode(t, do(t, s, http.MethodGet, "/api/v1/dashboard", "", false), &empty)
	if empty.WeeklySets != 0 || empty.HasNewPR || empty.Insights[0].ID != "welcome" {
		t.Fatalf("initial dashboard = %+v", empty)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/sessions", pushSession, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved models.WorkoutSession
	decode(t, rec, &saved)
	if saved.ID == 0 || saved.Mode != models.ModeLog {
		t.Errorf("saved = %+v, want id and default mode", saved)
	}

	var st dashboard.Stats
	decode(t, do(t, s, http.MethodGet, "/api/v1/dashboard", "", false), &st)
	if st.WeeklySets != 2 {
		t.Errorf("weekly_sets = %d, want 2", st.WeeklySets)
	}
	if st.VolumeData[2].Sets != 2 {
		t.Errorf("Wednesday sets = %d, want 2", st.VolumeData[2].Sets)
	}
	if st.Revision == empty.Revision {
		t.Error("revision unchanged after a write")
	}
}

// TestSaveSessionInvalid verifies malformed bodies are rejected.
func TestSaveSessionInvalid(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := do(t, s, http.MethodPost, "/api/v1/sessions", "{", true); rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/sessions", `{"mode":"sprint"}`, true); rec.Code != http.StatusBadRequest {
		t.Errorf("bad mode = %d, want 400", rec.Code)
	}
}

// TestDeleteSessionNotFound verifies unknown and malformed ids.
func TestDeleteSessionNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := do(t, s, http.MethodDelete, "/api/v1/sessions/12345", "", true); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/v1/sessions/abc", "", true); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id = %d, want 400", rec.Code)
	}
}

// TestRecordsSeenFlow verifies a PR is reported, named, and cleared once seen.
func TestRecordsSeenFlow(t *testing.T) {
	s, svc := newTestServer(t)
	ctx := context.Background()
	single := func(id int64, at time.Time, weight string) models.WorkoutSession {
		return models.WorkoutSession{ID: id, StartTime: at, Exercises: []models.ExerciseInstance{{
			ExerciseID: 1, Sets: []models.SetRecord{{Weight: weight, Reps: "1", Done: true}},
		}}}
	}
	svc.SaveSession(ctx, single(1, testNow.AddDate(0, 0, -7), "100"))
	svc.SaveSession(ctx, single(2, testNow.Add(-time.Hour), "110"))

	var pr insights.PR
	decode(t, do(t, s, http.MethodGet, "/api/v1/records/latest", "", false), &pr)
	if pr.ExerciseID != 1 || pr.Name != "Développé couché" || pr.Current != 110 {
		t.Errorf("latest record = %+v", pr)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/records/seen", `{"seen_at":"2026-03-18T12:00:00Z"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("records/seen = %d", rec.Code)
	}
	var st dashboard.Stats
	decode(t, rec, &st)
	if st.HasNewPR {
		t.Error("has_new_pr still true after records seen")
	}
	rec = do(t, s, http.MethodGet, "/api/v1/records/latest", "", false)
	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Errorf("latest record after seen = %s, want null", body)
	}
}

// TestAnalyticsResponseCache verifies repeated reads are served from the cache
// and a write invalidates them through the revision.
func TestAnalyticsResponseCache(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/v1/sessions", pushSession, true)

	path := "/api/v1/analytics/overview?period=7d"
	first := do(t, s, http.MethodGet, path, "", false)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	second := do(t, s, http.MethodGet, path, "", false)
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs: %s vs %s", first.Body.String(), second.Body.String())
	}

	do(t, s, http.MethodPost, "/api/v1/dashboard/reindex", "", true)
	third := do(t, s, http.MethodGet, path, "", false)
	if got := third.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("after reindex X-Cache = %q, want MISS", got)
	}
	var o analytics.Overview
	decode(t, third, &o)
	if o.Sessions != 1 || o.Sets != 2 || o.TonnageKg != 1000 {
		t.Errorf("overview = %+v", o)
	}
}

// TestAnalyticsEndpoints exercises every analytics view once.
func TestAnalyticsEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/v1/sessions", pushSession, true)

	var rows []analytics.VolumeRow
	decode(t, do(t, s, http.MethodGet, "/api/v1/analytics/weekly-volume?period=7d&group=muscle", "", false), &rows)
	if len(rows) == 0 || rows[0].Key != string(models.MuscleChest) || rows[0].AvgSets != 2 {
		t.Errorf("weekly volume = %+v", rows)
	}

	var eq []analytics.EquipmentShare
	decode(t, do(t, s, http.MethodGet, "/api/v1/analytics/equipment", "", false), &eq)
	if len(eq) != 1 || eq[0].Category != models.EquipBarbell {
		t.Errorf("equipment = %+v", eq)
	}

	var pts []analytics.SeriesPoint
	decode(t, do(t, s, http.MethodGet, "/api/v1/analytics/exercises/1/series?metric=tonnage", "", false), &pts)
	if len(pts) != 1 || pts[0].Value != 1000 {
		t.Errorf("series = %+v", pts)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/analytics/exercises/x/series", "", false); rec.Code != http.StatusBadRequest {
		t.Errorf("bad exercise id = %d, want 400", rec.Code)
	}

	var vf []analytics.VolumeFatiguePoint
	decode(t, do(t, s, http.MethodGet, "/api/v1/analytics/volume-fatigue?period=7d", "", false), &vf)
	if len(vf) != 1 || vf[0].Fatigue != 4 {
		t.Errorf("volume-fatigue = %+v", vf)
	}

	var radar insights.Radar
	decode(t, do(t, s, http.MethodGet, "/api/v1/analytics/sbd", "", false), &radar)
	if len(radar.Lifts) != 3 || radar.Lifts[1].Best == 0 {
		t.Errorf("radar = %+v", radar)
	}

	var opts []analytics.ExerciseOption
	decode(t, do(t, s, http.MethodGet, "/api/v1/analytics/exercises", "", false), &opts)
	if len(opts) != 1 || opts[0].ID != 1 {
		t.Errorf("options = %+v", opts)
	}
}

// TestLibraryEndpoints verifies library upserts and listing.
func TestLibraryEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPut, "/api/v1/library/30", `{"name":"Soulevé de terre","type":"Polyarticulaire","muscle":"Dos","equipment":"BB"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT library = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, s, http.MethodPut, "/api/v1/library/31", `{"type":"Isolation"}`, true); rec.Code != http.StatusBadRequest {
		t.Errorf("PUT without name = %d, want 400", rec.Code)
	}

	var lib []models.LibraryExercise
	decode(t, do(t, s, http.MethodGet, "/api/v1/library", "", false), &lib)
	if len(lib) != 3 || lib[2].ID != 30 {
		t.Errorf("library = %+v", lib)
	}
}

// TestTools verifies the plate and 1RM calculators.
func TestTools(t *testing.T) {
	s, _ := newTestServer(t)

	var plates struct {
		PerSide []float64 `json:"per_side"`
	}
	decode(t, do(t, s, http.MethodGet, "/api/v1/tools/plates?target=142,5", "", false), &plates)
	want := []float64{20, 20, 20, 1.25}
	if len(plates.PerSide) != len(want) {
		t.Fatalf("per_side = %v, want %v", plates.PerSide, want)
	}
	for i := range want {
		if plates.PerSide[i] != want[i] {
			t.Errorf("per_side[%d] = %v, want %v", i, plates.PerSide[i], want[i])
		}
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/tools/plates", "", false); rec.Code != http.StatusBadRequest {
		t.Errorf("missing target = %d, want 400", rec.Code)
	}

	var orm map[string]float64
	decode(t, do(t, s, http.MethodGet, "/api/v1/tools/one-rep-max?weight=100&reps=10", "", false), &orm)
	if orm["one_rep_max"] != 135 {
		t.Errorf("one_rep_max = %v, want 135", orm["one_rep_max"])
	}
}

// TestMetricsEndpoint verifies Prometheus exposition is mounted.
func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodGet, "/api/v1/dashboard", "", false)
	rec := do(t, s, http.MethodGet, "/metrics", "", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "irontracker_dashboard_recomputes_total") {
		t.Errorf("metrics = %d, body lacks recompute counter", rec.Code)
	}
}

// TestRecordsSeenDefaultsToServiceClock verifies an empty body acknowledges
// records at the tracker's time, not the wall clock.
func TestRecordsSeenDefaultsToServiceClock(t *testing.T) {
	s, svc := newTestServer(t)
	ctx := context.Background()
	// far enough ahead that the wall clock would leave the record unseen
	future := time.Date(2099, 6, 10, 18, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return future })

	single := func(id int64, at time.Time, weight string) models.WorkoutSession {
		return models.WorkoutSession{ID: id, StartTime: at, Exercises: []models.ExerciseInstance{{
			ExerciseID: 1, Sets: []models.SetRecord{{Weight: weight, Reps: "1", Done: true}},
		}}}
	}
	svc.SaveSession(ctx, single(1, future.AddDate(0, 0, -7), "100"))
	svc.SaveSession(ctx, single(2, future.Add(-time.Hour), "105"))
	if !svc.Stats().HasNewPR {
		t.Fatal("has_new_pr = false before acknowledgement")
	}

	rec := do(t, s, http.MethodPost, "/api/v1/records/seen", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("records/seen = %d: %s", rec.Code, rec.Body.String())
	}
	var st dashboard.Stats
	decode(t, rec, &st)
	if st.HasNewPR {
		t.Error("has_new_pr still true, acknowledgement used the wall clock")
	}
}
