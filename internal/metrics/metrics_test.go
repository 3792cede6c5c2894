package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestObserveRecompute verifies counters and gauges move on a recompute.
func TestObserveRecompute(t *testing.T) {
	m := New()
	m.ObserveRecompute("update", 2*time.Millisecond, 12, 30)
	m.ObserveRecompute("reindex", time.Millisecond, 12, 31)

	if got := testutil.ToFloat64(m.CounterRecomputes.WithLabelValues("update")); got != 1 {
		t.Errorf("update recomputes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.GaugeWeeklySets); got != 31 {
		t.Errorf("weekly sets gauge = %v, want 31", got)
	}
}

// TestObserveRequest verifies the request counter labels.
func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/v1/dashboard", 0, time.Millisecond)
	if got := testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/api/v1/dashboard", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

// TestNilManager verifies a nil manager is a no-op.
func TestNilManager(t *testing.T) {
	var m *Manager
	m.ObserveRecompute("update", time.Millisecond, 1, 1)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
	m.ObserveCacheLookup(true)
}
