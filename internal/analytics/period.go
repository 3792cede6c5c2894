package analytics

import "time"

// Period is the UI-selected time window.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
)

// ParsePeriod maps the query value to a Period, defaulting to 30d.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case Period7d, Period30d, Period90d:
		return Period(s)
	default:
		return Period30d
	}
}

// Days returns the window length in days.
func (p Period) Days() int {
	switch p {
	case Period7d:
		return 7
	case Period90d:
		return 90
	default:
		return 30
	}
}

// Weeks returns the divisor used to turn window totals into weekly averages.
func (p Period) Weeks() float64 {
	switch p {
	case Period7d:
		return 1
	case Period90d:
		return 12
	default:
		return 4
	}
}

// Since returns the inclusive lower bound of the window ending at now.
func (p Period) Since(now time.Time) time.Time {
	return now.Add(-time.Duration(p.Days()) * 24 * time.Hour)
}
