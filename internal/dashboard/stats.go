// Package dashboard computes the home screen snapshot and keeps the current
// one in a process-wide cache.
package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/claude/irontracker/internal/insights"
	"github.com/claude/irontracker/internal/models"
)

// dayLabels are Monday first.
var dayLabels = [7]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// DayVolume is the working set count of one day of the current week.
type DayVolume struct {
	Day  string    `json:"day"`
	Date time.Time `json:"date"`
	Sets int       `json:"sets"`
}

// Stats is the derived dashboard snapshot.
type Stats struct {
	VolumeData        [7]DayVolume       `json:"volume_data"`
	WeeklySets        int                `json:"weekly_sets"`
	Insights          []insights.Insight `json:"insights"`
	MonthSessionCount int                `json:"month_session_count"`
	HasNewPR          bool               `json:"has_new_pr"`
	LastUpdated       time.Time          `json:"last_updated"`
	Revision          uuid.UUID          `json:"revision"`
}

// Compute derives a fresh snapshot. It reads its inputs only.
func Compute(history []models.WorkoutSession, lib *models.Library, lastSeen *time.Time, now time.Time) Stats {
	loc := now.Location()
	monday := StartOfWeek(now)
	nextMonday := monday.AddDate(0, 0, 7)

	st := Stats{
		Insights:    insights.Generate(history, lib, now),
		HasNewPR:    insights.DetectNewPR(history, lib, lastSeen),
		LastUpdated: now,
		Revision:    uuid.New(),
	}
	for i := range st.VolumeData {
		st.VolumeData[i] = DayVolume{Day: dayLabels[i], Date: monday.AddDate(0, 0, i)}
	}

	for _, s := range history {
		start := s.StartTime.In(loc)
		if start.Year() == now.Year() && start.Month() == now.Month() {
			st.MonthSessionCount++
		}
		if start.Before(monday) || !start.Before(nextMonday) {
			continue
		}
		n := s.WorkingSetCount()
		st.VolumeData[weekdayIndex(start)].Sets += n
		st.WeeklySets += n
	}
	return st
}

// StartOfWeek returns local midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -weekdayIndex(t))
}

func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
