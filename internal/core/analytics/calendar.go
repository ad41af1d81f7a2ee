// Package analytics holds the read-only computations behind the dashboard:
// the activity streak and the time-windowed rollups. Every function here is
// pure; callers pass "now" explicitly and its location defines day boundaries.
package analytics

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// StartOfDay returns local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns local midnight of the most recent weekStart on or before t.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// dayKey buckets an instant into its calendar day as seen from loc.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// ParseWeekday accepts English day names ("sunday", "Mon") for week-start configuration.
func ParseWeekday(s string) (time.Weekday, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if len(needle) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.HasPrefix(strings.ToLower(d.String()), needle) {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
