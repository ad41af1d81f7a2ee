package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

// ComputeStreak returns the number of consecutive calendar days, ending today
// or yesterday, that contain at least one activity. A user who was inactive
// both today and yesterday has no current streak, however long their history.
func ComputeStreak(records []domain.ActivityRecord, now time.Time) (int, error) {
	summary, err := ComputeStreaks(records, now)
	if err != nil {
		return 0, err
	}
	return summary.Current, nil
}

// ComputeStreaks returns the current streak together with the longest run of
// consecutive active days found in records.
func ComputeStreaks(records []domain.ActivityRecord, now time.Time) (domain.StreakSummary, error) {
	loc := now.Location()

	activeDays := make(map[string]bool, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return domain.StreakSummary{}, fmt.Errorf("record %d: %w", i, err)
		}
		activeDays[dayKey(r.OccurredAt, loc)] = true
	}

	if len(activeDays) == 0 {
		return domain.StreakSummary{}, nil
	}

	current := currentStreak(activeDays, now)
	longest := longestStreak(activeDays, loc)
	if current > longest {
		longest = current
	}

	return domain.StreakSummary{Current: current, Longest: longest}, nil
}

func currentStreak(activeDays map[string]bool, now time.Time) int {
	cursor := StartOfDay(now)
	if !activeDays[cursor.Format(dayLayout)] {
		cursor = cursor.AddDate(0, 0, -1)
		if !activeDays[cursor.Format(dayLayout)] {
			return 0
		}
	}

	streak := 0
	for activeDays[cursor.Format(dayLayout)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func longestStreak(activeDays map[string]bool, loc *time.Location) int {
	days := make([]time.Time, 0, len(activeDays))
	for key := range activeDays {
		d, err := time.ParseInLocation(dayLayout, key, loc)
		if err != nil {
			continue
		}
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
