package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

const (
	DefaultWeeklyGoal = 5

	weightWindowDays      = 30
	consistencyWindow     = 7
	feedCandidatesPerKind = 10
	feedSize              = 5

	weightLabelLayout = "Jan 2"
	startWeightLabel  = "Start"
)

// SnapshotInput is everything the dashboard needs, already fetched by the caller.
type SnapshotInput struct {
	Workouts     []*domain.Workout
	Meals        []*domain.Meal
	Measurements []*domain.Measurement
	Profile      *domain.Profile
	Goal         *domain.Goal

	// Now fixes both the reference instant and the time zone of every day boundary.
	Now time.Time

	WeekStart time.Weekday

	// DefaultWeeklyGoal is used when the profile has no weekly goal. Zero means DefaultWeeklyGoal.
	DefaultWeeklyGoal int
}

// ComputeSnapshot derives every dashboard metric from in. It never returns a
// partially filled snapshot: malformed input yields domain.ErrInvalidRecord.
func ComputeSnapshot(in SnapshotInput) (*domain.DashboardSnapshot, error) {
	if in.Now.IsZero() {
		return nil, errors.New("snapshot: reference time is required")
	}
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	now := in.Now
	today := StartOfDay(now)

	activity := append(domain.ActivityFromWorkouts(in.Workouts), domain.ActivityFromMeals(in.Meals)...)
	streaks, err := ComputeStreaks(activity, now)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	longest := streaks.Longest
	if in.Profile != nil && in.Profile.LongestStreak > longest {
		longest = in.Profile.LongestStreak
	}

	weekly := countCompletedWorkouts(in.Workouts, StartOfWeek(now, in.WeekStart), now)
	goal := weeklyGoal(in.Profile, in.DefaultWeeklyGoal)

	return &domain.DashboardSnapshot{
		StreakDays:                streaks.Current,
		LongestStreakDays:         longest,
		TotalWorkoutsAllTime:      len(in.Workouts),
		WorkoutsThisWeek:          weekly,
		CaloriesToday:             sumCalories(in.Meals, today, now),
		WeeklyGoal:                goal,
		WeeklyGoalProgressPercent: progressPercent(weekly, goal),
		WeightSeries:              weightSeries(in.Measurements, in.Profile, now),
		ConsistencySeries:         consistencySeries(in.Workouts, now),
		RecentActivity:            recentActivity(in.Workouts, in.Meals),
		Goal:                      goalSummary(in.Goal, in.Measurements, in.Profile),
		GeneratedAt:               now,
	}, nil
}

func validateInput(in SnapshotInput) error {
	for i, w := range in.Workouts {
		if w == nil || w.CreatedAt.IsZero() {
			return fmt.Errorf("%w: workout %d has no timestamp", domain.ErrInvalidRecord, i)
		}
	}
	for i, m := range in.Meals {
		if m == nil || m.CreatedAt.IsZero() {
			return fmt.Errorf("%w: meal %d has no timestamp", domain.ErrInvalidRecord, i)
		}
		if m.ProteinG != nil && !finite(*m.ProteinG) {
			return fmt.Errorf("%w: meal %d has a non-finite protein value", domain.ErrInvalidRecord, i)
		}
	}
	for i, m := range in.Measurements {
		if m == nil || m.MeasuredAt.IsZero() {
			return fmt.Errorf("%w: measurement %d has no timestamp", domain.ErrInvalidRecord, i)
		}
		if m.WeightKg != nil && !finite(*m.WeightKg) {
			return fmt.Errorf("%w: measurement %d has a non-finite weight", domain.ErrInvalidRecord, i)
		}
	}
	if in.Profile != nil && in.Profile.StartingWeightKg != nil && !finite(*in.Profile.StartingWeightKg) {
		return fmt.Errorf("%w: profile has a non-finite starting weight", domain.ErrInvalidRecord)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundHalfUp rounds to the nearest integer; .5 goes up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func countCompletedWorkouts(workouts []*domain.Workout, from, to time.Time) int {
	count := 0
	for _, w := range workouts {
		if w.Completed && inWindow(w.CreatedAt, from, to) {
			count++
		}
	}
	return count
}

func sumCalories(meals []*domain.Meal, from, to time.Time) int {
	total := 0
	for _, m := range meals {
		if inWindow(m.CreatedAt, from, to) {
			total += m.CaloriesOrZero()
		}
	}
	return total
}

func weeklyGoal(p *domain.Profile, fallback int) int {
	if p != nil && p.WeeklyWorkoutGoal != nil && *p.WeeklyWorkoutGoal > 0 {
		return *p.WeeklyWorkoutGoal
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultWeeklyGoal
}

func progressPercent(done, goal int) int {
	if goal <= 0 {
		return 0
	}
	pct := roundHalfUp(float64(done) / float64(goal) * 100)
	if pct > 100 {
		return 100
	}
	return pct
}

func weightSeries(measurements []*domain.Measurement, p *domain.Profile, now time.Time) []domain.WeightPoint {
	from := now.AddDate(0, 0, -weightWindowDays)

	points := make([]*domain.Measurement, 0, len(measurements))
	for _, m := range measurements {
		if m.WeightKg != nil && inWindow(m.MeasuredAt, from, now) {
			points = append(points, m)
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].MeasuredAt.Before(points[j].MeasuredAt)
	})

	series := make([]domain.WeightPoint, 0, len(points))
	for _, m := range points {
		series = append(series, domain.WeightPoint{
			Label:    m.MeasuredAt.In(now.Location()).Format(weightLabelLayout),
			WeightKg: *m.WeightKg,
		})
	}

	if len(series) == 0 && p != nil && p.StartingWeightKg != nil {
		series = append(series, domain.WeightPoint{Label: startWeightLabel, WeightKg: *p.StartingWeightKg})
	}
	return series
}

func consistencySeries(workouts []*domain.Workout, now time.Time) []domain.ConsistencyDay {
	loc := now.Location()

	completedDays := make(map[string]bool)
	for _, w := range workouts {
		if w.Completed {
			completedDays[dayKey(w.CreatedAt, loc)] = true
		}
	}

	today := StartOfDay(now)
	series := make([]domain.ConsistencyDay, 0, consistencyWindow)
	for offset := consistencyWindow - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		key := day.Format(dayLayout)
		series = append(series, domain.ConsistencyDay{
			Date:      key,
			Day:       day.Format("Mon"),
			Completed: completedDays[key],
		})
	}
	return series
}

func recentActivity(workouts []*domain.Workout, meals []*domain.Meal) []domain.ActivityFeedItem {
	caser := cases.Title(language.English)

	latestWorkouts := append([]*domain.Workout(nil), workouts...)
	sort.SliceStable(latestWorkouts, func(i, j int) bool {
		return latestWorkouts[i].CreatedAt.After(latestWorkouts[j].CreatedAt)
	})
	if len(latestWorkouts) > feedCandidatesPerKind {
		latestWorkouts = latestWorkouts[:feedCandidatesPerKind]
	}

	latestMeals := append([]*domain.Meal(nil), meals...)
	sort.SliceStable(latestMeals, func(i, j int) bool {
		return latestMeals[i].CreatedAt.After(latestMeals[j].CreatedAt)
	})
	if len(latestMeals) > feedCandidatesPerKind {
		latestMeals = latestMeals[:feedCandidatesPerKind]
	}

	feed := make([]domain.ActivityFeedItem, 0, len(latestWorkouts)+len(latestMeals))
	for _, w := range latestWorkouts {
		feed = append(feed, domain.ActivityFeedItem{
			ID:          w.ID,
			Kind:        domain.ActivityWorkout,
			Title:       workoutTitle(caser, w),
			Description: fmt.Sprintf("%d min • %d exercises", w.DurationMin, w.ExerciseCount),
			OccurredAt:  w.CreatedAt,
		})
	}
	for _, m := range latestMeals {
		feed = append(feed, domain.ActivityFeedItem{
			ID:          m.ID,
			Kind:        domain.ActivityMeal,
			Title:       mealTitle(caser, m),
			Description: fmt.Sprintf("%d kcal • %.0fg protein", m.CaloriesOrZero(), m.ProteinOrZero()),
			OccurredAt:  m.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].OccurredAt.After(feed[j].OccurredAt)
	})
	if len(feed) > feedSize {
		feed = feed[:feedSize]
	}
	return feed
}

func workoutTitle(caser cases.Caser, w *domain.Workout) string {
	if w.Name != "" {
		return w.Name
	}
	if w.Type == domain.WorkoutTypeHIIT {
		return "HIIT Workout"
	}
	return caser.String(humanize(w.Type)) + " Workout"
}

func mealTitle(caser cases.Caser, m *domain.Meal) string {
	if m.Name != "" {
		return m.Name
	}
	if m.MealType == "" {
		return "Meal"
	}
	return caser.String(humanize(m.MealType))
}

func humanize(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return "other"
	}
	return s
}

func goalSummary(g *domain.Goal, measurements []*domain.Measurement, p *domain.Profile) *domain.GoalSummary {
	if g == nil {
		return nil
	}

	summary := &domain.GoalSummary{Type: g.Type, TargetWeightKg: g.TargetWeightKg}

	var latest *domain.Measurement
	for _, m := range measurements {
		if m.WeightKg == nil {
			continue
		}
		if latest == nil || m.MeasuredAt.After(latest.MeasuredAt) {
			latest = m
		}
	}

	switch {
	case latest != nil:
		w := *latest.WeightKg
		summary.CurrentWeightKg = &w
	case p != nil && p.StartingWeightKg != nil:
		w := *p.StartingWeightKg
		summary.CurrentWeightKg = &w
	}

	if summary.CurrentWeightKg != nil && g.TargetWeightKg != nil {
		remaining := math.Round(math.Abs(*summary.CurrentWeightKg-*g.TargetWeightKg)*10) / 10
		summary.RemainingKg = &remaining
	}
	return summary
}
