package domain

import "time"

type DashboardSnapshot struct {
	StreakDays                int                `json:"streak_days"`
	LongestStreakDays         int                `json:"longest_streak_days"`
	TotalWorkoutsAllTime      int                `json:"total_workouts_all_time"`
	WorkoutsThisWeek          int                `json:"workouts_this_week"`
	CaloriesToday             int                `json:"calories_today"`
	WeeklyGoal                int                `json:"weekly_goal"`
	WeeklyGoalProgressPercent int                `json:"weekly_goal_progress_percent"`
	WeightSeries              []WeightPoint      `json:"weight_series"`
	ConsistencySeries         []ConsistencyDay   `json:"consistency_series"`
	RecentActivity            []ActivityFeedItem `json:"recent_activity"`
	Goal                      *GoalSummary       `json:"goal,omitempty"`
	GeneratedAt               time.Time          `json:"generated_at"`
}

type WeightPoint struct {
	Label    string  `json:"label"`
	WeightKg float64 `json:"weight_kg"`
}

type ConsistencyDay struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Completed bool   `json:"completed"`
}

type ActivityFeedItem struct {
	ID          string       `json:"id"`
	Kind        ActivityKind `json:"kind"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

type GoalSummary struct {
	Type            string   `json:"type"`
	TargetWeightKg  *float64 `json:"target_weight_kg,omitempty"`
	CurrentWeightKg *float64 `json:"current_weight_kg,omitempty"`
	RemainingKg     *float64 `json:"remaining_kg,omitempty"`
}

type StreakSummary struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}
