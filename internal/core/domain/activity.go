package domain

import (
	"fmt"
	"time"
)

type ActivityKind string

const (
	ActivityWorkout ActivityKind = "workout"
	ActivityMeal    ActivityKind = "meal"
)

// ActivityRecord is the kind-agnostic view of a logged workout or meal used
// for streak purposes. Only the timestamp matters.
type ActivityRecord struct {
	OccurredAt time.Time    `json:"occurred_at"`
	Kind       ActivityKind `json:"kind"`
}

func (r ActivityRecord) Validate() error {
	if r.OccurredAt.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidRecord)
	}
	switch r.Kind {
	case ActivityWorkout, ActivityMeal:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, r.Kind)
	}
}

func ActivityFromWorkouts(workouts []*Workout) []ActivityRecord {
	out := make([]ActivityRecord, 0, len(workouts))
	for _, w := range workouts {
		if w == nil {
			continue
		}
		out = append(out, ActivityRecord{OccurredAt: w.CreatedAt, Kind: ActivityWorkout})
	}
	return out
}

func ActivityFromMeals(meals []*Meal) []ActivityRecord {
	out := make([]ActivityRecord, 0, len(meals))
	for _, m := range meals {
		if m == nil {
			continue
		}
		out = append(out, ActivityRecord{OccurredAt: m.CreatedAt, Kind: ActivityMeal})
	}
	return out
}
