package domain

import (
	"context"
	"time"
)

type WorkoutRepository interface {
	// Create persists a newly logged workout.
	Create(ctx context.Context, workout *Workout) error

	// GetByID retrieves a workout by its unique identifier.
	GetByID(ctx context.Context, id string) (*Workout, error)

	// Update modifies an existing workout (e.g. marking it completed).
	Update(ctx context.Context, workout *Workout) error

	// Delete removes a workout. It requires userID to ensure ownership.
	Delete(ctx context.Context, id string, userID string) error

	// ListByUserID returns the user's workouts created within [from, to],
	// most recent first.
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*Workout, error)

	// CountByUserID returns the all-time number of workouts for the user.
	CountByUserID(ctx context.Context, userID string) (int, error)
}

type MealRepository interface {
	Create(ctx context.Context, meal *Meal) error
	GetByID(ctx context.Context, id string) (*Meal, error)
	Delete(ctx context.Context, id string, userID string) error

	// ListByUserID returns the user's meals logged within [from, to], most recent first.
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*Meal, error)
}

type MeasurementRepository interface {
	Create(ctx context.Context, m *Measurement) error

	// ListByUserID returns measurements taken within [from, to], oldest first.
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*Measurement, error)
}
