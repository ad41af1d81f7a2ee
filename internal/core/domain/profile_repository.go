package domain

import "context"

type ProfileRepository interface {
	// Get returns the profile for a user, or ErrProfileNotFound before onboarding.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Upsert creates or replaces the onboarding answers of a user.
	Upsert(ctx context.Context, profile *Profile) error

	// UpdateLongestStreak raises the persisted longest streak. Lower values are ignored.
	UpdateLongestStreak(ctx context.Context, userID string, longest int) error

	// ActiveGoal returns the user's current goal, or ErrGoalNotFound.
	ActiveGoal(ctx context.Context, userID string) (*Goal, error)

	// SetGoal stores a new active goal and deactivates the previous one.
	SetGoal(ctx context.Context, goal *Goal) error
}
