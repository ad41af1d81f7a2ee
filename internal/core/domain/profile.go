package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrInvalidWeeklyGoal    = errors.New("weekly workout goal must be between 1 and 14")
	ErrDisplayNameTooLong   = errors.New("display name is too long (max 60 chars)")
	ErrInvalidHeight        = errors.New("height must be between 50 and 260 cm")
	ErrInvalidGoalType      = errors.New("invalid goal type")
	ErrGoalTargetDateInPast = errors.New("goal target date cannot be in the past")
)

const (
	GoalLoseWeight       = "lose_weight"
	GoalGainMuscle       = "gain_muscle"
	GoalMaintain         = "maintain"
	GoalImproveEndurance = "improve_endurance"

	MaxDisplayNameLen = 60
	MaxWeeklyGoal     = 14
)

// Profile is the onboarding state of a user. Pointer fields are optional
// answers the user may skip.
type Profile struct {
	UserID            string     `json:"user_id" db:"user_id"`
	DisplayName       string     `json:"display_name" db:"display_name"`
	WeeklyWorkoutGoal *int       `json:"weekly_workout_goal,omitempty" db:"weekly_workout_goal"`
	StartingWeightKg  *float64   `json:"starting_weight_kg,omitempty" db:"starting_weight_kg"`
	HeightCm          *float64   `json:"height_cm,omitempty" db:"height_cm"`
	LongestStreak     int        `json:"longest_streak" db:"longest_streak"`
	OnboardedAt       *time.Time `json:"onboarded_at,omitempty" db:"onboarded_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUserIDRequired
	}
	if len(strings.TrimSpace(p.DisplayName)) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	if p.WeeklyWorkoutGoal != nil && (*p.WeeklyWorkoutGoal < 1 || *p.WeeklyWorkoutGoal > MaxWeeklyGoal) {
		return ErrInvalidWeeklyGoal
	}
	if p.StartingWeightKg != nil && !ValidWeight(*p.StartingWeightKg) {
		return ErrInvalidWeight
	}
	if p.HeightCm != nil && (!validAmount(*p.HeightCm) || *p.HeightCm < 50 || *p.HeightCm > 260) {
		return ErrInvalidHeight
	}
	return nil
}

// CompleteOnboarding stamps the first time the profile was saved.
func (p *Profile) CompleteOnboarding(now time.Time) {
	if p.OnboardedAt == nil {
		t := now.UTC()
		p.OnboardedAt = &t
	}
	p.UpdatedAt = now.UTC()
}

type Goal struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	Type           string     `json:"type" db:"type"`
	TargetWeightKg *float64   `json:"target_weight_kg,omitempty" db:"target_weight_kg"`
	TargetDate     *time.Time `json:"target_date,omitempty" db:"target_date"`
	Active         bool       `json:"active" db:"active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

func NewGoal(userID, gType string, targetWeightKg *float64, targetDate *time.Time) (*Goal, error) {
	g := &Goal{
		ID:             uuid.NewString(),
		UserID:         userID,
		Type:           strings.ToLower(strings.TrimSpace(gType)),
		TargetWeightKg: targetWeightKg,
		TargetDate:     targetDate,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return ErrUserIDRequired
	}
	switch g.Type {
	case GoalLoseWeight, GoalGainMuscle, GoalMaintain, GoalImproveEndurance:
	default:
		return ErrInvalidGoalType
	}
	if g.TargetWeightKg != nil && !ValidWeight(*g.TargetWeightKg) {
		return ErrInvalidWeight
	}
	if g.TargetDate != nil && g.TargetDate.Before(g.CreatedAt.Truncate(24*time.Hour)) {
		return ErrGoalTargetDateInPast
	}
	return nil
}
