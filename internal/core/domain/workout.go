package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrInvalidWorkoutType   = errors.New("invalid workout type")
	ErrWorkoutNameTooLong   = errors.New("workout name is too long (max 100 chars)")
	ErrInvalidDuration      = errors.New("duration must be between 0 and 1440 minutes")
	ErrInvalidExerciseCount = errors.New("exercise count cannot be negative")
	ErrWorkoutInFuture      = errors.New("workout cannot be logged in the future")
)

const (
	WorkoutTypeStrength    = "strength"
	WorkoutTypeCardio      = "cardio"
	WorkoutTypeHIIT        = "hiit"
	WorkoutTypeFlexibility = "flexibility"
	WorkoutTypeSport       = "sport"
	WorkoutTypeOther       = "other"

	MaxWorkoutNameLen  = 100
	MaxWorkoutDuration = 24 * 60
)

type Workout struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Type          string    `json:"type" db:"type"`
	DurationMin   int       `json:"duration_min" db:"duration_min"`
	ExerciseCount int       `json:"exercise_count" db:"exercise_count"`
	Completed     bool      `json:"completed" db:"completed"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func isWorkoutType(t string) bool {
	switch t {
	case WorkoutTypeStrength, WorkoutTypeCardio, WorkoutTypeHIIT,
		WorkoutTypeFlexibility, WorkoutTypeSport, WorkoutTypeOther:
		return true
	}
	return false
}

// NewWorkout builds a validated workout. A zero loggedAt means "now"; a
// loggedAt in the future is rejected.
func NewWorkout(userID, name, wType string, durationMin, exerciseCount int, completed bool, loggedAt time.Time) (*Workout, error) {
	now := time.Now().UTC()
	if loggedAt.IsZero() {
		loggedAt = now
	}

	w := &Workout{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(name),
		Type:          strings.ToLower(strings.TrimSpace(wType)),
		DurationMin:   durationMin,
		ExerciseCount: exerciseCount,
		Completed:     completed,
		CreatedAt:     loggedAt.UTC(),
		UpdatedAt:     now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workout) Validate() error {
	if strings.TrimSpace(w.UserID) == "" {
		return ErrUserIDRequired
	}
	if !isWorkoutType(w.Type) {
		return ErrInvalidWorkoutType
	}
	if len(w.Name) > MaxWorkoutNameLen {
		return ErrWorkoutNameTooLong
	}
	if w.DurationMin < 0 || w.DurationMin > MaxWorkoutDuration {
		return ErrInvalidDuration
	}
	if w.ExerciseCount < 0 {
		return ErrInvalidExerciseCount
	}
	if w.CreatedAt.IsZero() {
		return ErrTimestampRequired
	}
	if inFuture(w.CreatedAt) {
		return ErrWorkoutInFuture
	}
	return nil
}

func (w *Workout) Complete() {
	if w.Completed {
		return
	}
	w.Completed = true
	w.UpdatedAt = time.Now().UTC()
}
