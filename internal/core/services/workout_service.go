package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/core/workers"
	"github.com/comitanigiacomo/kanso-coach/internal/metrics"
)

const defaultListWindowDays = 30

type WorkoutService struct {
	repo   domain.WorkoutRepository
	worker *workers.StreakWorker
}

func NewWorkoutService(repo domain.WorkoutRepository, worker *workers.StreakWorker) *WorkoutService {
	return &WorkoutService{
		repo:   repo,
		worker: worker,
	}
}

type LogWorkoutInput struct {
	UserID        string
	Name          string
	Type          string
	DurationMin   int
	ExerciseCount int
	Completed     bool
	Notes         string
	LoggedAt      time.Time
}

func (s *WorkoutService) Log(ctx context.Context, input LogWorkoutInput) (*domain.Workout, error) {
	workout, err := domain.NewWorkout(
		input.UserID,
		input.Name,
		input.Type,
		input.DurationMin,
		input.ExerciseCount,
		input.Completed,
		input.LoggedAt,
	)
	if err != nil {
		return nil, err
	}
	workout.Notes = input.Notes

	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}

	metrics.RecordActivityWrite("workout", "create")
	s.worker.Enqueue(workout.UserID)

	return workout, nil
}

// List returns workouts logged in [from, to]. Zero bounds default to the
// last 30 days.
func (s *WorkoutService) List(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	from, to, err := resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUserID(ctx, userID, from, to)
}

func (s *WorkoutService) GetByID(ctx context.Context, id string, userID string) (*domain.Workout, error) {
	workout, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return workout, nil
}

func (s *WorkoutService) Complete(ctx context.Context, id string, userID string) (*domain.Workout, error) {
	workout, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if workout.Completed {
		return workout, nil
	}

	workout.Complete()
	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, err
	}

	metrics.RecordActivityWrite("workout", "complete")
	s.worker.Enqueue(workout.UserID)

	return workout, nil
}

func (s *WorkoutService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	metrics.RecordActivityWrite("workout", "delete")
	s.worker.Enqueue(userID)

	return nil
}

func resolveRange(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -defaultListWindowDays)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return from, to, nil
}
