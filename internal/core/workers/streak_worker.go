package workers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/kanso-coach/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/logging"
	"github.com/comitanigiacomo/kanso-coach/internal/metrics"
)

const (
	queueSize           = 100
	defaultLookbackDays = 365
)

type WorkoutLister interface {
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error)
}

type MealLister interface {
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error)
}

type StreakStore interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateLongestStreak(ctx context.Context, userID string, longest int) error
}

type StreakJob struct {
	UserID string
}

// StreakWorker recomputes a user's streaks off the request path and persists
// the longest one on the profile when it grows.
type StreakWorker struct {
	workouts     WorkoutLister
	meals        MealLister
	profiles     StreakStore
	lookbackDays int
	jobs         chan StreakJob
	log          zerolog.Logger
	now          func() time.Time
	loc          *time.Location
}

func NewStreakWorker(workouts WorkoutLister, meals MealLister, profiles StreakStore, lookbackDays int) *StreakWorker {
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}
	return &StreakWorker{
		workouts:     workouts,
		meals:        meals,
		profiles:     profiles,
		lookbackDays: lookbackDays,
		jobs:         make(chan StreakJob, queueSize),
		log:          logging.Component("streak_worker"),
		now:          time.Now,
		loc:          time.UTC,
	}
}

// WithLocation sets the time zone whose calendar days bound a streak. It
// should match the dashboard's default zone so the persisted longest streak
// agrees with what users see.
func (w *StreakWorker) WithLocation(loc *time.Location) *StreakWorker {
	if loc != nil {
		w.loc = loc
	}
	return w
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		w.log.Info().Msg("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info().Msg("streak worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks. A nil worker ignores the job.
func (w *StreakWorker) Enqueue(userID string) {
	if w == nil {
		return
	}
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		metrics.RecordStreakJob("dropped")
		w.log.Warn().Str("user_id", userID).Msg("queue full, dropping streak job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) string {
	outcome, err := w.recompute(ctx, job.UserID)
	if err != nil {
		w.log.Error().Err(err).Str("user_id", job.UserID).Msg("streak recompute failed")
	}
	metrics.RecordStreakJob(outcome)
	return outcome
}

func (w *StreakWorker) recompute(ctx context.Context, userID string) (string, error) {
	profile, err := w.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return "unchanged", nil
		}
		return "failed", err
	}

	now := w.now().In(w.loc)
	from := now.AddDate(0, 0, -w.lookbackDays)

	workouts, err := w.workouts.ListByUserID(ctx, userID, from, now)
	if err != nil {
		return "failed", err
	}
	meals, err := w.meals.ListByUserID(ctx, userID, from, now)
	if err != nil {
		return "failed", err
	}

	activity := append(domain.ActivityFromWorkouts(workouts), domain.ActivityFromMeals(meals)...)
	streaks, err := analytics.ComputeStreaks(activity, now)
	if err != nil {
		return "failed", err
	}

	if streaks.Longest <= profile.LongestStreak {
		return "unchanged", nil
	}

	if err := w.profiles.UpdateLongestStreak(ctx, userID, streaks.Longest); err != nil {
		return "failed", err
	}

	w.log.Debug().
		Str("user_id", userID).
		Int("current", streaks.Current).
		Int("longest", streaks.Longest).
		Msg("longest streak updated")
	return "updated", nil
}
