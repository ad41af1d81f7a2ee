package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-coach/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/metrics"
)

const (
	defaultLookbackDays = 365
	measurementWindow   = 30
)

type DashboardOptions struct {
	// LookbackDays bounds the workout and meal history fetched per snapshot.
	LookbackDays      int
	WeekStart         time.Weekday
	DefaultWeeklyGoal int
}

// DashboardService gathers a user's records and hands them to the analytics
// package. Snapshots are computed on every call and never cached.
type DashboardService struct {
	workouts     domain.WorkoutRepository
	meals        domain.MealRepository
	measurements domain.MeasurementRepository
	profiles     domain.ProfileRepository
	opts         DashboardOptions
}

func NewDashboardService(
	workouts domain.WorkoutRepository,
	meals domain.MealRepository,
	measurements domain.MeasurementRepository,
	profiles domain.ProfileRepository,
	opts DashboardOptions,
) *DashboardService {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = defaultLookbackDays
	}
	return &DashboardService{
		workouts:     workouts,
		meals:        meals,
		measurements: measurements,
		profiles:     profiles,
		opts:         opts,
	}
}

type userRecords struct {
	workouts     []*domain.Workout
	meals        []*domain.Meal
	measurements []*domain.Measurement
	profile      *domain.Profile
	goal         *domain.Goal
	total        int
}

// GetSnapshot computes the dashboard for userID. now carries the caller's
// time zone.
func (s *DashboardService) GetSnapshot(ctx context.Context, userID string, now time.Time) (_ *domain.DashboardSnapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordSnapshot(start, err) }()

	recs, err := s.fetch(ctx, userID, now, true)
	if err != nil {
		return nil, err
	}

	snapshot, err := analytics.ComputeSnapshot(analytics.SnapshotInput{
		Workouts:          recs.workouts,
		Meals:             recs.meals,
		Measurements:      recs.measurements,
		Profile:           recs.profile,
		Goal:              recs.goal,
		Now:               now,
		WeekStart:         s.opts.WeekStart,
		DefaultWeeklyGoal: s.opts.DefaultWeeklyGoal,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard service: %w", err)
	}

	if recs.total > snapshot.TotalWorkoutsAllTime {
		snapshot.TotalWorkoutsAllTime = recs.total
	}

	return snapshot, nil
}

func (s *DashboardService) GetStreak(ctx context.Context, userID string, now time.Time) (*domain.StreakSummary, error) {
	recs, err := s.fetch(ctx, userID, now, false)
	if err != nil {
		return nil, err
	}

	activity := append(domain.ActivityFromWorkouts(recs.workouts), domain.ActivityFromMeals(recs.meals)...)
	summary, err := analytics.ComputeStreaks(activity, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: %w", err)
	}

	if recs.profile != nil && recs.profile.LongestStreak > summary.Longest {
		summary.Longest = recs.profile.LongestStreak
	}
	return &summary, nil
}

// fetch loads everything concurrently. A missing profile or goal is not an error.
func (s *DashboardService) fetch(ctx context.Context, userID string, now time.Time, full bool) (*userRecords, error) {
	from := now.AddDate(0, 0, -s.opts.LookbackDays)
	recs := &userRecords{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w, err := s.workouts.ListByUserID(gctx, userID, from, now)
		if err != nil {
			return fmt.Errorf("list workouts: %w", err)
		}
		recs.workouts = w
		return nil
	})
	g.Go(func() error {
		m, err := s.meals.ListByUserID(gctx, userID, from, now)
		if err != nil {
			return fmt.Errorf("list meals: %w", err)
		}
		recs.meals = m
		return nil
	})
	g.Go(func() error {
		p, err := s.profiles.Get(gctx, userID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return fmt.Errorf("get profile: %w", err)
		}
		recs.profile = p
		return nil
	})

	if full {
		g.Go(func() error {
			m, err := s.measurements.ListByUserID(gctx, userID, now.AddDate(0, 0, -measurementWindow), now)
			if err != nil {
				return fmt.Errorf("list measurements: %w", err)
			}
			recs.measurements = m
			return nil
		})
		g.Go(func() error {
			goal, err := s.profiles.ActiveGoal(gctx, userID)
			if err != nil && !errors.Is(err, domain.ErrGoalNotFound) {
				return fmt.Errorf("get goal: %w", err)
			}
			recs.goal = goal
			return nil
		})
		g.Go(func() error {
			n, err := s.workouts.CountByUserID(gctx, userID)
			if err != nil {
				return fmt.Errorf("count workouts: %w", err)
			}
			recs.total = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard service: %w", err)
	}
	return recs, nil
}
