package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

type dashboardMocks struct {
	workouts     *MockWorkoutRepo
	meals        *MockMealRepo
	measurements *MockMeasurementRepo
	profiles     *MockProfileRepo
}

func newDashboardService(opts DashboardOptions) (*DashboardService, dashboardMocks) {
	m := dashboardMocks{
		workouts:     new(MockWorkoutRepo),
		meals:        new(MockMealRepo),
		measurements: new(MockMeasurementRepo),
		profiles:     new(MockProfileRepo),
	}
	return NewDashboardService(m.workouts, m.meals, m.measurements, m.profiles, opts), m
}

func TestDashboardService_GetSnapshot(t *testing.T) {
	uid := "user-123"
	// Wednesday
	now := time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)

	workouts := []*domain.Workout{
		{ID: "w-1", UserID: uid, Type: "strength", Completed: true, DurationMin: 50, ExerciseCount: 5, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "w-2", UserID: uid, Type: "cardio", Completed: true, DurationMin: 30, CreatedAt: now.AddDate(0, 0, -1)},
	}
	meals := []*domain.Meal{
		{ID: "m-1", UserID: uid, MealType: "lunch", Calories: ptr(700), CreatedAt: now.Add(-5 * time.Hour)},
	}

	t.Run("Success: Should aggregate repository data", func(t *testing.T) {
		service, m := newDashboardService(DashboardOptions{LookbackDays: 90, WeekStart: time.Monday})

		m.workouts.On("ListByUserID", mock.Anything, uid, now.AddDate(0, 0, -90), now).Return(workouts, nil)
		m.meals.On("ListByUserID", mock.Anything, uid, now.AddDate(0, 0, -90), now).Return(meals, nil)
		m.measurements.On("ListByUserID", mock.Anything, uid, now.AddDate(0, 0, -30), now).Return([]*domain.Measurement{}, nil)
		m.profiles.On("Get", mock.Anything, uid).Return(&domain.Profile{UserID: uid, WeeklyWorkoutGoal: ptr(4)}, nil)
		m.profiles.On("ActiveGoal", mock.Anything, uid).Return(nil, domain.ErrGoalNotFound)
		m.workouts.On("CountByUserID", mock.Anything, uid).Return(57, nil)

		snap, err := service.GetSnapshot(t.Context(), uid, now)

		require.NoError(t, err)
		assert.Equal(t, 2, snap.StreakDays)
		assert.Equal(t, 57, snap.TotalWorkoutsAllTime, "all-time count comes from the repository")
		assert.Equal(t, 2, snap.WorkoutsThisWeek)
		assert.Equal(t, 700, snap.CaloriesToday)
		assert.Equal(t, 50, snap.WeeklyGoalProgressPercent)
		assert.Len(t, snap.ConsistencySeries, 7)
		assert.Nil(t, snap.Goal)

		m.workouts.AssertExpectations(t)
		m.profiles.AssertExpectations(t)
	})

	t.Run("Success: Should work before onboarding", func(t *testing.T) {
		service, m := newDashboardService(DashboardOptions{})

		m.workouts.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Workout{}, nil)
		m.meals.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Meal{}, nil)
		m.measurements.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Measurement{}, nil)
		m.profiles.On("Get", mock.Anything, uid).Return(nil, domain.ErrProfileNotFound)
		m.profiles.On("ActiveGoal", mock.Anything, uid).Return(nil, domain.ErrGoalNotFound)
		m.workouts.On("CountByUserID", mock.Anything, uid).Return(0, nil)

		snap, err := service.GetSnapshot(t.Context(), uid, now)

		require.NoError(t, err)
		assert.Equal(t, 0, snap.StreakDays)
		assert.Equal(t, 5, snap.WeeklyGoal)
		assert.Empty(t, snap.RecentActivity)
	})

	t.Run("Fail: Should propagate repository errors without a partial snapshot", func(t *testing.T) {
		service, m := newDashboardService(DashboardOptions{})
		dbErr := errors.New("connection reset")

		m.workouts.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return(nil, dbErr)
		m.meals.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Meal{}, nil).Maybe()
		m.measurements.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Measurement{}, nil).Maybe()
		m.profiles.On("Get", mock.Anything, uid).Return(nil, domain.ErrProfileNotFound).Maybe()
		m.profiles.On("ActiveGoal", mock.Anything, uid).Return(nil, domain.ErrGoalNotFound).Maybe()
		m.workouts.On("CountByUserID", mock.Anything, uid).Return(0, nil).Maybe()

		snap, err := service.GetSnapshot(t.Context(), uid, now)

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, snap)
	})

	t.Run("Fail: Should surface malformed records", func(t *testing.T) {
		service, m := newDashboardService(DashboardOptions{})

		m.workouts.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Workout{}, nil)
		m.meals.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Meal{
			{ID: "m-bad", UserID: uid, MealType: "snack", ProteinG: ptr(math.Inf(1)), CreatedAt: now},
		}, nil)
		m.measurements.On("ListByUserID", mock.Anything, uid, mock.Anything, mock.Anything).Return([]*domain.Measurement{}, nil)
		m.profiles.On("Get", mock.Anything, uid).Return(nil, domain.ErrProfileNotFound)
		m.profiles.On("ActiveGoal", mock.Anything, uid).Return(nil, domain.ErrGoalNotFound)
		m.workouts.On("CountByUserID", mock.Anything, uid).Return(0, nil)

		_, err := service.GetSnapshot(t.Context(), uid, now)

		assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	})
}

func TestDashboardService_GetStreak(t *testing.T) {
	uid := "user-123"
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	service, m := newDashboardService(DashboardOptions{LookbackDays: 30})

	m.workouts.On("ListByUserID", mock.Anything, uid, now.AddDate(0, 0, -30), now).Return([]*domain.Workout{
		{ID: "w-1", CreatedAt: now.AddDate(0, 0, -1)},
	}, nil)
	m.meals.On("ListByUserID", mock.Anything, uid, now.AddDate(0, 0, -30), now).Return([]*domain.Meal{
		{ID: "m-1", CreatedAt: now.AddDate(0, 0, -2)},
	}, nil)
	m.profiles.On("Get", mock.Anything, uid).Return(&domain.Profile{UserID: uid, LongestStreak: 9}, nil)

	summary, err := service.GetStreak(t.Context(), uid, now)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Current)
	assert.Equal(t, 9, summary.Longest)
	m.measurements.AssertNotCalled(t, "ListByUserID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.workouts.AssertNotCalled(t, "CountByUserID", mock.Anything, mock.Anything)
}
