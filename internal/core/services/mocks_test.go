package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockWorkoutRepo struct {
	mock.Mock
}

func (m *MockWorkoutRepo) Create(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepo) Update(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkoutRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockWorkoutRepo) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockMealRepo struct {
	mock.Mock
}

func (m *MockMealRepo) Create(ctx context.Context, meal *domain.Meal) error {
	return m.Called(ctx, meal).Error(0)
}

func (m *MockMealRepo) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meal), args.Error(1)
}

func (m *MockMealRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockMealRepo) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meal), args.Error(1)
}

type MockMeasurementRepo struct {
	mock.Mock
}

func (m *MockMeasurementRepo) Create(ctx context.Context, ms *domain.Measurement) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *MockMeasurementRepo) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Measurement, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Measurement), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) UpdateLongestStreak(ctx context.Context, userID string, longest int) error {
	return m.Called(ctx, userID, longest).Error(0)
}

func (m *MockProfileRepo) ActiveGoal(ctx context.Context, userID string) (*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockProfileRepo) SetGoal(ctx context.Context, g *domain.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func ptr[T any](v T) *T {
	return &v
}
