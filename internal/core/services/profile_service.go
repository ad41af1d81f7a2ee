package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

type ProfileService struct {
	repo domain.ProfileRepository
}

func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// UpsertProfileInput carries onboarding answers. Nil fields keep the stored value.
type UpsertProfileInput struct {
	UserID            string
	DisplayName       *string
	WeeklyWorkoutGoal *int
	StartingWeightKg  *float64
	HeightCm          *float64
}

type SetGoalInput struct {
	UserID         string
	Type           string
	TargetWeightKg *float64
	TargetDate     *time.Time
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.Get(ctx, userID)
}

func (s *ProfileService) Upsert(ctx context.Context, input UpsertProfileInput) (*domain.Profile, error) {
	profile, err := s.repo.Get(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		profile = &domain.Profile{UserID: input.UserID}
	}

	if input.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.WeeklyWorkoutGoal != nil {
		profile.WeeklyWorkoutGoal = input.WeeklyWorkoutGoal
	}
	if input.StartingWeightKg != nil {
		profile.StartingWeightKg = input.StartingWeightKg
	}
	if input.HeightCm != nil {
		profile.HeightCm = input.HeightCm
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	profile.CompleteOnboarding(time.Now())

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) SetGoal(ctx context.Context, input SetGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.UserID, input.Type, input.TargetWeightKg, input.TargetDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *ProfileService) ActiveGoal(ctx context.Context, userID string) (*domain.Goal, error) {
	return s.repo.ActiveGoal(ctx, userID)
}
