package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/core/workers"
	"github.com/comitanigiacomo/kanso-coach/internal/metrics"
)

type MealService struct {
	repo   domain.MealRepository
	worker *workers.StreakWorker
}

func NewMealService(repo domain.MealRepository, worker *workers.StreakWorker) *MealService {
	return &MealService{
		repo:   repo,
		worker: worker,
	}
}

type LogMealInput struct {
	UserID   string
	Name     string
	MealType string
	Calories *int
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
	LoggedAt time.Time
}

func (s *MealService) Log(ctx context.Context, input LogMealInput) (*domain.Meal, error) {
	meal, err := domain.NewMeal(
		input.UserID,
		input.Name,
		input.MealType,
		input.Calories,
		input.ProteinG,
		input.CarbsG,
		input.FatG,
		input.LoggedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, err
	}

	metrics.RecordActivityWrite("meal", "create")
	s.worker.Enqueue(meal.UserID)

	return meal, nil
}

func (s *MealService) List(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error) {
	from, to, err := resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUserID(ctx, userID, from, to)
}

func (s *MealService) Delete(ctx context.Context, id string, userID string) error {
	meal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if meal.UserID != userID {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	metrics.RecordActivityWrite("meal", "delete")
	s.worker.Enqueue(userID)

	return nil
}
