package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/metrics"
)

type MeasurementService struct {
	repo domain.MeasurementRepository
}

func NewMeasurementService(repo domain.MeasurementRepository) *MeasurementService {
	return &MeasurementService{
		repo: repo,
	}
}

type LogMeasurementInput struct {
	UserID     string
	WeightKg   *float64
	BodyFatPct *float64
	MeasuredAt time.Time
}

func (s *MeasurementService) Log(ctx context.Context, input LogMeasurementInput) (*domain.Measurement, error) {
	m, err := domain.NewMeasurement(input.UserID, input.WeightKg, input.BodyFatPct, input.MeasuredAt)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	metrics.RecordActivityWrite("measurement", "create")
	return m, nil
}

func (s *MeasurementService) List(ctx context.Context, userID string, from, to time.Time) ([]*domain.Measurement, error) {
	from, to, err := resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUserID(ctx, userID, from, to)
}
