package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

func TestMeasurementService_Log(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: Should persist a weigh-in", func(t *testing.T) {
		repo := new(MockMeasurementRepo)
		service := NewMeasurementService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Measurement) bool {
			return m.UserID == uid && *m.WeightKg == 81.4
		})).Return(nil)

		m, err := service.Log(ctx, LogMeasurementInput{UserID: uid, WeightKg: ptr(81.4)})

		assert.NoError(t, err)
		assert.NotEmpty(t, m.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject an empty measurement", func(t *testing.T) {
		repo := new(MockMeasurementRepo)
		service := NewMeasurementService(repo)

		_, err := service.Log(ctx, LogMeasurementInput{UserID: uid})

		assert.ErrorIs(t, err, domain.ErrEmptyMeasurement)
	})

	t.Run("Fail: Should reject an implausible weight", func(t *testing.T) {
		repo := new(MockMeasurementRepo)
		service := NewMeasurementService(repo)

		_, err := service.Log(ctx, LogMeasurementInput{UserID: uid, WeightKg: ptr(5.0)})

		assert.ErrorIs(t, err, domain.ErrInvalidWeight)
	})

	t.Run("Fail: Should reject a measurement in the future", func(t *testing.T) {
		repo := new(MockMeasurementRepo)
		service := NewMeasurementService(repo)

		_, err := service.Log(ctx, LogMeasurementInput{
			UserID:     uid,
			WeightKg:   ptr(80.0),
			MeasuredAt: time.Now().Add(48 * time.Hour),
		})

		assert.ErrorIs(t, err, domain.ErrMeasurementInFuture)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
