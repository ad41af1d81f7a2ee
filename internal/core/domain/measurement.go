package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeight       = errors.New("weight must be a finite value between 20 and 500 kg")
	ErrInvalidBodyFat      = errors.New("body fat must be a finite percentage between 1 and 75")
	ErrEmptyMeasurement    = errors.New("measurement needs at least one value")
	ErrMeasurementInFuture = errors.New("measurement cannot be in the future")
)

const (
	MinWeightKg = 20.0
	MaxWeightKg = 500.0
)

type Measurement struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	WeightKg   *float64  `json:"weight_kg,omitempty" db:"weight_kg"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty" db:"body_fat_pct"`
	MeasuredAt time.Time `json:"measured_at" db:"measured_at"`
}

func NewMeasurement(userID string, weightKg, bodyFatPct *float64, measuredAt time.Time) (*Measurement, error) {
	if measuredAt.IsZero() {
		measuredAt = time.Now()
	}

	m := &Measurement{
		ID:         uuid.NewString(),
		UserID:     userID,
		WeightKg:   weightKg,
		BodyFatPct: bodyFatPct,
		MeasuredAt: measuredAt.UTC(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Measurement) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return ErrUserIDRequired
	}
	if m.WeightKg == nil && m.BodyFatPct == nil {
		return ErrEmptyMeasurement
	}
	if m.WeightKg != nil && !ValidWeight(*m.WeightKg) {
		return ErrInvalidWeight
	}
	if m.BodyFatPct != nil && (!validAmount(*m.BodyFatPct) || *m.BodyFatPct < 1 || *m.BodyFatPct > 75) {
		return ErrInvalidBodyFat
	}
	if inFuture(m.MeasuredAt) {
		return ErrMeasurementInFuture
	}
	return nil
}

func ValidWeight(kg float64) bool {
	return validAmount(kg) && kg >= MinWeightKg && kg <= MaxWeightKg
}
