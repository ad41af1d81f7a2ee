package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

type PostgresMeasurementRepository struct {
	db *sqlx.DB
}

func NewPostgresMeasurementRepository(db *sqlx.DB) *PostgresMeasurementRepository {
	return &PostgresMeasurementRepository{db: db}
}

func (r *PostgresMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) error {
	query := `
		INSERT INTO measurements (id, user_id, weight_kg, body_fat_pct, measured_at)
		VALUES (:id, :user_id, :weight_kg, :body_fat_pct, :measured_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: insert measurement: %w", err)
	}
	return nil
}

func (r *PostgresMeasurementRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Measurement, error) {
	measurements := []*domain.Measurement{}

	query := `
		SELECT id, user_id, weight_kg, body_fat_pct, measured_at
		FROM measurements
		WHERE user_id = $1
		  AND measured_at >= $2
		  AND measured_at <= $3
		ORDER BY measured_at ASC`

	if err := r.db.SelectContext(ctx, &measurements, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("repository: list measurements: %w", err)
	}
	return measurements, nil
}
