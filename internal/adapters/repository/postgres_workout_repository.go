package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

const workoutColumns = `id, user_id, name, type, duration_min, exercise_count, completed, notes, created_at, updated_at`

type PostgresWorkoutRepository struct {
	db *sqlx.DB
}

func NewPostgresWorkoutRepository(db *sqlx.DB) *PostgresWorkoutRepository {
	return &PostgresWorkoutRepository{db: db}
}

func (r *PostgresWorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	query := `
		INSERT INTO workouts (` + workoutColumns + `)
		VALUES (
			:id, :user_id, :name, :type, :duration_min, :exercise_count,
			:completed, :notes, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, w); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: insert workout: %w", err)
	}
	return nil
}

func (r *PostgresWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var w domain.Workout
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1`

	if err := r.db.GetContext(ctx, &w, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("repository: get workout: %w", err)
	}
	return &w, nil
}

func (r *PostgresWorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	query := `
		UPDATE workouts
		SET name = :name,
		    type = :type,
		    duration_min = :duration_min,
		    exercise_count = :exercise_count,
		    completed = :completed,
		    notes = :notes,
		    updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`

	res, err := r.db.NamedExecContext(ctx, query, w)
	if err != nil {
		return fmt.Errorf("repository: update workout: %w", err)
	}
	return requireAffected(res, domain.ErrWorkoutNotFound)
}

func (r *PostgresWorkoutRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("repository: delete workout: %w", err)
	}
	return requireAffected(res, domain.ErrWorkoutNotFound)
}

func (r *PostgresWorkoutRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	workouts := []*domain.Workout{}

	query := `
		SELECT ` + workoutColumns + ` FROM workouts
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &workouts, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("repository: list workouts: %w", err)
	}
	return workouts, nil
}

func (r *PostgresWorkoutRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("repository: count workouts: %w", err)
	}
	return n, nil
}
