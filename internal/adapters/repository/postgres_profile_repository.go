package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

const (
	profileColumns = `user_id, display_name, weekly_workout_goal, starting_weight_kg, height_cm, longest_streak, onboarded_at, updated_at`
	goalColumns    = `id, user_id, type, target_weight_kg, target_date, active, created_at`
)

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("repository: get profile: %w", err)
	}
	return &p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (
			:user_id, :display_name, :weekly_workout_goal, :starting_weight_kg,
			:height_cm, :longest_streak, :onboarded_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			weekly_workout_goal = EXCLUDED.weekly_workout_goal,
			starting_weight_kg = EXCLUDED.starting_weight_kg,
			height_cm = EXCLUDED.height_cm,
			longest_streak = GREATEST(profiles.longest_streak, EXCLUDED.longest_streak),
			onboarded_at = COALESCE(profiles.onboarded_at, EXCLUDED.onboarded_at),
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: upsert profile: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpdateLongestStreak(ctx context.Context, userID string, longest int) error {
	query := `
		UPDATE profiles
		SET longest_streak = $2, updated_at = NOW()
		WHERE user_id = $1 AND longest_streak < $2`

	if _, err := r.db.ExecContext(ctx, query, userID, longest); err != nil {
		return fmt.Errorf("repository: update longest streak: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) ActiveGoal(ctx context.Context, userID string) (*domain.Goal, error) {
	var g domain.Goal
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND active ORDER BY created_at DESC LIMIT 1`

	if err := r.db.GetContext(ctx, &g, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("repository: get active goal: %w", err)
	}
	return &g, nil
}

func (r *PostgresProfileRepository) SetGoal(ctx context.Context, g *domain.Goal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin goal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE goals SET active = FALSE WHERE user_id = $1 AND active`, g.UserID); err != nil {
		return fmt.Errorf("repository: deactivate goals: %w", err)
	}

	query := `INSERT INTO goals (` + goalColumns + `) VALUES (:id, :user_id, :type, :target_weight_kg, :target_date, :active, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, g); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: insert goal: %w", err)
	}

	return tx.Commit()
}
