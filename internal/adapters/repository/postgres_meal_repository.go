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

const mealColumns = `id, user_id, name, meal_type, calories, protein_g, carbs_g, fat_g, created_at`

type PostgresMealRepository struct {
	db *sqlx.DB
}

func NewPostgresMealRepository(db *sqlx.DB) *PostgresMealRepository {
	return &PostgresMealRepository{db: db}
}

func (r *PostgresMealRepository) Create(ctx context.Context, m *domain.Meal) error {
	query := `
		INSERT INTO meals (` + mealColumns + `)
		VALUES (:id, :user_id, :name, :meal_type, :calories, :protein_g, :carbs_g, :fat_g, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: insert meal: %w", err)
	}
	return nil
}

func (r *PostgresMealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	var m domain.Meal
	if err := r.db.GetContext(ctx, &m, `SELECT `+mealColumns+` FROM meals WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMealNotFound
		}
		return nil, fmt.Errorf("repository: get meal: %w", err)
	}
	return &m, nil
}

func (r *PostgresMealRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("repository: delete meal: %w", err)
	}
	return requireAffected(res, domain.ErrMealNotFound)
}

func (r *PostgresMealRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error) {
	meals := []*domain.Meal{}

	query := `
		SELECT ` + mealColumns + ` FROM meals
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &meals, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("repository: list meals: %w", err)
	}
	return meals, nil
}
