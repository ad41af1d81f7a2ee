package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrInvalidMealType  = errors.New("invalid meal type (must be breakfast, lunch, dinner, or snack)")
	ErrInvalidNutrition = errors.New("nutrition values must be finite and non-negative")
	ErrMealNameTooLong  = errors.New("meal name is too long (max 100 chars)")
	ErrMealUnnamed      = errors.New("meal needs a name or a meal type")
	ErrMealInFuture     = errors.New("meal cannot be logged in the future")
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"

	MaxMealNameLen = 100
)

type Meal struct {
	ID       string   `json:"id" db:"id"`
	UserID   string   `json:"user_id" db:"user_id"`
	Name     string   `json:"name" db:"name"`
	MealType string   `json:"meal_type" db:"meal_type"`
	Calories *int     `json:"calories,omitempty" db:"calories"`
	ProteinG *float64 `json:"protein_g,omitempty" db:"protein_g"`
	CarbsG   *float64 `json:"carbs_g,omitempty" db:"carbs_g"`
	FatG     *float64 `json:"fat_g,omitempty" db:"fat_g"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewMeal builds a validated meal. A zero loggedAt means "now".
func NewMeal(userID, name, mealType string, calories *int, protein, carbs, fat *float64, loggedAt time.Time) (*Meal, error) {
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	m := &Meal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		MealType:  strings.ToLower(strings.TrimSpace(mealType)),
		Calories:  calories,
		ProteinG:  protein,
		CarbsG:    carbs,
		FatG:      fat,
		CreatedAt: loggedAt.UTC(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Meal) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return ErrUserIDRequired
	}
	if m.Name == "" && m.MealType == "" {
		return ErrMealUnnamed
	}
	if len(m.Name) > MaxMealNameLen {
		return ErrMealNameTooLong
	}
	switch m.MealType {
	case "", MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
	default:
		return ErrInvalidMealType
	}
	if m.Calories != nil && *m.Calories < 0 {
		return ErrInvalidNutrition
	}
	for _, v := range []*float64{m.ProteinG, m.CarbsG, m.FatG} {
		if v != nil && !validAmount(*v) {
			return ErrInvalidNutrition
		}
	}
	if m.CreatedAt.IsZero() {
		return ErrTimestampRequired
	}
	if inFuture(m.CreatedAt) {
		return ErrMealInFuture
	}
	return nil
}

// CaloriesOrZero treats a missing calorie count as zero.
func (m *Meal) CaloriesOrZero() int {
	if m.Calories == nil {
		return 0
	}
	return *m.Calories
}

func (m *Meal) ProteinOrZero() float64 {
	if m.ProteinG == nil {
		return 0
	}
	return *m.ProteinG
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
