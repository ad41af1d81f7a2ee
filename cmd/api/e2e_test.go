package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-coach/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
	"github.com/comitanigiacomo/kanso-coach/internal/core/workers"
	"github.com/comitanigiacomo/kanso-coach/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping end-to-end test: database connection failed: %v", err)
	}
	require.NoError(t, repository.ApplyMigrations(context.Background(), db, migrations.FS))
	return db
}

type e2eClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *e2eClient) call(method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_CoachingJourney(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	defer db.Close()

	_, err := db.Exec("TRUNCATE TABLE measurements, meals, workouts, goals, profiles, users CASCADE")
	require.NoError(t, err, "Failed to truncate tables")

	userRepo := repository.NewPostgresUserRepository(db)
	workoutRepo := repository.NewPostgresWorkoutRepository(db)
	mealRepo := repository.NewPostgresMealRepository(db)
	measurementRepo := repository.NewPostgresMeasurementRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := workers.NewStreakWorker(workoutRepo, mealRepo, profileRepo, 365)
	go worker.Start(ctx)

	tokens := services.NewTokenService("e2e-secret", "kanso-coach", time.Hour, userRepo)
	dashboard := services.NewDashboardService(workoutRepo, mealRepo, measurementRepo, profileRepo, services.DashboardOptions{
		LookbackDays:      365,
		WeekStart:         time.Sunday,
		DefaultWeeklyGoal: 5,
	})

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(services.NewAuthService(userRepo, tokens)),
		WorkoutHandler:     adapterHTTP.NewWorkoutHandler(services.NewWorkoutService(workoutRepo, worker)),
		MealHandler:        adapterHTTP.NewMealHandler(services.NewMealService(mealRepo, worker)),
		MeasurementHandler: adapterHTTP.NewMeasurementHandler(services.NewMeasurementService(measurementRepo)),
		ProfileHandler:     adapterHTTP.NewProfileHandler(services.NewProfileService(profileRepo)),
		DashboardHandler:   adapterHTTP.NewDashboardHandler(dashboard, time.UTC),
		TokenService:       tokens,
		DB:                 db,
		StartTime:          time.Now(),
	})

	client := &e2eClient{t: t, router: router}
	var userID string

	t.Run("1. Register and Login", func(t *testing.T) {
		creds := `{"email": "e2e@kanso.app", "password": "LongEnough1!"}`

		w := client.call(http.MethodPost, "/api/v1/auth/register", creds)
		require.Equal(t, http.StatusCreated, w.Code)

		var user struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		userID = user.ID

		w = client.call(http.MethodPost, "/api/v1/auth/login", creds)
		require.Equal(t, http.StatusOK, w.Code)

		var login struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
		client.token = login.Token
	})

	t.Run("2. Onboarding", func(t *testing.T) {
		require.NotEmpty(t, client.token, "Login step failed")

		w := client.call(http.MethodPut, "/api/v1/profile", `{"display_name": "E2E", "weekly_workout_goal": 4, "starting_weight_kg": 82}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w = client.call(http.MethodPut, "/api/v1/profile/goal", `{"type": "lose_weight", "target_weight_kg": 78}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("3. Log Activity", func(t *testing.T) {
		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)

		w := client.call(http.MethodPost, "/api/v1/workouts", `{"type": "strength", "duration_min": 50, "exercise_count": 5}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = client.call(http.MethodPost, "/api/v1/workouts", `{"type": "cardio", "duration_min": 30, "logged_at": "`+yesterday+`"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = client.call(http.MethodPost, "/api/v1/meals", `{"meal_type": "breakfast", "calories": 420, "protein_g": 30}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = client.call(http.MethodPost, "/api/v1/measurements", `{"weight_kg": 81.2}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("4. Dashboard", func(t *testing.T) {
		w := client.call(http.MethodGet, "/api/v1/dashboard?tz=UTC", "")
		require.Equal(t, http.StatusOK, w.Code)

		var snap domain.DashboardSnapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))

		assert.Equal(t, 2, snap.StreakDays)
		assert.Equal(t, 2, snap.TotalWorkoutsAllTime)
		assert.Equal(t, 420, snap.CaloriesToday)
		assert.Equal(t, 4, snap.WeeklyGoal)
		assert.Len(t, snap.WeightSeries, 1)
		assert.Len(t, snap.ConsistencySeries, 7)
		assert.Len(t, snap.RecentActivity, 3)
		require.NotNil(t, snap.Goal)
		assert.Equal(t, "lose_weight", snap.Goal.Type)
	})

	t.Run("5. Streak worker persists the longest streak", func(t *testing.T) {
		assert.Eventually(t, func() bool {
			p, err := profileRepo.Get(context.Background(), userID)
			return err == nil && p.LongestStreak >= 2
		}, 3*time.Second, 50*time.Millisecond)
	})

	t.Run("6. Auth Error", func(t *testing.T) {
		anonymous := &e2eClient{t: t, router: router}
		w := anonymous.call(http.MethodGet, "/api/v1/dashboard", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
