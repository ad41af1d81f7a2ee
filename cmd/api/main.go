// @title Kanso Coach API
// @version 1.0
// @description Workout, meal and body tracking with a per-user progress dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	_ "github.com/comitanigiacomo/kanso-coach/docs"
	"github.com/comitanigiacomo/kanso-coach/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-coach/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-coach/internal/config"
	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
	"github.com/comitanigiacomo/kanso-coach/internal/core/workers"
	"github.com/comitanigiacomo/kanso-coach/internal/logging"
	"github.com/comitanigiacomo/kanso-coach/migrations"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("host", cfg.Database.Host).Msg("connecting to database")

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.ApplyMigrations(ctx, db, migrations.FS); err != nil {
		logging.Fatal().Err(err).Msg("failed to apply migrations")
	}

	rdb, err := cache.NewRedisClient(ctx, cache.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, running without cache and rate limiting")
	} else {
		defer rdb.Close()
	}

	userRepo := repository.NewPostgresUserRepository(db)
	workoutRepo := repository.NewPostgresWorkoutRepository(db)
	mealRepo := repository.NewPostgresMealRepository(db)
	measurementRepo := repository.NewPostgresMeasurementRepository(db)

	var profileRepo domain.ProfileRepository = repository.NewPostgresProfileRepository(db)
	if rdb != nil {
		profileRepo = repository.NewCachedProfileRepository(profileRepo, rdb)
	}

	streakWorker := workers.NewStreakWorker(workoutRepo, mealRepo, profileRepo, cfg.Dashboard.LookbackDays).
		WithLocation(cfg.Dashboard.Location())
	go streakWorker.Start(ctx)

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	workoutService := services.NewWorkoutService(workoutRepo, streakWorker)
	mealService := services.NewMealService(mealRepo, streakWorker)
	measurementService := services.NewMeasurementService(measurementRepo)
	profileService := services.NewProfileService(profileRepo)
	dashboardService := services.NewDashboardService(workoutRepo, mealRepo, measurementRepo, profileRepo, services.DashboardOptions{
		LookbackDays:      cfg.Dashboard.LookbackDays,
		WeekStart:         cfg.Dashboard.WeekStartDay(),
		DefaultWeeklyGoal: cfg.Dashboard.DefaultWeeklyGoal,
	})

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService),
		WorkoutHandler:     adapterHTTP.NewWorkoutHandler(workoutService),
		MealHandler:        adapterHTTP.NewMealHandler(mealService),
		MeasurementHandler: adapterHTTP.NewMeasurementHandler(measurementService),
		ProfileHandler:     adapterHTTP.NewProfileHandler(profileService),
		DashboardHandler:   adapterHTTP.NewDashboardHandler(dashboardService, cfg.Dashboard.Location()),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              rdb,
		RateLimit:          cfg.RateLimit.Limit,
		RateWindow:         cfg.RateLimit.Window,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Server.Port).Msg("kanso coach listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("forced shutdown")
		return
	}

	logging.Info().Msg("server stopped gracefully")
}
