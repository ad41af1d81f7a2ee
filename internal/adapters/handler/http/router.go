package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type RouterDependencies struct {
	AuthHandler        *AuthHandler
	WorkoutHandler     *WorkoutHandler
	MealHandler        *MealHandler
	MeasurementHandler *MeasurementHandler
	ProfileHandler     *ProfileHandler
	DashboardHandler   *DashboardHandler
	TokenService       *services.TokenService
	DB                 *sqlx.DB
	Redis              *redis.Client
	RateLimit          int
	RateWindow         time.Duration
	StartTime          time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", healthHandler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	if deps.Redis != nil && deps.RateLimit > 0 {
		apiV1.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow))
	}

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.WorkoutHandler.RegisterRoutes(protected)
		deps.MealHandler.RegisterRoutes(protected)
		deps.MeasurementHandler.RegisterRoutes(protected)
		deps.ProfileHandler.RegisterRoutes(protected)
		deps.DashboardHandler.RegisterRoutes(protected)
	}

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		if deps.DB == nil || deps.DB.PingContext(ctx) != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "connected"
		if deps.Redis == nil || deps.Redis.Ping(ctx).Err() != nil {
			redisStatus = "unreachable"
		}

		status, code := "ok", http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
