package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	adapterHTTP "github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type testEnv struct {
	router       *gin.Engine
	workouts     *repository.InMemoryWorkoutRepository
	meals        *repository.InMemoryMealRepository
	measurements *repository.InMemoryMeasurementRepository
	profiles     *repository.InMemoryProfileRepository
}

// fakeAuth trusts X-User-ID so handler tests can skip token issuance.
func fakeAuth(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(middleware.ContextUserIDKey, userID)
	c.Next()
}

func setupRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		workouts:     repository.NewInMemoryWorkoutRepository(),
		meals:        repository.NewInMemoryMealRepository(),
		measurements: repository.NewInMemoryMeasurementRepository(),
		profiles:     repository.NewInMemoryProfileRepository(),
	}

	dashboard := services.NewDashboardService(env.workouts, env.meals, env.measurements, env.profiles, services.DashboardOptions{
		LookbackDays:      365,
		WeekStart:         time.Sunday,
		DefaultWeeklyGoal: 5,
	})

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(fakeAuth)

	adapterHTTP.NewWorkoutHandler(services.NewWorkoutService(env.workouts, nil)).RegisterRoutes(api)
	adapterHTTP.NewMealHandler(services.NewMealService(env.meals, nil)).RegisterRoutes(api)
	adapterHTTP.NewMeasurementHandler(services.NewMeasurementService(env.measurements)).RegisterRoutes(api)
	adapterHTTP.NewProfileHandler(services.NewProfileService(env.profiles)).RegisterRoutes(api)
	adapterHTTP.NewDashboardHandler(dashboard, time.UTC).RegisterRoutes(api)

	env.router = r
	return env
}

func (e *testEnv) do(method, path, userID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	return v
}
