package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type WorkoutHandler struct {
	svc *services.WorkoutService
}

func NewWorkoutHandler(svc *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{svc: svc}
}

type logWorkoutRequest struct {
	Name          string     `json:"name"`
	Type          string     `json:"type" binding:"required"`
	DurationMin   int        `json:"duration_min"`
	ExerciseCount int        `json:"exercise_count"`
	Completed     *bool      `json:"completed"`
	Notes         string     `json:"notes"`
	LoggedAt      *time.Time `json:"logged_at"`
}

func (h *WorkoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	workouts := router.Group("/workouts")
	{
		workouts.POST("", h.Log)
		workouts.GET("", h.List)
		workouts.PUT("/:id/complete", h.Complete)
		workouts.DELETE("/:id", h.Delete)
	}
}

// Log records a workout. Workouts are completed unless the body says otherwise.
// @Summary Log workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body logWorkoutRequest true "Workout"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} errorResponse
// @Router /api/v1/workouts [post]
func (h *WorkoutHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req logWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	workout, err := h.svc.Log(c.Request.Context(), services.LogWorkoutInput{
		UserID:        userID,
		Name:          req.Name,
		Type:          req.Type,
		DurationMin:   req.DurationMin,
		ExerciseCount: req.ExerciseCount,
		Completed:     completed,
		Notes:         req.Notes,
		LoggedAt:      optionalTime(req.LoggedAt),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// List returns the caller's workouts, newest first.
// @Summary List workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 or YYYY-MM-DD, default 30 days ago"
// @Param to query string false "RFC3339 or YYYY-MM-DD, default now"
// @Success 200 {array} domain.Workout
// @Router /api/v1/workouts [get]
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary Complete workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/v1/workouts/{id}/complete [put]
func (h *WorkoutHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	workout, err := h.svc.Complete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

// @Summary Delete workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/v1/workouts/{id} [delete]
func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
