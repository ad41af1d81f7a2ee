package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type upsertProfileRequest struct {
	DisplayName       *string  `json:"display_name"`
	WeeklyWorkoutGoal *int     `json:"weekly_workout_goal"`
	StartingWeightKg  *float64 `json:"starting_weight_kg"`
	HeightCm          *float64 `json:"height_cm"`
}

type setGoalRequest struct {
	Type           string   `json:"type" binding:"required"`
	TargetWeightKg *float64 `json:"target_weight_kg"`
	// TargetDate is YYYY-MM-DD.
	TargetDate string `json:"target_date"`
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Upsert)
		profile.GET("/goal", h.GetGoal)
		profile.PUT("/goal", h.SetGoal)
	}
}

// @Summary Get profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 404 {object} errorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Upsert saves onboarding answers. Omitted fields keep their stored value.
// @Summary Save profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body upsertProfileRequest true "Onboarding answers"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} errorResponse
// @Router /api/v1/profile [put]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	profile, err := h.svc.Upsert(c.Request.Context(), services.UpsertProfileInput{
		UserID:            userID,
		DisplayName:       req.DisplayName,
		WeeklyWorkoutGoal: req.WeeklyWorkoutGoal,
		StartingWeightKg:  req.StartingWeightKg,
		HeightCm:          req.HeightCm,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Get active goal
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Goal
// @Failure 404 {object} errorResponse
// @Router /api/v1/profile/goal [get]
func (h *ProfileHandler) GetGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	goal, err := h.svc.ActiveGoal(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// SetGoal replaces the active goal.
// @Summary Set goal
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body setGoalRequest true "Goal"
// @Success 200 {object} domain.Goal
// @Failure 400 {object} errorResponse
// @Router /api/v1/profile/goal [put]
func (h *ProfileHandler) SetGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var targetDate *time.Time
	if req.TargetDate != "" {
		d, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			badRequest(c, "invalid target_date format, expected YYYY-MM-DD")
			return
		}
		targetDate = &d
	}

	goal, err := h.svc.SetGoal(c.Request.Context(), services.SetGoalInput{
		UserID:         userID,
		Type:           req.Type,
		TargetWeightKg: req.TargetWeightKg,
		TargetDate:     targetDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}
