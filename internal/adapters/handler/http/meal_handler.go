package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type MealHandler struct {
	svc *services.MealService
}

func NewMealHandler(svc *services.MealService) *MealHandler {
	return &MealHandler{svc: svc}
}

type logMealRequest struct {
	Name     string     `json:"name"`
	MealType string     `json:"meal_type"`
	Calories *int       `json:"calories"`
	ProteinG *float64   `json:"protein_g"`
	CarbsG   *float64   `json:"carbs_g"`
	FatG     *float64   `json:"fat_g"`
	LoggedAt *time.Time `json:"logged_at"`
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.POST("", h.Log)
		meals.GET("", h.List)
		meals.DELETE("/:id", h.Delete)
	}
}

// @Summary Log meal
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body logMealRequest true "Meal"
// @Success 201 {object} domain.Meal
// @Failure 400 {object} errorResponse
// @Router /api/v1/meals [post]
func (h *MealHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	meal, err := h.svc.Log(c.Request.Context(), services.LogMealInput{
		UserID:   userID,
		Name:     req.Name,
		MealType: req.MealType,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		LoggedAt: optionalTime(req.LoggedAt),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// @Summary List meals
// @Tags Meals
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 or YYYY-MM-DD"
// @Param to query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {array} domain.Meal
// @Router /api/v1/meals [get]
func (h *MealHandler) List(c *gin.Context) {
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

// @Summary Delete meal
// @Tags Meals
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/v1/meals/{id} [delete]
func (h *MealHandler) Delete(c *gin.Context) {
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
