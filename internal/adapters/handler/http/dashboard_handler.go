package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type DashboardHandler struct {
	svc        *services.DashboardService
	defaultLoc *time.Location
	now        func() time.Time
}

// NewDashboardHandler resolves "today" in the request's tz, or defaultLoc
// when the client sends none.
func NewDashboardHandler(svc *services.DashboardService, defaultLoc *time.Location) *DashboardHandler {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &DashboardHandler{
		svc:        svc,
		defaultLoc: defaultLoc,
		now:        time.Now,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/stats/streak", h.GetStreak)
}

// @Summary Dashboard snapshot
// @Description Streak, weekly goal progress, calories today, weight trend, 7-day consistency and recent activity.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param tz query string false "IANA timezone, e.g. Europe/Rome"
// @Success 200 {object} domain.DashboardSnapshot
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	loc, ok := parseLocation(c, h.defaultLoc)
	if !ok {
		return
	}

	snapshot, err := h.svc.GetSnapshot(c.Request.Context(), userID, h.now().In(loc))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// @Summary Current and longest streak
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param tz query string false "IANA timezone"
// @Success 200 {object} domain.StreakSummary
// @Failure 400 {object} errorResponse
// @Router /api/v1/stats/streak [get]
func (h *DashboardHandler) GetStreak(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	loc, ok := parseLocation(c, h.defaultLoc)
	if !ok {
		return
	}

	summary, err := h.svc.GetStreak(c.Request.Context(), userID, h.now().In(loc))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
