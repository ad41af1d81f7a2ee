package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-coach/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-coach/internal/core/services"
)

type MeasurementHandler struct {
	svc *services.MeasurementService
}

func NewMeasurementHandler(svc *services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{svc: svc}
}

type logMeasurementRequest struct {
	WeightKg   *float64   `json:"weight_kg"`
	BodyFatPct *float64   `json:"body_fat_pct"`
	MeasuredAt *time.Time `json:"measured_at"`
}

func (h *MeasurementHandler) RegisterRoutes(router *gin.RouterGroup) {
	measurements := router.Group("/measurements")
	{
		measurements.POST("", h.Log)
		measurements.GET("", h.List)
	}
}

// @Summary Log body measurement
// @Tags Measurements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body logMeasurementRequest true "Measurement"
// @Success 201 {object} domain.Measurement
// @Failure 400 {object} errorResponse
// @Router /api/v1/measurements [post]
func (h *MeasurementHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req logMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	m, err := h.svc.Log(c.Request.Context(), services.LogMeasurementInput{
		UserID:     userID,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		MeasuredAt: optionalTime(req.MeasuredAt),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary List body measurements
// @Tags Measurements
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 or YYYY-MM-DD"
// @Param to query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {array} domain.Measurement
// @Router /api/v1/measurements [get]
func (h *MeasurementHandler) List(c *gin.Context) {
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
