package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

var notFoundErrors = []error{
	domain.ErrWorkoutNotFound,
	domain.ErrMealNotFound,
	domain.ErrProfileNotFound,
	domain.ErrGoalNotFound,
	domain.ErrUserNotFound,
}

var validationErrors = []error{
	domain.ErrInvalidWorkoutType,
	domain.ErrWorkoutNameTooLong,
	domain.ErrInvalidDuration,
	domain.ErrInvalidExerciseCount,
	domain.ErrWorkoutInFuture,
	domain.ErrInvalidMealType,
	domain.ErrInvalidNutrition,
	domain.ErrMealNameTooLong,
	domain.ErrMealUnnamed,
	domain.ErrMealInFuture,
	domain.ErrInvalidWeight,
	domain.ErrInvalidBodyFat,
	domain.ErrEmptyMeasurement,
	domain.ErrMeasurementInFuture,
	domain.ErrInvalidWeeklyGoal,
	domain.ErrDisplayNameTooLong,
	domain.ErrInvalidHeight,
	domain.ErrInvalidGoalType,
	domain.ErrGoalTargetDateInPast,
	domain.ErrInvalidDateRange,
	domain.ErrUserIDRequired,
	domain.ErrTimestampRequired,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// handleError maps service errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a generic 500.
func handleError(c *gin.Context, err error) {
	switch {
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "email already exists"})
	case isAny(err, validationErrors):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidRecord):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		logging.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
