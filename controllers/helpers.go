package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/customization"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/seating"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func staff(c *gin.Context) models.Staff {
	s, _ := middlewares.CurrentStaff(c)
	return s
}

// respondServiceError maps domain errors onto the response envelope.
func respondServiceError(c *gin.Context, err error) {
	var verr *seating.ValidationError
	var apiErr *backend.APIError

	switch {
	case errors.As(err, &verr):
		utils.RespondErrorData(c, http.StatusUnprocessableEntity, verr, gin.H{"field": verr.Field})
	case errors.Is(err, services.ErrNoActiveSession):
		utils.RespondErrorData(c, http.StatusConflict, errors.New(services.SessionMessage), gin.H{
			"redirect":          services.SessionRedirect,
			"redirect_after_ms": services.SessionRedirectAfterMs,
		})
	case errors.Is(err, customization.ErrSelectionRequired),
		errors.Is(err, customization.ErrUnknownOption),
		errors.Is(err, checkout.ErrInvalidMethod),
		errors.Is(err, checkout.ErrNegativeDiscount),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidSettings):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrStatusNotAllowed):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrNoPendingItem):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrSubmitInFlight),
		errors.Is(err, services.ErrOrderCancelled),
		errors.Is(err, checkout.ErrBusy),
		errors.Is(err, checkout.ErrNoBill),
		errors.Is(err, checkout.ErrAlreadyPaid),
		errors.Is(err, checkout.ErrClosed),
		errors.Is(err, checkout.ErrBillLocked):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &apiErr):
		code := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			code = apiErr.StatusCode
		}
		utils.RespondError(c, code, errors.New(apiErr.Message))
	case errors.Is(err, backend.ErrUnavailable):
		utils.ErrorLogger.Errorf("Backend unavailable: %v", err)
		utils.RespondError(c, http.StatusBadGateway, errors.New("restaurant backend is unavailable, please try again"))
	default:
		utils.ErrorLogger.Errorf("Unhandled error on %s: %v", c.FullPath(), err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
