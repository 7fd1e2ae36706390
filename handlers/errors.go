package handlers

import (
	"errors"
	"net/http"

	"salonhub/services/booking"
	"salonhub/services/catalog"
	"salonhub/services/invoice"
	"salonhub/services/report"
	"salonhub/services/schedule"
	"salonhub/services/settings"
	"salonhub/services/user"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Anything unmapped is
// logged and returned as a generic 500.
func respondError(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		utils.FieldError(c, verr.Field, verr.Message)
		return
	}
	var ferr utils.FieldErrors
	if errors.As(err, &ferr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ferr})
		return
	}

	switch {
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, invoice.ErrNotFound),
		errors.Is(err, settings.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, settings.ErrInvalidHour),
		errors.Is(err, settings.ErrSealerNeeded),
		errors.Is(err, report.ErrInvalidRange),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, catalog.ErrOutOfStock),
		errors.Is(err, catalog.ErrProductInactive):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, user.ErrInvalidToken):
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
