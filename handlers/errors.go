package handlers

import (
	"errors"
	"net/http"

	"svdiagnostic/services/booking"
	ai "svdiagnostic/services/intelligence"
	"svdiagnostic/services/payment"
	"svdiagnostic/services/session"
	"svdiagnostic/utils"
	"svdiagnostic/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{booking.ErrEmptyCart, http.StatusUnprocessableEntity},
	{booking.ErrUnknownTest, http.StatusBadRequest},
	{booking.ErrBookingNotFound, http.StatusNotFound},
	{booking.ErrTerminalStatus, http.StatusConflict},
	{session.ErrUnknownPage, http.StatusBadRequest},
	{session.ErrInvalidMobile, http.StatusBadRequest},
	{session.ErrLogoutNotConfirmed, http.StatusBadRequest},
	{session.ErrLocationUnavailable, http.StatusUnprocessableEntity},
	{session.ErrInvalidRating, http.StatusBadRequest},
	{session.ErrNothingToReview, http.StatusConflict},
	{session.ErrAlreadyInCart, http.StatusConflict},
	{payment.ErrPaymentNotFound, http.StatusNotFound},
	{payment.ErrUnsupportedMethod, http.StatusBadRequest},
	{payment.ErrCheckoutInProgress, http.StatusConflict},
	{payment.ErrCheckoutSettled, http.StatusConflict},
	{ai.ErrEmptySymptoms, http.StatusBadRequest},
	{views.ErrNoActiveBooking, http.StatusNotFound},
	{views.ErrUnknownFilter, http.StatusBadRequest},
}

// respondError maps a domain error to its HTTP status. Anything unknown is a
// 500.
func respondError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		utils.JSONFieldError(c, verr.Field, verr.Message)
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			utils.JSONError(c, e.status, e.err.Error(), err.Error())
			return
		}
	}
	getLogger(c).Error("request failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred. Please try again later.")
}
