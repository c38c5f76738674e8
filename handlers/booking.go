package handlers

import (
	"net/http"

	"svdiagnostic/services/booking"
	"svdiagnostic/services/session"
	"svdiagnostic/utils"
	"svdiagnostic/views"

	"github.com/gin-gonic/gin"
)

// ListBookings returns the device's history, newest first.
func (h *SessionHandler) ListBookings(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	state, err := h.Sessions.State(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": state.History})
}

func (h *SessionHandler) GetActiveBooking(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	state, err := h.Sessions.State(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if state.ActiveBooking == nil {
		respondError(c, views.ErrNoActiveBooking)
		return
	}
	c.JSON(http.StatusOK, state.ActiveBooking)
}

func (h *SessionHandler) SelectBooking(c *gin.Context) {
	h.dispatch(c, session.SelectBooking{ID: c.Param("id")}, http.StatusOK)
}

// AdvanceBooking is the external trigger that moves a booking to its next
// status, e.g. from the lab's sample tracking.
func (h *SessionHandler) AdvanceBooking(c *gin.Context) {
	h.dispatch(c, session.AdvanceBooking{ID: c.Param("id")}, http.StatusOK)
}

// DownloadReport is only offered once the report is ready. There is no PDF
// behind it yet.
func (h *SessionHandler) DownloadReport(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	state, err := h.Sessions.State(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	b, found := state.FindBooking(c.Param("id"))
	if !found {
		respondError(c, booking.ErrBookingNotFound)
		return
	}
	if !booking.IsTerminal(b.Status) {
		utils.JSONError(c, http.StatusConflict, "Report not ready", string(b.Status))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingId": b.ID,
		"available": false,
		"message":   "Online PDF reports are not available yet. Please collect your report from the centre.",
	})
}
