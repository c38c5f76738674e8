package handlers

import (
	"net/http"

	"svdiagnostic/middleware"
	"svdiagnostic/models"
	"svdiagnostic/services/payment"
	"svdiagnostic/services/session"
	"svdiagnostic/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the device's page, cart, form and account actions.
type SessionHandler struct {
	Sessions *session.Manager
	Checkout *payment.Checkout
}

func NewSessionHandler(sessions *session.Manager, checkout *payment.Checkout) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Checkout: checkout}
}

// dispatch runs one action for the calling device and writes the new state.
func (h *SessionHandler) dispatch(c *gin.Context, a session.Action, status int) (session.State, bool) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return session.State{}, false
	}
	state, err := h.Sessions.Dispatch(c.Request.Context(), deviceID, a)
	if err != nil {
		respondError(c, err)
		return session.State{}, false
	}
	c.JSON(status, state)
	return state, true
}

func (h *SessionHandler) GetState(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	state, err := h.Sessions.State(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) Navigate(c *gin.Context) {
	var input struct {
		Page session.Page `json:"page" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	state, ok := h.dispatch(c, session.Navigate{Page: input.Page}, http.StatusOK)
	if !ok || state.Page == session.PageBooking {
		return
	}
	// Leaving the booking page abandons any payment dialog.
	if n := h.Checkout.CancelDevice(c.GetString(middleware.DeviceContextKey)); n > 0 {
		getLogger(c).Info("Abandoned checkout on navigation", zap.Int("cancelled", n))
	}
}

func (h *SessionHandler) AddToCart(c *gin.Context) {
	var input struct {
		TestID string `json:"testId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	h.dispatch(c, session.AddToCart{TestID: input.TestID, IfAbsent: true}, http.StatusOK)
}

func (h *SessionHandler) RemoveFromCart(c *gin.Context) {
	h.dispatch(c, session.RemoveFromCart{TestID: c.Param("testId")}, http.StatusOK)
}

func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	var draft models.BookingDetails
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	h.dispatch(c, session.UpdateDraft{Draft: draft}, http.StatusOK)
}

// DetectLocation records the result of the device's location query. Clients
// report a denied or failed lookup through the error field.
func (h *SessionHandler) DetectLocation(c *gin.Context) {
	var input struct {
		Lat   *float64 `json:"lat"`
		Lng   *float64 `json:"lng"`
		Error string   `json:"error"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	action := session.DetectLocation{Unavailable: input.Error != "" || input.Lat == nil || input.Lng == nil}
	if !action.Unavailable {
		action.Lat, action.Lng = *input.Lat, *input.Lng
	}
	h.dispatch(c, action, http.StatusOK)
}

func (h *SessionHandler) Login(c *gin.Context) {
	var input struct {
		Mobile string `json:"mobile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	h.dispatch(c, session.Login{Mobile: input.Mobile}, http.StatusOK)
}

func (h *SessionHandler) Logout(c *gin.Context) {
	var input struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if _, ok := h.dispatch(c, session.Logout{Confirmed: input.Confirm}, http.StatusOK); ok {
		h.Checkout.CancelDevice(c.GetString(middleware.DeviceContextKey))
	}
}

func (h *SessionHandler) SubmitFeedback(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	state, err := h.Sessions.State(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	fb := models.Feedback{Rating: input.Rating, Comment: input.Comment}
	if len(state.History) > 0 {
		fb.PatientName = state.History[0].PatientName
	}
	h.dispatch(c, session.SubmitFeedback{Feedback: fb}, http.StatusOK)
}

func (h *SessionHandler) MarkInstalled(c *gin.Context) {
	h.dispatch(c, session.MarkInstalled{}, http.StatusOK)
}
