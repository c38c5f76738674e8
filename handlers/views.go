package handlers

import (
	"net/http"
	"strconv"
	"time"

	"svdiagnostic/services/session"
	"svdiagnostic/views"

	"github.com/gin-gonic/gin"
)

// ViewHandler serves one page model per route.
type ViewHandler struct {
	Sessions *session.Manager
	Now      func() time.Time
}

func NewViewHandler(sessions *session.Manager) *ViewHandler {
	return &ViewHandler{Sessions: sessions, Now: time.Now}
}

func (h *ViewHandler) state(c *gin.Context) (session.State, bool) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return session.State{}, false
	}
	state, err := h.Sessions.State(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return session.State{}, false
	}
	return state, true
}

func (h *ViewHandler) Home(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, views.Home(state, c.Query("category"), c.Query("search")))
}

func (h *ViewHandler) Booking(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, views.Booking(state))
}

func (h *ViewHandler) Confirmation(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	whatsapp, _ := strconv.ParseBool(c.Query("whatsapp"))
	v, err := views.Confirmation(state, whatsapp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ViewHandler) Tracking(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	v, err := views.Tracking(state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ViewHandler) Reports(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	v, err := views.Reports(state, views.ReportFilter(c.Query("filter")), h.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
