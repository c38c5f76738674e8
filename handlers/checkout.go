package handlers

import (
	"errors"
	"io"
	"net/http"

	"svdiagnostic/services/payment"
	"svdiagnostic/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	Checkout *payment.Checkout
}

func NewCheckoutHandler(checkout *payment.Checkout) *CheckoutHandler {
	return &CheckoutHandler{Checkout: checkout}
}

// BeginCheckout starts charging the cart total. The charge completes in the
// background; poll GetCheckout for the outcome.
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	var input struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	record, err := h.Checkout.Begin(c.Request.Context(), deviceID, input.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, record)
}

func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	record, err := h.Checkout.Status(deviceID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *CheckoutHandler) CancelCheckout(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	record, err := h.Checkout.Cancel(deviceID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
