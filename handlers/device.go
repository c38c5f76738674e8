package handlers

import (
	"net/http"

	"svdiagnostic/middleware"
	"svdiagnostic/utils"

	"github.com/gin-gonic/gin"
)

// getDeviceID reads the id stored by DeviceMiddleware. It writes the error
// response itself and returns false when the id is absent.
func getDeviceID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.DeviceContextKey)
	if !exists {
		utils.JSONError(c, http.StatusInternalServerError, "Device ID not found in context", "")
		return "", false
	}
	deviceID, ok := raw.(string)
	if !ok || deviceID == "" {
		utils.JSONError(c, http.StatusInternalServerError, "Invalid device ID in context", "")
		return "", false
	}
	return deviceID, true
}
