package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	DeviceHeader     = "X-Device-ID"
	DeviceContextKey = "deviceID"
	maxDeviceIDLen   = 128
)

// DeviceMiddleware requires the X-Device-ID header and stores it under
// DeviceContextKey. The id selects the device's persisted state, so it is
// limited to a safe key alphabet.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceHeader)
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Missing required device details: X-Device-ID",
			})
			return
		}
		if !validDeviceID(deviceID) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Invalid X-Device-ID",
				"details": "use up to 128 letters, digits, '-', '_' or '.'",
			})
			return
		}

		c.Set(DeviceContextKey, deviceID)
		c.Next()
	}
}

func validDeviceID(id string) bool {
	if len(id) > maxDeviceIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
