package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx reply. Field names the form
// input that failed validation, when there is one.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ErrorHandler recovers panics into a 500 with the standard error body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes the standard error body. Server errors log at error
// level, client errors at warn.
func JSONError(c *gin.Context, status int, message string, details string) {
	writeError(c, status, ErrorResponse{Message: message, Details: details})
}

// JSONFieldError reports a 422 for one invalid form field.
func JSONFieldError(c *gin.Context, field, details string) {
	writeError(c, http.StatusUnprocessableEntity, ErrorResponse{
		Message: "Validation failed",
		Details: details,
		Field:   field,
	})
}

func writeError(c *gin.Context, status int, body ErrorResponse) {
	fields := []zap.Field{zap.Int("status", status), zap.String("details", body.Details)}
	if body.Field != "" {
		fields = append(fields, zap.String("field", body.Field))
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(body.Message, fields...)
	} else {
		GetLogger().Warn(body.Message, fields...)
	}
	c.JSON(status, body)
}
