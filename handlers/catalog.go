package handlers

import (
	"net/http"

	"svdiagnostic/services/catalog"

	"github.com/gin-gonic/gin"
)

// GetCatalog lists tests, optionally filtered by ?category= and ?search=.
func GetCatalog(c *gin.Context) {
	category := c.DefaultQuery("category", catalog.CategoryAll)
	tests := catalog.Filter(category, c.Query("search"))
	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories(),
		"tests":      tests,
	})
}

func GetTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeSlots": catalog.TimeSlots()})
}
