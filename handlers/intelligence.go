package handlers

import (
	"net/http"

	"svdiagnostic/models"
	ai "svdiagnostic/services/intelligence"
	"svdiagnostic/utils"

	"github.com/gin-gonic/gin"
)

type AdviceHandler struct {
	Advice *ai.AdviceService
}

func NewAdviceHandler(advice *ai.AdviceService) *AdviceHandler {
	return &AdviceHandler{Advice: advice}
}

// GetAdvice suggests lab tests for free-text symptoms. Model outages still
// answer 200 with the fallback text.
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
	var req models.AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	advice, err := h.Advice.GetAdvice(c.Request.Context(), req.Symptoms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AdviceResponse{Advice: advice})
}
