package handlers

import (
	"context"
	"net/http"
	"strconv"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

// GetHistory lists a user's attempts, newest first.
func (h *AttemptHandler) GetHistory(c *gin.Context) {
	userID := c.Param("id")
	attempts, err := h.Service.GetHistory(context.Background(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *AttemptHandler) GetDetail(c *gin.Context) {
	attemptID := c.Param("id")
	attempt, err := h.Service.GetDetail(context.Background(), attemptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// GetDayResult returns the latest daily attempt for a roadmap day.
func (h *AttemptHandler) GetDayResult(c *gin.Context) {
	roadmapID := c.Param("roadmapId")
	dayNumber, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be a number"})
		return
	}
	attempt, err := h.Service.GetDayResult(context.Background(), roadmapID, dayNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}
