package handlers

import (
	"context"
	"net/http"
	"strconv"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// MarkResourceComplete marks one resource done. The response shape is the
// same whether the resource was newly completed or already complete.
func (h *ProgressHandler) MarkResourceComplete(c *gin.Context) {
	roadmapID := c.Param("roadmapId")
	resourceID := c.Param("resourceId")
	dayNumber, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be a number"})
		return
	}

	if err := h.Service.MarkComplete(context.Background(), roadmapID, dayNumber, resourceID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": true})
}

// GetTaskProgress returns the recomputed progress snapshot for a roadmap.
func (h *ProgressHandler) GetTaskProgress(c *gin.Context) {
	roadmapID := c.Param("roadmapId")
	snapshot, err := h.Service.GetTaskProgress(context.Background(), roadmapID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
