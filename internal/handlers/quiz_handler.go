package handlers

import (
	"context"
	"net/http"
	"strconv"

	"assessment-service/internal/models"
	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

// dayNumberQuery parses the optional day_number query parameter. A
// malformed value is rejected with a 400 and ok reports whether the
// request may proceed.
func dayNumberQuery(c *gin.Context) (dayNumber int, ok bool) {
	raw := c.Query("day_number")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_number must be a number"})
		return 0, false
	}
	return n, true
}

// GetQuiz returns the ordered question set for a phase. Daily quizzes are
// selected with roadmap_id and day_number query parameters.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	phase := models.Phase(c.Param("phase"))
	roadmapID := c.Query("roadmap_id")
	dayNumber, ok := dayNumberQuery(c)
	if !ok {
		return
	}

	questions, err := h.Service.GetQuiz(context.Background(), phase, roadmapID, dayNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"phase":     phase,
		"questions": questions,
	})
}

// SubmitQuiz grades a complete answer set and records the attempt.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers   []models.Answer `json:"answers" binding:"required"`
		RoadmapID string          `json:"roadmap_id"`
		DayNumber int             `json:"day_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	phase := models.Phase(c.Param("phase"))
	userID := c.GetHeader("X-User-ID")

	result, err := h.Service.SubmitQuiz(context.Background(), userID, phase, req.Answers, req.RoadmapID, req.DayNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetSession returns the persisted session for the caller, used by
// clients to resume a quiz after a reload.
func (h *QuizHandler) GetSession(c *gin.Context) {
	phase := models.Phase(c.Param("phase"))
	userID := c.GetHeader("X-User-ID")
	roadmapID := c.Query("roadmap_id")
	dayNumber, ok := dayNumberQuery(c)
	if !ok {
		return
	}

	persisted, err := h.Service.ResumeSession(context.Background(), userID, phase, roadmapID, dayNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, persisted)
}

// SaveSession write-throughs a client-driven session snapshot.
func (h *QuizHandler) SaveSession(c *gin.Context) {
	var req struct {
		Cursor    int             `json:"cursor"`
		Answers   []models.Answer `json:"answers"`
		RoadmapID string          `json:"roadmap_id"`
		DayNumber int             `json:"day_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	phase := models.Phase(c.Param("phase"))
	userID := c.GetHeader("X-User-ID")

	persisted := &models.PersistedSession{Cursor: req.Cursor, Answers: req.Answers}
	if err := h.Service.SaveSession(context.Background(), userID, phase, persisted, req.RoadmapID, req.DayNumber); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}
