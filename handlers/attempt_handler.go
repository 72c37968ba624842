package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PranjalBarnwal/quizApp/middleware"
	"github.com/PranjalBarnwal/quizApp/services"
)

type AttemptHandler struct {
	attemptService *services.AttemptService
}

func NewAttemptHandler(attemptService *services.AttemptService) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
	}
}

func (h *AttemptHandler) Start(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	quizID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.attemptService.Start(c.Request.Context(), user.ID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Quiz started successfully",
		"quiz_id":  result.QuizID,
		"duration": result.Duration,
	})
}

func (h *AttemptHandler) Submit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	quizID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), user.ID, quizID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz submitted successfully",
		"score":   result.Score,
		"answers": result.Answers,
	})
}

func (h *AttemptHandler) Response(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	quizID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.attemptService.Response(c.Request.Context(), user.ID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
