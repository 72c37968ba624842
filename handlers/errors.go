package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PranjalBarnwal/quizApp/services"
)

// respondError maps service errors onto the HTTP taxonomy: 401 for identity
// failures, 403 for authorization, 404 for missing resources, 400 for bad
// input and invalid attempt-state transitions.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrAttemptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrAlreadyStarted),
		errors.Is(err, services.ErrNotStarted),
		errors.Is(err, services.ErrTimeExpired),
		errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
