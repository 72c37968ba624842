package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PranjalBarnwal/quizApp/handlers"
	"github.com/PranjalBarnwal/quizApp/middleware"
	"github.com/PranjalBarnwal/quizApp/services"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	attemptHandler *handlers.AttemptHandler,
	authService *services.AuthService,
) {
	// Auth routes (public)
	users := router.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}

	// Quiz routes (authenticated)
	quizzes := router.Group("/quizzes")
	quizzes.Use(middleware.AuthMiddleware(authService))
	{
		quizzes.GET("", quizHandler.ListQuizzes)

		// Authoring (admin only)
		quizzes.POST("", middleware.RequireAdmin(), quizHandler.CreateQuiz)
		quizzes.POST("/:id/questions", middleware.RequireAdmin(), quizHandler.AddQuestion)

		// Attempt lifecycle
		quizzes.POST("/:id/start", attemptHandler.Start)
		quizzes.POST("/:id/submit", attemptHandler.Submit)
		quizzes.GET("/:id/response", attemptHandler.Response)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
