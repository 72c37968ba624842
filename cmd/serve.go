package cmd

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/PranjalBarnwal/quizApp/config"
	"github.com/PranjalBarnwal/quizApp/handlers"
	"github.com/PranjalBarnwal/quizApp/middleware"
	"github.com/PranjalBarnwal/quizApp/routes"
	"github.com/PranjalBarnwal/quizApp/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate database models
	if err := autoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis (optional; nil disables the quiz cache)
	redisClient := config.InitRedis(cfg)
	var quizCache *services.QuizCache
	if redisClient != nil {
		quizCache = services.NewQuizCache(redisClient, cfg.CacheTTL)
	}

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	quizService := services.NewQuizService(db, quizCache)
	attemptService := services.NewAttemptService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS())
	routes.SetupRoutes(router, authHandler, quizHandler, attemptHandler, authService)

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr())
	return router.Run(cfg.ListenAddr())
}
