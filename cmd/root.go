package cmd

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/PranjalBarnwal/quizApp/models"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizapp",
		Short: "Quiz service with timed, scored attempts",
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuizAttempt{},
		&models.AttemptAnswer{},
	)
}
