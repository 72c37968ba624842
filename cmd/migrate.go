package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/PranjalBarnwal/quizApp/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := config.InitDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if err := autoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Printf("migrations applied")
			return nil
		},
	}
}
