package cmd

import (
	"log"

	"fleet-console/core/config"
	"fleet-console/core/database"
	"fleet-console/core/logger"
	syncmodels "fleet-console/feature/sync/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd applies the schema to the configured database and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Connects to the configured database and runs schema migrations for all fleet entities.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		if err := syncmodels.Migrate(db); err != nil {
			logg.Fatal("Migration failed", zap.Error(err))
		}

		logg.Info("Migration complete", zap.String("driver", cfg.Database.Driver))
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
