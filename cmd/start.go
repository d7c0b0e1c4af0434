package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fleet-console/core/config"
	"fleet-console/core/database"
	"fleet-console/core/loader"
	"fleet-console/core/logger"
	"fleet-console/core/middleware/auth"
	"fleet-console/core/middleware/rayid"
	"fleet-console/core/storage"
	"fleet-console/feature/sync"
	syncmodels "fleet-console/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "fleet-console/docs/swagger"
)

// @title Fleet Console API
// @version 1.0
// @description API for syncing autonomous agent fleet state.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the fleet console server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		// The store is the whole point of this service: refuse to start
		// without it.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		if err := syncmodels.Migrate(db); err != nil {
			logg.Fatal("Schema migration failed", zap.Error(err))
		}
		logg.Info("Connected to fleet database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 5. Initialize Storage (Optional)
		// Batch archiving is best-effort; the sync endpoint works without it.
		var store storage.Client
		if cfg.Sync.ArchiveEnabled {
			s, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Optional storage client failed, batch archiving disabled", zap.Error(err))
			} else {
				store = s
			}
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		syncFeature := sync.NewFeature(db, store, cfg.Storage.Bucket, logg, cfg.Sync)
		mgr.Register(syncFeature)

		// Middleware Registration
		// RayID must be first so every request is traceable.
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Background sweeper for stale agents
		scheduler := cron.New()
		if cfg.Sync.SweepSchedule != "" {
			if _, err := scheduler.AddJob(cfg.Sync.SweepSchedule, syncFeature.Sweeper()); err != nil {
				logg.Fatal("Invalid sweep schedule", zap.String("schedule", cfg.Sync.SweepSchedule), zap.Error(err))
			}
			scheduler.Start()
			logg.Info("Stale agent sweeper scheduled", zap.String("schedule", cfg.Sync.SweepSchedule))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cronCtx := scheduler.Stop()
		<-cronCtx.Done()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
