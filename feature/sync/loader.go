package sync

import (
	"time"

	"fleet-console/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	sweeper *Sweeper
}

// NewFeature creates the fleet sync feature. store may be nil to
// disable batch archiving.
func NewFeature(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger, cfg Config) *Feature {
	svc := NewService(db, store, bucket, logger, cfg)
	h := NewHandler(svc)
	sw := NewSweeper(svc, logger, time.Duration(cfg.StaleAfterMinutes)*time.Minute)
	return &Feature{service: svc, handler: h, sweeper: sw}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Sweeper exposes the stale-agent sweeper for cron scheduling.
func (f *Feature) Sweeper() *Sweeper {
	return f.sweeper
}
