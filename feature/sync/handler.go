package sync

import (
	"time"

	"fleet-console/core/logger"
	"fleet-console/core/middleware/rayid"
	"fleet-console/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for fleet sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Post("/sync", h.HandleSync)
	group.Get("/sync", h.HandleHealth)
}

// HandleSync ingests one fleet state batch.
//
// A processed batch always returns 200, even when individual records
// failed: the errors array is the producer's only failure signal and
// its retry logic depends on that. 503 is reserved for infrastructure
// failure, after which the producer retries the whole batch (safe for
// agents, which upsert idempotently; executions and notifications may
// duplicate — producers dedupe at the source).
//
// @Summary Sync Fleet State
// @Description Accepts a batch of agent, execution, task and notification updates and reconciles them into the store in one transaction. Per-record failures are reported in the errors array; the batch itself still commits.
// @Tags sync
// @Accept json
// @Produce json
// @Param batch body sync.SyncRequest true "State batch"
// @Success 200 {object} models.BatchResult "Processed batch (possibly with per-record errors)"
// @Failure 400 {object} map[string]string "Undecodable payload"
// @Failure 503 {object} map[string]interface{} "Infrastructure failure, batch rolled back"
// @Router /api/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		l.Warn("Malformed sync payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	// Best-effort raw copy for replay before anything mutates.
	h.service.ArchiveBatch(c.Context(), rayid.FromCtx(c), c.Body())

	result, err := h.service.ProcessBatch(c.Context(), &req)
	if err != nil {
		l.Error("Sync batch aborted", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"synced": models.SyncCounts{},
			"error":  "sync failed, batch rolled back",
		})
	}

	return c.JSON(result)
}

// HandleHealth is the liveness probe for the sync route.
//
// @Summary Sync Liveness Probe
// @Description Performs a trivial store round trip and reports ok or degraded.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]string "Store reachable"
// @Failure 503 {object} map[string]string "Store unreachable"
// @Router /api/sync [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	status, err := h.service.Health(c.Context())

	resp := fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Health probe degraded", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
