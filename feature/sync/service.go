package sync

import (
	"context"
	"fmt"
	"time"

	"fleet-console/core/storage"
	"fleet-console/feature/sync/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns the transactional unit of work around the reconciliation
// engine. It is stateless between calls; the store is the only shared
// mutable resource.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	archiver *Archiver
	cfg      Config
}

// NewService creates the sync service. store may be nil, in which case
// batch archiving is disabled.
func NewService(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger, cfg Config) *Service {
	svc := &Service{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}
	if store != nil {
		svc.archiver = NewArchiver(store, bucket, logger)
	}
	return svc
}

// ProcessBatch reconciles one sync batch inside a single transaction.
//
// The transaction commits whenever the engine runs to completion, no
// matter how many per-item soft failures it recorded: those are
// business outcomes the caller needs visibility into, not reasons to
// discard an otherwise valid batch. Only infrastructure errors (store
// unreachable, deadline fired mid-batch) make this return a non-nil
// error, and then the whole batch is rolled back.
func (s *Service) ProcessBatch(ctx context.Context, req *SyncRequest) (*models.BatchResult, error) {
	var result *models.BatchResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eng := newEngine(tx)
		if err := eng.run(ctx, req); err != nil {
			return err
		}
		result = eng.result
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sync batch failed: %w", err)
	}

	if result.HasErrors() {
		s.logger.Warn("Sync batch completed with errors",
			zap.Int("agents", result.Synced.Agents),
			zap.Int("executions", result.Synced.Executions),
			zap.Int("tasks", result.Synced.Tasks),
			zap.Int("notifications", result.Synced.Notifications),
			zap.Int("errors", len(result.Errors)),
		)
	} else {
		s.logger.Info("Sync batch completed",
			zap.Int("agents", result.Synced.Agents),
			zap.Int("executions", result.Synced.Executions),
			zap.Int("tasks", result.Synced.Tasks),
			zap.Int("notifications", result.Synced.Notifications),
		)
	}

	return result, nil
}

// ArchiveBatch stores the raw payload of a batch for later replay.
// Best-effort: a nil archiver or a storage failure never affects the
// batch outcome.
func (s *Service) ArchiveBatch(ctx context.Context, rayID string, payload []byte) {
	if s.archiver == nil {
		return
	}
	s.archiver.Archive(ctx, rayID, payload)
}

// Health performs a trivial store round trip for the liveness probe.
func (s *Service) Health(ctx context.Context) (string, error) {
	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return "degraded", err
	}
	return "ok", nil
}

// SweepStaleAgents marks agents silent for longer than staleAfter as
// unknown. Returns the number of agents transitioned.
func (s *Service) SweepStaleAgents(ctx context.Context, staleAfter time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)
	res := s.db.WithContext(ctx).
		Model(&models.Agent{}).
		Where("last_run < ? AND status <> ?", cutoff, models.AgentStatusUnknown).
		Update("status", models.AgentStatusUnknown)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep stale agents: %w", res.Error)
	}
	return res.RowsAffected, nil
}
