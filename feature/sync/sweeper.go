package sync

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically marks agents that stopped reporting as unknown.
// It implements cron.Job and is scheduled from the start command.
type Sweeper struct {
	service    *Service
	logger     *zap.Logger
	staleAfter time.Duration
}

// NewSweeper creates a sweeper with the given staleness threshold.
func NewSweeper(service *Service, logger *zap.Logger, staleAfter time.Duration) *Sweeper {
	return &Sweeper{service: service, logger: logger, staleAfter: staleAfter}
}

// Run executes one sweep. Errors are logged, not propagated; the next
// scheduled run retries naturally.
func (sw *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := sw.service.SweepStaleAgents(ctx, sw.staleAfter)
	if err != nil {
		sw.logger.Error("Stale agent sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		sw.logger.Info("Marked stale agents unknown",
			zap.Int64("agents", n),
			zap.Duration("stale_after", sw.staleAfter),
		)
	}
}
