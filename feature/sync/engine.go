package sync

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strconv"
	"time"

	"fleet-console/feature/sync/models"

	"gorm.io/gorm"
)

// Category labels used in producer-visible error strings. The fleet
// orchestrator matches on these, so they are part of the contract.
const (
	labelAgent        = "Agent sync"
	labelExecution    = "Execution log"
	labelTask         = "Task sync"
	labelNotification = "Notification"
)

// engine applies one normalized batch against a single transaction.
// Per-item failures become entries in the result and processing
// continues; only infrastructure errors abort the run (and with it the
// surrounding transaction).
type engine struct {
	tx     *gorm.DB
	res    *resolver
	result *models.BatchResult
}

func newEngine(tx *gorm.DB) *engine {
	return &engine{
		tx:     tx,
		res:    &resolver{tx: tx},
		result: models.NewBatchResult(),
	}
}

// run processes the four categories in fixed order. Agents go first so
// that executions referencing an agent created in the same batch always
// resolve. Within a category, items are applied in input order.
func (e *engine) run(ctx context.Context, req *SyncRequest) error {
	now := time.Now().UTC()

	if err := e.syncAgents(ctx, req.Agents, now); err != nil {
		return err
	}
	if err := e.syncExecutions(ctx, req.Executions); err != nil {
		return err
	}
	if err := e.syncTasks(ctx, req.Tasks); err != nil {
		return err
	}
	return e.syncNotifications(ctx, req.Notifications)
}

func (e *engine) syncAgents(ctx context.Context, payloads []AgentPayload, now time.Time) error {
	for _, p := range payloads {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := p.Name
		if key == "" {
			key = "unknown"
		}

		item, err := normalizeAgent(p, now)
		if err != nil {
			e.result.AddError(labelAgent, key, err)
			continue
		}

		if err := e.applyAgent(item); err != nil {
			if isInfraError(err) {
				return err
			}
			e.result.AddError(labelAgent, key, err)
			continue
		}

		e.result.Synced.Agents++
	}
	return nil
}

// applyAgent upserts by name: existing agents get their mutable fields
// overwritten, new agents are created with dept fixed at creation time.
func (e *engine) applyAgent(item agentItem) error {
	existing, found, err := e.res.resolveAgent(item.Name)
	if err != nil {
		return err
	}

	if !found {
		agent := models.Agent{
			Name:        item.Name,
			Dept:        item.Dept,
			Status:      item.Status,
			Score:       item.Score,
			TasksToday:  item.TasksToday,
			ErrorsToday: item.ErrorsToday,
			LastRun:     item.LastRun,
		}
		return e.tx.Create(&agent).Error
	}

	// Dept is deliberately not in the update set.
	return e.tx.Model(existing).Updates(map[string]any{
		"status":       item.Status,
		"score":        item.Score,
		"tasks_today":  item.TasksToday,
		"errors_today": item.ErrorsToday,
		"last_run":     item.LastRun,
	}).Error
}

func (e *engine) syncExecutions(ctx context.Context, payloads []ExecutionPayload) error {
	for _, p := range payloads {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := p.AgentName
		if key == "" {
			key = "unknown"
		}

		item, err := normalizeExecution(p)
		if err != nil {
			e.result.AddError(labelExecution, key, err)
			continue
		}

		if err := e.applyExecution(item); err != nil {
			if isInfraError(err) {
				return err
			}
			e.result.AddError(labelExecution, key, err)
			continue
		}

		e.result.Synced.Executions++
	}
	return nil
}

func (e *engine) applyExecution(item executionItem) error {
	agent, err := e.res.resolveAgentForExecution(item.AgentName)
	if err != nil {
		return err
	}

	exec := models.Execution{
		AgentID:      agent.ID,
		StartedAt:    item.StartedAt,
		CompletedAt:  item.CompletedAt,
		DurationMs:   item.DurationMs,
		Status:       item.Status,
		ErrorMessage: item.ErrorMessage,
		TokensUsed:   item.TokensUsed,
		Model:        item.Model,
	}
	return e.tx.Create(&exec).Error
}

func (e *engine) syncTasks(ctx context.Context, payloads []TaskPayload) error {
	for _, p := range payloads {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := taskKey(p)

		op, err := normalizeTask(p)
		if err != nil {
			e.result.AddError(labelTask, key, err)
			continue
		}

		if err := e.applyTask(op); err != nil {
			if isInfraError(err) {
				return err
			}
			e.result.AddError(labelTask, key, err)
			continue
		}

		e.result.Synced.Tasks++
	}
	return nil
}

// taskKey picks the natural key for error reporting: the id when
// updating, the description when creating.
func taskKey(p TaskPayload) string {
	if p.TaskID != nil {
		return strconv.FormatUint(uint64(*p.TaskID), 10)
	}
	if p.Task != "" {
		return p.Task
	}
	return "unknown"
}

func (e *engine) applyTask(op taskOp) error {
	if op.Update != nil {
		return e.applyTaskUpdate(op.Update)
	}
	return e.applyTaskCreate(op.Create)
}

func (e *engine) applyTaskCreate(c *taskCreate) error {
	task := models.Task{
		Description: c.Description,
		Priority:    c.Priority,
		Status:      c.Status,
		AgentName:   c.AgentName,
		Output:      c.Output,
		DurationMs:  c.DurationMs,
		TokensUsed:  c.TokensUsed,
		CompletedAt: c.CompletedAt,
	}
	return e.tx.Create(&task).Error
}

// applyTaskUpdate applies a partial update: only the fields present in
// the payload are written.
func (e *engine) applyTaskUpdate(u *taskUpdate) error {
	task, err := e.res.resolveTask(u.ID)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.Output != nil {
		updates["output"] = *u.Output
	}
	if u.DurationMs != nil {
		updates["duration_ms"] = *u.DurationMs
	}
	if u.TokensUsed != nil {
		updates["tokens_used"] = *u.TokensUsed
	}
	if u.CompletedAt != nil {
		updates["completed_at"] = *u.CompletedAt
	}

	// An id-only item is a valid no-op progress ping.
	if len(updates) == 0 {
		return nil
	}

	return e.tx.Model(task).Updates(updates).Error
}

func (e *engine) syncNotifications(ctx context.Context, payloads []NotificationPayload) error {
	for _, p := range payloads {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := p.Title
		if key == "" {
			key = "unknown"
		}

		item, err := normalizeNotification(p)
		if err != nil {
			e.result.AddError(labelNotification, key, err)
			continue
		}

		notif := models.Notification{
			Title:   item.Title,
			Message: item.Message,
			Type:    item.Type,
			Link:    item.Link,
			Read:    item.Read,
		}
		if err := e.tx.Create(&notif).Error; err != nil {
			if isInfraError(err) {
				return err
			}
			e.result.AddError(labelNotification, key, err)
			continue
		}

		e.result.Synced.Notifications++
	}
	return nil
}

// isInfraError separates store-level outages from per-item rejections.
// Infrastructure errors abort the whole batch and roll back the
// transaction; everything else is a business-level outcome reported in
// the result.
func isInfraError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, sql.ErrTxDone) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidDB)
}
