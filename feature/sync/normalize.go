package sync

import (
	"errors"
	"fmt"
	"time"

	"fleet-console/feature/sync/models"
)

// errValidation marks per-item normalization failures. They are
// reported in the batch result and never abort the batch.
var errValidation = errors.New("validation failed")

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errValidation, fmt.Sprintf(format, args...))
}

var agentStatuses = map[string]bool{
	models.AgentStatusRunning: true,
	models.AgentStatusIdle:    true,
	models.AgentStatusError:   true,
	models.AgentStatusUnknown: true,
}

var executionStatuses = map[string]bool{
	models.ExecutionStatusSuccess: true,
	models.ExecutionStatusError:   true,
	models.ExecutionStatusRunning: true,
}

var taskStatuses = map[string]bool{
	models.TaskStatusPending:   true,
	models.TaskStatusRunning:   true,
	models.TaskStatusCompleted: true,
	models.TaskStatusFailed:    true,
}

// agentItem is a validated agent report with defaults applied.
type agentItem struct {
	Name        string
	Dept        string
	Status      string
	Score       float64
	TasksToday  int
	ErrorsToday int
	LastRun     time.Time
}

// normalizeAgent validates one agent payload and applies defaults.
// The now parameter backs the lastRun default so callers control the clock.
func normalizeAgent(p AgentPayload, now time.Time) (agentItem, error) {
	if p.Name == "" {
		return agentItem{}, validationErr("name is required")
	}
	if p.Dept == "" {
		return agentItem{}, validationErr("dept is required")
	}

	item := agentItem{
		Name:    p.Name,
		Dept:    p.Dept,
		Status:  models.AgentStatusUnknown,
		LastRun: now,
	}

	if p.Status != "" {
		if !agentStatuses[p.Status] {
			return agentItem{}, validationErr("invalid status %q", p.Status)
		}
		item.Status = p.Status
	}
	if p.Score != nil {
		item.Score = *p.Score
	}
	if p.TasksToday != nil {
		item.TasksToday = *p.TasksToday
	}
	if p.ErrorsToday != nil {
		item.ErrorsToday = *p.ErrorsToday
	}
	if p.LastRun != nil {
		item.LastRun = *p.LastRun
	}

	return item, nil
}

// executionItem is a validated execution log entry.
type executionItem struct {
	AgentName    string
	StartedAt    time.Time
	CompletedAt  *time.Time
	DurationMs   *int64
	Status       string
	ErrorMessage *string
	TokensUsed   int64
	Model        *string
}

func normalizeExecution(p ExecutionPayload) (executionItem, error) {
	if p.AgentName == "" {
		return executionItem{}, validationErr("agentName is required")
	}
	if p.StartedAt == nil {
		return executionItem{}, validationErr("startedAt is required")
	}
	if p.Status == "" {
		return executionItem{}, validationErr("status is required")
	}
	if !executionStatuses[p.Status] {
		return executionItem{}, validationErr("invalid status %q", p.Status)
	}

	item := executionItem{
		AgentName:    p.AgentName,
		StartedAt:    *p.StartedAt,
		CompletedAt:  p.CompletedAt,
		DurationMs:   p.DurationMs,
		Status:       p.Status,
		ErrorMessage: p.ErrorMessage,
		Model:        p.Model,
	}
	if p.TokensUsed != nil {
		item.TokensUsed = *p.TokensUsed
	}

	return item, nil
}

// taskCreate is the create variant of a task item.
type taskCreate struct {
	Description string
	Priority    int
	Status      string
	AgentName   *string
	Output      *string
	DurationMs  *int64
	TokensUsed  int64
	CompletedAt *time.Time
}

// taskUpdate is the update variant. Only the fields present in the
// payload are carried; nil means "leave untouched".
type taskUpdate struct {
	ID          uint
	Status      *string
	Output      *string
	DurationMs  *int64
	TokensUsed  *int64
	CompletedAt *time.Time
}

// taskOp is a two-variant sum: exactly one of Create or Update is set.
// The routing decision is made once, here, on the presence of taskId.
type taskOp struct {
	Create *taskCreate
	Update *taskUpdate
}

func normalizeTask(p TaskPayload) (taskOp, error) {
	if p.Status != "" && !taskStatuses[p.Status] {
		return taskOp{}, validationErr("invalid status %q", p.Status)
	}

	if p.TaskID != nil {
		upd := &taskUpdate{
			ID:          *p.TaskID,
			Output:      p.Output,
			DurationMs:  p.DurationMs,
			TokensUsed:  p.TokensUsed,
			CompletedAt: p.CompletedAt,
		}
		if p.Status != "" {
			status := p.Status
			upd.Status = &status
		}
		return taskOp{Update: upd}, nil
	}

	// Create path: a description is required only here.
	if p.Task == "" {
		return taskOp{}, validationErr("task description is required")
	}

	create := &taskCreate{
		Description: p.Task,
		Priority:    1,
		Status:      models.TaskStatusPending,
		AgentName:   p.AgentName,
		Output:      p.Output,
		DurationMs:  p.DurationMs,
		CompletedAt: p.CompletedAt,
	}
	if p.Priority != nil {
		if *p.Priority < 1 {
			return taskOp{}, validationErr("priority must be a positive integer")
		}
		create.Priority = *p.Priority
	}
	if p.Status != "" {
		create.Status = p.Status
	}
	if p.TokensUsed != nil {
		create.TokensUsed = *p.TokensUsed
	}

	return taskOp{Create: create}, nil
}

// notificationItem is a validated operator message.
type notificationItem struct {
	Title   string
	Message string
	Type    string
	Link    *string
	Read    bool
}

func normalizeNotification(p NotificationPayload) (notificationItem, error) {
	if p.Title == "" {
		return notificationItem{}, validationErr("title is required")
	}
	if p.Message == "" {
		return notificationItem{}, validationErr("message is required")
	}

	item := notificationItem{
		Title:   p.Title,
		Message: p.Message,
		Type:    models.NotificationTypeInfo,
		Link:    p.Link,
	}
	if p.Type != "" {
		item.Type = p.Type
	}
	if p.Read != nil {
		item.Read = *p.Read
	}

	return item, nil
}
