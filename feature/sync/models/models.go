package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Agent status values mirrored from the fleet.
const (
	AgentStatusRunning = "running"
	AgentStatusIdle    = "idle"
	AgentStatusError   = "error"
	AgentStatusUnknown = "unknown"
)

// Execution status values.
const (
	ExecutionStatusSuccess = "success"
	ExecutionStatusError   = "error"
	ExecutionStatusRunning = "running"
)

// Task status values.
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// NotificationTypeInfo is the default notification category.
const NotificationTypeInfo = "info"

// Agent mirrors the persistent state of one autonomous worker process.
// Name is the natural key: the sync endpoint upserts by it and never
// creates duplicates. Agents are never deleted by sync.
type Agent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:191;uniqueIndex;not null" json:"name"`
	Dept        string    `gorm:"size:64;not null" json:"dept"`
	Status      string    `gorm:"size:16;not null;default:unknown" json:"status"`
	Score       float64   `json:"score"`
	TasksToday  int       `json:"tasks_today"`
	ErrorsToday int       `json:"errors_today"`
	LastRun     time.Time `json:"last_run"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Execution is one run of an agent. Executions reference agents by
// resolved id, never by name string, and are immutable once created;
// corrections arrive as new executions.
type Execution struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AgentID      uint       `gorm:"index;not null" json:"agent_id"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty"`
	Status       string     `gorm:"size:16;not null" json:"status"`
	ErrorMessage *string    `gorm:"size:1024" json:"error_message,omitempty"`
	TokensUsed   int64      `json:"tokens_used"`
	Model        *string    `gorm:"size:64" json:"model,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Task is a unit of queued, in-progress or completed work. Tasks are
// created by sync calls without an id and progressed by later calls
// carrying the id returned from creation.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Description string     `gorm:"size:512;not null" json:"description"`
	Priority    int        `gorm:"not null;default:1" json:"priority"`
	Status      string     `gorm:"size:16;not null;default:pending" json:"status"`
	AgentName   *string    `gorm:"size:191" json:"agent_name,omitempty"`
	Output      *string    `json:"output,omitempty"`
	DurationMs  *int64     `json:"duration_ms,omitempty"`
	TokensUsed  int64      `json:"tokens_used"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Notification is a one-shot operator message. Create-only from the
// sync endpoint's point of view.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:191;not null" json:"title"`
	Message   string    `gorm:"size:1024;not null" json:"message"`
	Type      string    `gorm:"size:32;not null;default:info" json:"type"`
	Link      *string   `gorm:"size:512" json:"link,omitempty"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// SyncCounts holds per-category success counters for one batch.
type SyncCounts struct {
	Agents        int `json:"agents"`
	Executions    int `json:"executions"`
	Tasks         int `json:"tasks"`
	Notifications int `json:"notifications"`
}

// BatchResult is the transient outcome of one sync call: per-category
// success counters plus an ordered list of per-item errors. Every input
// item ends up either in a counter or in the error list.
type BatchResult struct {
	Synced SyncCounts `json:"synced"`
	Errors []string   `json:"errors"`
}

// NewBatchResult returns an empty result. Errors is non-nil so the
// JSON encoding is always an array, never null.
func NewBatchResult() *BatchResult {
	return &BatchResult{Errors: []string{}}
}

// AddError records a per-item failure tagged with its category label and
// natural key. The resulting strings are part of the producer-visible
// contract; the fleet orchestrator matches on them.
func (r *BatchResult) AddError(category, key string, cause error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s error (%s): %s", category, key, cause))
}

// HasErrors reports whether any item in the batch failed.
func (r *BatchResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Migrate applies the schema for all fleet entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Agent{}, &Execution{}, &Task{}, &Notification{})
}
