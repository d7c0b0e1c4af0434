package sync

import "time"

// SyncRequest is the wire shape of one sync batch. All four lists are
// independent and optional; agents ship whatever changed since their
// last report.
type SyncRequest struct {
	Agents        []AgentPayload        `json:"agents"`
	Executions    []ExecutionPayload    `json:"executions"`
	Tasks         []TaskPayload         `json:"tasks"`
	Notifications []NotificationPayload `json:"notifications"`
}

// AgentPayload is one agent state report. Name and dept are required;
// everything else gets defaults at normalization.
type AgentPayload struct {
	Name        string     `json:"name"`
	Dept        string     `json:"dept"`
	Status      string     `json:"status"`
	Score       *float64   `json:"score"`
	TasksToday  *int       `json:"tasksToday"`
	ErrorsToday *int       `json:"errorsToday"`
	LastRun     *time.Time `json:"lastRun"`
}

// ExecutionPayload is one run log entry. The agent is referenced by
// name and must already exist (or appear in the same batch's agent
// list, which is always processed first).
type ExecutionPayload struct {
	AgentName    string     `json:"agentName"`
	StartedAt    *time.Time `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt"`
	DurationMs   *int64     `json:"durationMs"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"errorMessage"`
	TokensUsed   *int64     `json:"tokensUsed"`
	Model        *string    `json:"model"`
}

// TaskPayload is one task create or progress report. Presence of TaskID
// routes the item to the update path, absence to the create path; the
// two never overlap.
type TaskPayload struct {
	TaskID      *uint      `json:"taskId"`
	Task        string     `json:"task"`
	Priority    *int       `json:"priority"`
	Status      string     `json:"status"`
	AgentName   *string    `json:"agentName"`
	Output      *string    `json:"output"`
	DurationMs  *int64     `json:"durationMs"`
	TokensUsed  *int64     `json:"tokensUsed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// NotificationPayload is one operator message.
type NotificationPayload struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Link    *string `json:"link"`
	Read    *bool   `json:"read"`
}
