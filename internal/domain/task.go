// Package domain defines the core entities of the task board.
// Entities are plain structs; invariants that span fields live in methods
// here, everything else is enforced by the service layer.
package domain

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusToday      TaskStatus = "TODAY"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusToday, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a unit of work in a workspace, optionally grouped under a channel.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Workspace   Workspace  `json:"workspace"`
	ChannelID   *int64     `json:"channel_id"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	IsRoutine   bool       `json:"is_routine"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Channel is the joined channel record, nil when the task has none.
	Channel *Channel `json:"channel,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now()
}
