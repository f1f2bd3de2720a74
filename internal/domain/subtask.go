package domain

import "time"

// SubtaskStatus is the workflow state of a subtask.
type SubtaskStatus string

const (
	SubtaskStatusTodo  SubtaskStatus = "TODO"
	SubtaskStatusDoing SubtaskStatus = "DOING"
	SubtaskStatusDone  SubtaskStatus = "DONE"
)

// Valid reports whether the status is a known value.
func (s SubtaskStatus) Valid() bool {
	switch s {
	case SubtaskStatusTodo, SubtaskStatusDoing, SubtaskStatusDone:
		return true
	}
	return false
}

// Subtask is an ordered child item of a task.
// Position is a sort key among siblings, not a dense index — gaps and
// duplicates are allowed.
type Subtask struct {
	ID          int64         `json:"id"`
	TaskID      int64         `json:"task_id"`
	Title       string        `json:"title"`
	Status      SubtaskStatus `json:"status"`
	Position    int           `json:"position"`
	CompletedAt *time.Time    `json:"completed_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Task is the joined parent record, nil unless the query asked for it.
	Task *Task `json:"task,omitempty"`
}

// SetStatus changes the status and keeps CompletedAt coupled to it:
// non-nil exactly when the status is DONE. Moving away from DONE clears
// the timestamp.
func (s *Subtask) SetStatus(status SubtaskStatus, now time.Time) {
	s.Status = status
	if status == SubtaskStatusDone {
		s.CompletedAt = &now
	} else {
		s.CompletedAt = nil
	}
}

// Touch updates the UpdatedAt timestamp.
func (s *Subtask) Touch() {
	s.UpdatedAt = time.Now()
}
