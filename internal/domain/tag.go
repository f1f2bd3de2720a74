package domain

import "time"

// Tag is a label tasks can be associated with. Names are unique across
// all tags, case-sensitive.
type Tag struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Color      string      `json:"color"` // #RRGGBB
	Workspaces []Workspace `json:"workspaces"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Tasks carries the associated tasks when the query asked for them.
	Tasks []Task `json:"tasks,omitempty"`
}

// InWorkspace reports whether the tag is available in the given workspace.
func (t *Tag) InWorkspace(w Workspace) bool {
	for _, ws := range t.Workspaces {
		if ws == w {
			return true
		}
	}
	return false
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// TaskTag is the many-to-many link between tasks and tags. At most one
// row per (TaskID, TagID) pair; rows die with either parent.
type TaskTag struct {
	TaskID    int64     `json:"task_id"`
	TagID     int64     `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
