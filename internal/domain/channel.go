package domain

import "time"

// Channel is an optional grouping a task may belong to within a workspace.
type Channel struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Workspace Workspace `json:"workspace"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (c *Channel) Touch() {
	c.UpdatedAt = time.Now()
}
