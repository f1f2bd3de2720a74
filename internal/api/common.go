package api

import (
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
)

// IDParam is a path parameter for resource IDs.
type IDParam struct {
	ID int64 `path:"id" doc:"Resource identifier"`
}

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for huma.
type MessageOutput struct {
	Body MessageResponse
}

// ChannelResponse contains channel data in API responses.
type ChannelResponse struct {
	ID        int64     `json:"id" doc:"Channel ID"`
	Name      string    `json:"name" doc:"Channel name"`
	Workspace string    `json:"workspace" doc:"Workspace the channel belongs to"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// TaskResponse contains task data in API responses.
type TaskResponse struct {
	ID          int64            `json:"id" doc:"Task ID"`
	Title       string           `json:"title" doc:"Task title"`
	Description *string          `json:"description,omitempty" doc:"Free-form description"`
	Workspace   string           `json:"workspace" doc:"Workspace (WORK or PERSONAL)"`
	ChannelID   *int64           `json:"channel_id,omitempty" doc:"Channel the task belongs to"`
	Channel     *ChannelResponse `json:"channel,omitempty" doc:"Channel details"`
	Status      string           `json:"status" doc:"Task status"`
	DueDate     *string          `json:"due_date,omitempty" doc:"Due date as YYYY-MM-DD"`
	IsRoutine   bool             `json:"is_routine" doc:"Whether the task recurs"`
	CreatedAt   time.Time        `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time        `json:"updated_at" doc:"Last update time"`
}

// SubtaskResponse contains subtask data in API responses.
type SubtaskResponse struct {
	ID          int64      `json:"id" doc:"Subtask ID"`
	TaskID      int64      `json:"task_id" doc:"Parent task ID"`
	Title       string     `json:"title" doc:"Subtask title"`
	Status      string     `json:"status" doc:"Subtask status"`
	Position    int        `json:"position" doc:"Ordering position among siblings"`
	CompletedAt *time.Time `json:"completed_at,omitempty" doc:"Completion time, set while status is DONE"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time  `json:"updated_at" doc:"Last update time"`
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID         int64          `json:"id" doc:"Tag ID"`
	Name       string         `json:"name" doc:"Tag name, globally unique"`
	Color      string         `json:"color" doc:"Display color as #RRGGBB"`
	Workspaces []string       `json:"workspaces" doc:"Workspaces the tag is visible in"`
	Tasks      []TaskResponse `json:"tasks,omitempty" doc:"Tasks carrying this tag"`
	CreatedAt  time.Time      `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time      `json:"updated_at" doc:"Last update time"`
}

// === Mappers ===

func channelToResponse(c *domain.Channel) ChannelResponse {
	return ChannelResponse{
		ID:        c.ID,
		Name:      c.Name,
		Workspace: string(c.Workspace),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func taskToResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Workspace:   string(t.Workspace),
		ChannelID:   t.ChannelID,
		Status:      string(t.Status),
		IsRoutine:   t.IsRoutine,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	if t.Channel != nil {
		ch := channelToResponse(t.Channel)
		resp.Channel = &ch
	}
	return resp
}

func tasksToResponses(tasks []*domain.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = taskToResponse(t)
	}
	return resp
}

func subtaskToResponse(st *domain.Subtask) SubtaskResponse {
	return SubtaskResponse{
		ID:          st.ID,
		TaskID:      st.TaskID,
		Title:       st.Title,
		Status:      string(st.Status),
		Position:    st.Position,
		CompletedAt: st.CompletedAt,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	}
}

func tagToResponse(t *domain.Tag) TagResponse {
	workspaces := make([]string, len(t.Workspaces))
	for i, w := range t.Workspaces {
		workspaces[i] = string(w)
	}

	resp := TagResponse{
		ID:         t.ID,
		Name:       t.Name,
		Color:      t.Color,
		Workspaces: workspaces,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	for i := range t.Tasks {
		resp.Tasks = append(resp.Tasks, taskToResponse(&t.Tasks[i]))
	}
	return resp
}
