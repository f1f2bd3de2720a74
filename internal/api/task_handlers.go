package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taskboardapp/taskboard-server/internal/optional"
	"github.com/taskboardapp/taskboard-server/internal/service"
)

func (s *Server) registerTaskRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTasks",
		Method:      http.MethodGet,
		Path:        "/api/v1/tasks",
		Summary:     "List tasks",
		Description: "Returns tasks, newest first, optionally filtered by workspace, status, and channel",
		Tags:        []string{"Tasks"},
	}, s.handleListTasks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTask",
		Method:      http.MethodPost,
		Path:        "/api/v1/tasks",
		Summary:     "Create task",
		Description: "Creates a new task",
		Tags:        []string{"Tasks"},
	}, s.handleCreateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTask",
		Method:      http.MethodGet,
		Path:        "/api/v1/tasks/{id}",
		Summary:     "Get task",
		Description: "Returns a task by ID",
		Tags:        []string{"Tasks"},
	}, s.handleGetTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTask",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tasks/{id}",
		Summary:     "Update task",
		Description: "Partially updates a task; explicit nulls clear nullable fields",
		Tags:        []string{"Tasks"},
	}, s.handleUpdateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTask",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tasks/{id}",
		Summary:     "Delete task",
		Description: "Deletes a task along with its subtasks and tag associations",
		Tags:        []string{"Tasks"},
	}, s.handleDeleteTask)
}

// === DTOs ===

// ListTasksInput contains query parameters for listing tasks.
type ListTasksInput struct {
	Workspace string `query:"workspace" doc:"Filter by workspace (WORK or PERSONAL)"`
	Status    string `query:"status" doc:"Filter by status"`
	ChannelID int64  `query:"channel_id" doc:"Filter by channel"`
}

// ListTasksResponse contains a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks" doc:"List of tasks"`
}

// ListTasksOutput wraps the list tasks response for huma.
type ListTasksOutput struct {
	Body ListTasksResponse
}

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=500" doc:"Task title"`
	Workspace   string  `json:"workspace" validate:"required,oneof=WORK PERSONAL" doc:"Workspace"`
	Description *string `json:"description,omitempty" doc:"Free-form description"`
	ChannelID   *int64  `json:"channel_id,omitempty" doc:"Channel to file the task under"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=BACKLOG TODAY IN_PROGRESS DONE" doc:"Initial status, BACKLOG when omitted"`
	DueDate     *string `json:"due_date,omitempty" doc:"Due date as YYYY-MM-DD"`
	IsRoutine   *bool   `json:"is_routine,omitempty" doc:"Whether the task recurs, false when omitted"`
}

// CreateTaskInput wraps the create task request for huma.
type CreateTaskInput struct {
	Body CreateTaskRequest
}

// TaskOutput wraps a single task response for huma.
type TaskOutput struct {
	Body TaskResponse
}

// UpdateTaskRequest is the request body for partially updating a task.
type UpdateTaskRequest struct {
	Title       *string                   `json:"title,omitempty" validate:"omitempty,max=500" doc:"Task title"`
	Workspace   *string                   `json:"workspace,omitempty" validate:"omitempty,oneof=WORK PERSONAL" doc:"Workspace"`
	Status      *string                   `json:"status,omitempty" validate:"omitempty,oneof=BACKLOG TODAY IN_PROGRESS DONE" doc:"Task status"`
	IsRoutine   *bool                     `json:"is_routine,omitempty" doc:"Whether the task recurs"`
	Description optional.Optional[string] `json:"description,omitempty" doc:"Description; null clears it"`
	ChannelID   optional.Optional[int64]  `json:"channel_id,omitempty" doc:"Channel; null detaches the task"`
	DueDate     optional.Optional[string] `json:"due_date,omitempty" doc:"Due date as YYYY-MM-DD; null clears it"`
}

// UpdateTaskInput wraps the update task request for huma.
type UpdateTaskInput struct {
	IDParam
	Body UpdateTaskRequest
}

// === Handlers ===

func (s *Server) handleListTasks(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
	filters := service.TaskFilters{}
	if input.Workspace != "" {
		filters.Workspace = &input.Workspace
	}
	if input.Status != "" {
		filters.Status = &input.Status
	}
	if input.ChannelID != 0 {
		filters.ChannelID = &input.ChannelID
	}

	tasks, err := s.services.Task.ListTasks(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &ListTasksOutput{Body: ListTasksResponse{Tasks: tasksToResponses(tasks)}}, nil
}

func (s *Server) handleCreateTask(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error) {
	t, err := s.services.Task.CreateTask(ctx, service.CreateTaskRequest{
		Title:       input.Body.Title,
		Workspace:   input.Body.Workspace,
		Description: input.Body.Description,
		ChannelID:   input.Body.ChannelID,
		Status:      input.Body.Status,
		DueDate:     input.Body.DueDate,
		IsRoutine:   input.Body.IsRoutine,
	})
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: taskToResponse(t)}, nil
}

func (s *Server) handleGetTask(ctx context.Context, input *IDParam) (*TaskOutput, error) {
	t, err := s.services.Task.GetTask(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: taskToResponse(t)}, nil
}

func (s *Server) handleUpdateTask(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
	t, err := s.services.Task.UpdateTask(ctx, input.ID, service.UpdateTaskRequest{
		Title:       input.Body.Title,
		Workspace:   input.Body.Workspace,
		Status:      input.Body.Status,
		IsRoutine:   input.Body.IsRoutine,
		Description: input.Body.Description,
		ChannelID:   input.Body.ChannelID,
		DueDate:     input.Body.DueDate,
	})
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: taskToResponse(t)}, nil
}

func (s *Server) handleDeleteTask(ctx context.Context, input *IDParam) (*MessageOutput, error) {
	if _, err := s.services.Task.DeleteTask(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Task deleted"}}, nil
}
