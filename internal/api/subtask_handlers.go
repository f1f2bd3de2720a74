package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taskboardapp/taskboard-server/internal/service"
)

func (s *Server) registerSubtaskRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSubtasks",
		Method:      http.MethodGet,
		Path:        "/api/v1/tasks/{id}/subtasks",
		Summary:     "List subtasks",
		Description: "Returns a task's subtasks ordered by position",
		Tags:        []string{"Subtasks"},
	}, s.handleListSubtasks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createSubtask",
		Method:      http.MethodPost,
		Path:        "/api/v1/tasks/{id}/subtasks",
		Summary:     "Create subtask",
		Description: "Creates a subtask under a task, appended after the last sibling unless a position is given",
		Tags:        []string{"Subtasks"},
	}, s.handleCreateSubtask)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSubtask",
		Method:      http.MethodGet,
		Path:        "/api/v1/subtasks/{id}",
		Summary:     "Get subtask",
		Description: "Returns a subtask by ID",
		Tags:        []string{"Subtasks"},
	}, s.handleGetSubtask)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSubtask",
		Method:      http.MethodPatch,
		Path:        "/api/v1/subtasks/{id}",
		Summary:     "Update subtask",
		Description: "Partially updates a subtask; providing a status recomputes its completion time",
		Tags:        []string{"Subtasks"},
	}, s.handleUpdateSubtask)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderSubtask",
		Method:      http.MethodPatch,
		Path:        "/api/v1/subtasks/{id}/reorder",
		Summary:     "Reorder subtask",
		Description: "Moves a subtask to a new position among its siblings",
		Tags:        []string{"Subtasks"},
	}, s.handleReorderSubtask)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSubtask",
		Method:      http.MethodDelete,
		Path:        "/api/v1/subtasks/{id}",
		Summary:     "Delete subtask",
		Description: "Deletes a subtask",
		Tags:        []string{"Subtasks"},
	}, s.handleDeleteSubtask)
}

// === DTOs ===

// ListSubtasksResponse contains a task's subtasks.
type ListSubtasksResponse struct {
	Subtasks []SubtaskResponse `json:"subtasks" doc:"Subtasks ordered by position"`
}

// ListSubtasksOutput wraps the list subtasks response for huma.
type ListSubtasksOutput struct {
	Body ListSubtasksResponse
}

// CreateSubtaskRequest is the request body for creating a subtask.
type CreateSubtaskRequest struct {
	Title    string `json:"title" validate:"required,max=500" doc:"Subtask title"`
	Position *int   `json:"position,omitempty" validate:"omitempty,gte=0" doc:"Explicit position; appended when omitted"`
}

// CreateSubtaskInput wraps the create subtask request for huma.
type CreateSubtaskInput struct {
	IDParam
	Body CreateSubtaskRequest
}

// SubtaskOutput wraps a single subtask response for huma.
type SubtaskOutput struct {
	Body SubtaskResponse
}

// UpdateSubtaskRequest is the request body for partially updating a subtask.
type UpdateSubtaskRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=500" doc:"Subtask title"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=TODO DOING DONE" doc:"Subtask status"`
	Position *int    `json:"position,omitempty" validate:"omitempty,gte=0" doc:"Ordering position"`
}

// UpdateSubtaskInput wraps the update subtask request for huma.
type UpdateSubtaskInput struct {
	IDParam
	Body UpdateSubtaskRequest
}

// ReorderSubtaskRequest is the request body for reordering a subtask.
type ReorderSubtaskRequest struct {
	Position int `json:"position" validate:"gte=0" doc:"New position among siblings"`
}

// ReorderSubtaskInput wraps the reorder request for huma.
type ReorderSubtaskInput struct {
	IDParam
	Body ReorderSubtaskRequest
}

// === Handlers ===

func (s *Server) handleListSubtasks(ctx context.Context, input *IDParam) (*ListSubtasksOutput, error) {
	subs, err := s.services.Subtask.ListSubtasks(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]SubtaskResponse, len(subs))
	for i, st := range subs {
		resp[i] = subtaskToResponse(st)
	}

	return &ListSubtasksOutput{Body: ListSubtasksResponse{Subtasks: resp}}, nil
}

func (s *Server) handleCreateSubtask(ctx context.Context, input *CreateSubtaskInput) (*SubtaskOutput, error) {
	st, err := s.services.Subtask.CreateSubtask(ctx, input.ID, service.CreateSubtaskRequest{
		Title:    input.Body.Title,
		Position: input.Body.Position,
	})
	if err != nil {
		return nil, err
	}

	return &SubtaskOutput{Body: subtaskToResponse(st)}, nil
}

func (s *Server) handleGetSubtask(ctx context.Context, input *IDParam) (*SubtaskOutput, error) {
	st, err := s.services.Subtask.GetSubtask(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &SubtaskOutput{Body: subtaskToResponse(st)}, nil
}

func (s *Server) handleUpdateSubtask(ctx context.Context, input *UpdateSubtaskInput) (*SubtaskOutput, error) {
	st, err := s.services.Subtask.UpdateSubtask(ctx, input.ID, service.UpdateSubtaskRequest{
		Title:    input.Body.Title,
		Status:   input.Body.Status,
		Position: input.Body.Position,
	})
	if err != nil {
		return nil, err
	}

	return &SubtaskOutput{Body: subtaskToResponse(st)}, nil
}

func (s *Server) handleReorderSubtask(ctx context.Context, input *ReorderSubtaskInput) (*SubtaskOutput, error) {
	st, err := s.services.Subtask.ReorderSubtask(ctx, input.ID, input.Body.Position)
	if err != nil {
		return nil, err
	}

	return &SubtaskOutput{Body: subtaskToResponse(st)}, nil
}

func (s *Server) handleDeleteSubtask(ctx context.Context, input *IDParam) (*MessageOutput, error) {
	if _, err := s.services.Subtask.DeleteSubtask(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Subtask deleted"}}, nil
}
