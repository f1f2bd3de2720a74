package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taskboardapp/taskboard-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name, optionally filtered by workspace",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Creates a new tag; names are globally unique and case-sensitive",
		Tags:        []string{"Tags"},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag with its associated tasks",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Partially updates a tag",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and its task associations",
		Tags:        []string{"Tags"},
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "addTagToTask",
		Method:      http.MethodPost,
		Path:        "/api/v1/tasks/{id}/tags/{tagID}",
		Summary:     "Add tag to task",
		Description: "Associates a tag with a task",
		Tags:        []string{"Tags"},
	}, s.handleAddTagToTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeTagFromTask",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tasks/{id}/tags/{tagID}",
		Summary:     "Remove tag from task",
		Description: "Removes a tag association from a task",
		Tags:        []string{"Tags"},
	}, s.handleRemoveTagFromTask)
}

// === DTOs ===

// ListTagsInput contains query parameters for listing tags.
type ListTagsInput struct {
	Workspace string `query:"workspace" doc:"Filter by workspace membership (WORK or PERSONAL)"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=50" doc:"Tag name"`
	Color      string   `json:"color" validate:"required,hexcolor,len=7" doc:"Display color as #RRGGBB"`
	Workspaces []string `json:"workspaces,omitempty" validate:"dive,oneof=WORK PERSONAL" doc:"Workspaces the tag is visible in"`
}

// CreateTagInput wraps the create tag request for huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagOutput wraps a single tag response for huma.
type TagOutput struct {
	Body TagResponse
}

// UpdateTagRequest is the request body for partially updating a tag.
type UpdateTagRequest struct {
	Name       *string   `json:"name,omitempty" validate:"omitempty,min=1,max=50" doc:"Tag name"`
	Color      *string   `json:"color,omitempty" validate:"omitempty,hexcolor,len=7" doc:"Display color as #RRGGBB"`
	Workspaces *[]string `json:"workspaces,omitempty" validate:"omitempty,dive,oneof=WORK PERSONAL" doc:"Replacement workspace set"`
}

// UpdateTagInput wraps the update tag request for huma.
type UpdateTagInput struct {
	IDParam
	Body UpdateTagRequest
}

// TaskTagInput identifies a task-tag pair.
type TaskTagInput struct {
	ID    int64 `path:"id" doc:"Task ID"`
	TagID int64 `path:"tagID" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	var workspace *string
	if input.Workspace != "" {
		workspace = &input.Workspace
	}

	tags, err := s.services.Tag.ListTags(ctx, workspace)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = tagToResponse(t)
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	t, err := s.services.Tag.CreateTag(ctx, service.CreateTagRequest{
		Name:       input.Body.Name,
		Color:      input.Body.Color,
		Workspaces: input.Body.Workspaces,
	})
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: tagToResponse(t)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *IDParam) (*TagOutput, error) {
	t, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: tagToResponse(t)}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	t, err := s.services.Tag.UpdateTag(ctx, input.ID, service.UpdateTagRequest{
		Name:       input.Body.Name,
		Color:      input.Body.Color,
		Workspaces: input.Body.Workspaces,
	})
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: tagToResponse(t)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *IDParam) (*MessageOutput, error) {
	if _, err := s.services.Tag.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}

func (s *Server) handleAddTagToTask(ctx context.Context, input *TaskTagInput) (*MessageOutput, error) {
	if err := s.services.Tag.AddTagToTask(ctx, input.ID, input.TagID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag added to task"}}, nil
}

func (s *Server) handleRemoveTagFromTask(ctx context.Context, input *TaskTagInput) (*MessageOutput, error) {
	if err := s.services.Tag.RemoveTagFromTask(ctx, input.ID, input.TagID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag removed from task"}}, nil
}
