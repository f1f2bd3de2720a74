package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
	"github.com/taskboardapp/taskboard-server/internal/validation"
)

// TagService orchestrates tag operations and task-tag associations.
// Tag names are globally unique, case-sensitive; the unique constraint in
// the store is the source of truth, so no name pre-check is performed.
type TagService struct {
	store     store.Store
	search    *SearchService // nil when search is disabled
	logger    *slog.Logger
	validator *validation.Validator
}

// NewTagService creates a new tag service. search may be nil.
func NewTagService(store store.Store, search *SearchService, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		search:    search,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListTags returns tags ordered by name. A workspace filter restricts to
// tags whose workspace set contains that value.
func (s *TagService) ListTags(ctx context.Context, workspace *string) ([]*domain.Tag, error) {
	var ws *domain.Workspace
	if workspace != nil {
		w := domain.Workspace(*workspace)
		if !w.Valid() {
			return nil, validationErrInvalidWorkspace
		}
		ws = &w
	}
	return s.store.ListTags(ctx, ws)
}

// GetTag returns a tag with its associated tasks.
func (s *TagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "tag not found", "")
	}

	tasks, err := s.store.ListTasksByTag(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Tasks = make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		t.Tasks = append(t.Tasks, *task)
	}

	return t, nil
}

// CreateTagRequest contains fields for creating a tag.
type CreateTagRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=50"`
	Color      string   `json:"color" validate:"required,hexcolor,len=7"`
	Workspaces []string `json:"workspaces" validate:"dive,oneof=WORK PERSONAL"`
}

// CreateTag creates a tag. Fails with Conflict when the name is already
// taken (exact case-sensitive match).
func (s *TagService) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &domain.Tag{
		Name:       req.Name,
		Color:      req.Color,
		Workspaces: toWorkspaces(req.Workspaces),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateTag(ctx, t); err != nil {
		return nil, convertStoreErr(err, "tag not found", "tag name already in use")
	}

	s.logger.Info("tag created", "id", t.ID, "name", t.Name)
	return t, nil
}

// UpdateTagRequest contains fields for partially updating a tag.
type UpdateTagRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=1,max=50"`
	Color      *string   `json:"color" validate:"omitempty,hexcolor,len=7"`
	Workspaces *[]string `json:"workspaces" validate:"omitempty,dive,oneof=WORK PERSONAL"`
}

// UpdateTag applies the explicitly provided fields. Renaming onto another
// tag's name fails with Conflict; rewriting a tag with its own current
// name does not, since the unique constraint ignores the unchanged row.
func (s *TagService) UpdateTag(ctx context.Context, id int64, req UpdateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "tag not found", "")
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Color != nil {
		t.Color = *req.Color
	}
	if req.Workspaces != nil {
		t.Workspaces = toWorkspaces(*req.Workspaces)
	}

	t.Touch()

	if err := s.store.UpdateTag(ctx, t); err != nil {
		return nil, convertStoreErr(err, "tag not found", "tag name already in use")
	}

	return s.store.GetTag(ctx, id)
}

// DeleteTag removes a tag and returns the prior record. Task associations
// are cascade-removed by the store's referential-integrity rule.
func (s *TagService) DeleteTag(ctx context.Context, id int64) (*domain.Tag, error) {
	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "tag not found", "")
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return nil, convertStoreErr(err, "tag not found", "")
	}

	s.logger.Info("tag deleted", "id", id, "name", t.Name)
	return t, nil
}

// AddTagToTask associates a tag with a task. Fails with NotFound when
// either parent is missing and Conflict when the pair is already linked.
func (s *TagService) AddTagToTask(ctx context.Context, taskID, tagID int64) error {
	if err := s.store.AddTagToTask(ctx, taskID, tagID); err != nil {
		return convertStoreErr(err, storeNotFoundMessage(err), "tag already added to task")
	}

	s.reindexTask(ctx, taskID)
	return nil
}

// RemoveTagFromTask removes a task-tag association.
// Fails with NotFound if the pair is not linked.
func (s *TagService) RemoveTagFromTask(ctx context.Context, taskID, tagID int64) error {
	if err := s.store.RemoveTagFromTask(ctx, taskID, tagID); err != nil {
		return convertStoreErr(err, "tag association not found", "")
	}

	s.reindexTask(ctx, taskID)
	return nil
}

// reindexTask refreshes the task's search document after its tag set
// changed, best effort.
func (s *TagService) reindexTask(ctx context.Context, taskID int64) {
	if s.search == nil {
		return
	}
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return
	}
	if err := s.search.IndexTask(ctx, t); err != nil {
		s.logger.Warn("failed to reindex task", "id", taskID, "error", err)
	}
}

func toWorkspaces(in []string) []domain.Workspace {
	out := make([]domain.Workspace, 0, len(in))
	for _, w := range in {
		out = append(out, domain.Workspace(w))
	}
	return out
}
