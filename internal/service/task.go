package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	apperrors "github.com/taskboardapp/taskboard-server/internal/errors"
	"github.com/taskboardapp/taskboard-server/internal/optional"
	"github.com/taskboardapp/taskboard-server/internal/store"
	"github.com/taskboardapp/taskboard-server/internal/validation"
)

// dueDateLayout is the wire format for task due dates.
const dueDateLayout = "2006-01-02"

// TaskService orchestrates task operations.
type TaskService struct {
	store     store.Store
	search    *SearchService // nil when search is disabled
	logger    *slog.Logger
	validator *validation.Validator
}

// NewTaskService creates a new task service. search may be nil.
func NewTaskService(store store.Store, search *SearchService, logger *slog.Logger) *TaskService {
	return &TaskService{
		store:     store,
		search:    search,
		logger:    logger,
		validator: validation.New(),
	}
}

// TaskFilters narrows ListTasks results. All fields optional, ANDed.
type TaskFilters struct {
	Workspace *string `json:"workspace" validate:"omitempty,oneof=WORK PERSONAL"`
	Status    *string `json:"status" validate:"omitempty,oneof=BACKLOG TODAY IN_PROGRESS DONE"`
	ChannelID *int64  `json:"channel_id"`
}

// ListTasks returns tasks matching the filters, newest first, each with
// its channel.
func (s *TaskService) ListTasks(ctx context.Context, filters TaskFilters) ([]*domain.Task, error) {
	if err := s.validator.Validate(filters); err != nil {
		return nil, err
	}

	f := store.TaskFilter{ChannelID: filters.ChannelID}
	if filters.Workspace != nil {
		ws := domain.Workspace(*filters.Workspace)
		f.Workspace = &ws
	}
	if filters.Status != nil {
		st := domain.TaskStatus(*filters.Status)
		f.Status = &st
	}

	return s.store.ListTasks(ctx, f)
}

// GetTask returns a single task with its channel.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	return t, convertStoreErr(err, "task not found", "")
}

// CreateTaskRequest contains fields for creating a task.
// Omitted optional fields fall back to server-side defaults.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=500"`
	Workspace   string  `json:"workspace" validate:"required,oneof=WORK PERSONAL"`
	Description *string `json:"description"`
	ChannelID   *int64  `json:"channel_id"`
	Status      *string `json:"status" validate:"omitempty,oneof=BACKLOG TODAY IN_PROGRESS DONE"`
	DueDate     *string `json:"due_date"` // ISO date, e.g. "2026-09-15"
	IsRoutine   *bool   `json:"is_routine"`
}

// CreateTask creates a task. Status defaults to BACKLOG and isRoutine to
// false when omitted.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &domain.Task{
		Title:       req.Title,
		Workspace:   domain.Workspace(req.Workspace),
		Description: req.Description,
		ChannelID:   req.ChannelID,
		Status:      domain.TaskStatusBacklog,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Status != nil {
		t.Status = domain.TaskStatus(*req.Status)
	}
	if req.IsRoutine != nil {
		t.IsRoutine = *req.IsRoutine
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}

	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, convertStoreErr(err, "channel not found", "")
	}

	// Reload so the response carries the joined channel.
	created, err := s.store.GetTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	s.indexTask(ctx, created)
	s.logger.Info("task created", "id", created.ID, "title", created.Title, "workspace", created.Workspace)
	return created, nil
}

// UpdateTaskRequest contains fields for partially updating a task.
// Pointer fields distinguish omitted from provided; Optional fields
// additionally distinguish an explicit null, which clears the value.
type UpdateTaskRequest struct {
	Title       *string                   `json:"title" validate:"omitempty,max=500"`
	Workspace   *string                   `json:"workspace" validate:"omitempty,oneof=WORK PERSONAL"`
	Status      *string                   `json:"status" validate:"omitempty,oneof=BACKLOG TODAY IN_PROGRESS DONE"`
	IsRoutine   *bool                     `json:"is_routine"`
	Description optional.Optional[string] `json:"description"`
	ChannelID   optional.Optional[int64]  `json:"channel_id"`
	DueDate     optional.Optional[string] `json:"due_date"`
}

// UpdateTask applies the explicitly provided fields and returns the
// updated task with its channel.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*domain.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "task not found", "")
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Workspace != nil {
		t.Workspace = domain.Workspace(*req.Workspace)
	}
	if req.Status != nil {
		t.Status = domain.TaskStatus(*req.Status)
	}
	if req.IsRoutine != nil {
		t.IsRoutine = *req.IsRoutine
	}
	if req.Description.Present {
		t.Description = req.Description.Value
	}
	if req.ChannelID.Present {
		t.ChannelID = req.ChannelID.Value
	}
	if req.DueDate.Present {
		if req.DueDate.Value == nil {
			t.DueDate = nil
		} else {
			due, err := parseDueDate(*req.DueDate.Value)
			if err != nil {
				return nil, err
			}
			t.DueDate = due
		}
	}

	t.Touch()

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, convertStoreErr(err, "channel not found", "")
	}

	updated, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	s.indexTask(ctx, updated)
	return updated, nil
}

// DeleteTask removes a task and returns the prior record. Subtasks and
// tag associations are cascade-deleted by the store.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "task not found", "")
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return nil, convertStoreErr(err, "task not found", "")
	}

	if s.search != nil {
		s.search.RemoveTask(id)
	}
	s.logger.Info("task deleted", "id", id, "title", t.Title)
	return t, nil
}

// indexTask pushes the task into the search index, best effort.
func (s *TaskService) indexTask(ctx context.Context, t *domain.Task) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexTask(ctx, t); err != nil {
		s.logger.Warn("failed to index task", "id", t.ID, "error", err)
	}
}

// parseDueDate parses an ISO date string into a date value.
func parseDueDate(s string) (*time.Time, error) {
	due, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, apperrors.Validation("due_date must be an ISO date like 2026-09-15").WithCause(err)
	}
	return &due, nil
}
