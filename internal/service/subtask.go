package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
	"github.com/taskboardapp/taskboard-server/internal/validation"
)

// SubtaskService orchestrates subtask operations, including sibling
// ordering and the status/completedAt coupling.
type SubtaskService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewSubtaskService creates a new subtask service.
func NewSubtaskService(store store.Store, logger *slog.Logger) *SubtaskService {
	return &SubtaskService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListSubtasks returns a task's subtasks ordered by position.
// Fails with NotFound if the parent task does not exist.
func (s *SubtaskService) ListSubtasks(ctx context.Context, taskID int64) ([]*domain.Subtask, error) {
	subs, err := s.store.ListSubtasksByTask(ctx, taskID)
	return subs, convertStoreErr(err, "task not found", "")
}

// GetSubtask returns a single subtask with its parent task.
func (s *SubtaskService) GetSubtask(ctx context.Context, id int64) (*domain.Subtask, error) {
	st, err := s.store.GetSubtask(ctx, id)
	return st, convertStoreErr(err, "subtask not found", "")
}

// CreateSubtaskRequest contains fields for creating a subtask.
type CreateSubtaskRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Position *int   `json:"position" validate:"omitempty,gte=0"`
}

// CreateSubtask creates a subtask under the given task. A caller-supplied
// position is taken verbatim; otherwise the subtask is appended after the
// highest sibling position (0 for the first). New subtasks always start
// at TODO.
func (s *SubtaskService) CreateSubtask(ctx context.Context, taskID int64, req CreateSubtaskRequest) (*domain.Subtask, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	st := &domain.Subtask{
		TaskID:    taskID,
		Title:     req.Title,
		Status:    domain.SubtaskStatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Position != nil {
		st.Position = *req.Position
	}

	if err := s.store.CreateSubtask(ctx, st, req.Position != nil); err != nil {
		return nil, convertStoreErr(err, "task not found", "")
	}

	created, err := s.store.GetSubtask(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("subtask created", "id", created.ID, "task_id", taskID, "position", created.Position)
	return created, nil
}

// UpdateSubtaskRequest contains fields for partially updating a subtask.
type UpdateSubtaskRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=500"`
	Status   *string `json:"status" validate:"omitempty,oneof=TODO DOING DONE"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

// UpdateSubtask applies the explicitly provided fields. Whenever status
// is provided, completedAt is recomputed: set to now for DONE, cleared
// for anything else, even on a DONE to non-DONE transition. An omitted
// status leaves completedAt untouched.
func (s *SubtaskService) UpdateSubtask(ctx context.Context, id int64, req UpdateSubtaskRequest) (*domain.Subtask, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	st, err := s.store.GetSubtask(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "subtask not found", "")
	}

	if req.Title != nil {
		st.Title = *req.Title
	}
	if req.Position != nil {
		st.Position = *req.Position
	}
	if req.Status != nil {
		st.SetStatus(domain.SubtaskStatus(*req.Status), time.Now())
	}

	st.Touch()

	if err := s.store.UpdateSubtask(ctx, st); err != nil {
		return nil, convertStoreErr(err, "subtask not found", "")
	}

	return s.store.GetSubtask(ctx, id)
}

// ReorderSubtask sets a subtask's position with no other field changes.
// Same write as UpdateSubtask, narrower contract for drag-and-drop.
func (s *SubtaskService) ReorderSubtask(ctx context.Context, id int64, position int) (*domain.Subtask, error) {
	st, err := s.store.GetSubtask(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "subtask not found", "")
	}

	st.Position = position
	st.Touch()

	if err := s.store.UpdateSubtask(ctx, st); err != nil {
		return nil, convertStoreErr(err, "subtask not found", "")
	}

	return s.store.GetSubtask(ctx, id)
}

// DeleteSubtask removes a subtask and returns the prior record.
func (s *SubtaskService) DeleteSubtask(ctx context.Context, id int64) (*domain.Subtask, error) {
	st, err := s.store.GetSubtask(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "subtask not found", "")
	}

	if err := s.store.DeleteSubtask(ctx, id); err != nil {
		return nil, convertStoreErr(err, "subtask not found", "")
	}

	s.logger.Info("subtask deleted", "id", id, "task_id", st.TaskID)
	return st, nil
}
