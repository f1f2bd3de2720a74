// Package store defines the persistence interface for the task board and
// the error taxonomy storage backends report through.
package store

import (
	"context"

	"github.com/taskboardapp/taskboard-server/internal/domain"
)

// TaskFilter narrows ListTasks results. Nil fields impose no constraint;
// set fields are ANDed together.
type TaskFilter struct {
	Workspace *domain.Workspace
	Status    *domain.TaskStatus
	ChannelID *int64
}

// Store is the persistence interface consumed by the service layer.
//
// Backends convert their native constraint failures into the sentinel
// errors in this package: unique/primary-key violations become
// ErrAlreadyExists, missing rows and foreign-key violations become
// ErrNotFound. Multi-step writes (subtask position resolution, tag
// association checks) run atomically inside the backend.
type Store interface {
	// Tasks
	CreateTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, t *domain.Task) error
	DeleteTask(ctx context.Context, id int64) error

	// Subtasks
	CreateSubtask(ctx context.Context, s *domain.Subtask, hasPosition bool) error
	GetSubtask(ctx context.Context, id int64) (*domain.Subtask, error)
	ListSubtasksByTask(ctx context.Context, taskID int64) ([]*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, s *domain.Subtask) error
	DeleteSubtask(ctx context.Context, id int64) error

	// Tags
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context, workspace *domain.Workspace) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, id int64) error
	ListTasksByTag(ctx context.Context, tagID int64) ([]*domain.Task, error)
	ListTagsByTask(ctx context.Context, taskID int64) ([]*domain.Tag, error)
	AddTagToTask(ctx context.Context, taskID, tagID int64) error
	RemoveTagFromTask(ctx context.Context, taskID, tagID int64) error

	// Channels
	CreateChannel(ctx context.Context, c *domain.Channel) error
	GetChannel(ctx context.Context, id int64) (*domain.Channel, error)
	ListChannels(ctx context.Context) ([]*domain.Channel, error)
	DeleteChannel(ctx context.Context, id int64) error

	// Instance
	GetInstance(ctx context.Context) (*domain.Instance, error)
	CreateInstance(ctx context.Context, inst *domain.Instance) error

	Close() error
}
