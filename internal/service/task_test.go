package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/errors"
	"github.com/taskboardapp/taskboard-server/internal/optional"
)

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	task, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{
		Title:     "Ship release",
		Workspace: "WORK",
	})
	require.NoError(t, err)

	assert.NotZero(t, task.ID)
	assert.Equal(t, domain.TaskStatusBacklog, task.Status)
	assert.False(t, task.IsRoutine)
	assert.Nil(t, task.Description)
	assert.Nil(t, task.ChannelID)
	assert.Nil(t, task.DueDate)
}

func TestTaskService_CreateTask_AllFields(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	ch, err := svcs.Channels.CreateChannel(ctx, CreateChannelRequest{Name: "releases", Workspace: "WORK"})
	require.NoError(t, err)

	task, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{
		Title:       "Ship release",
		Workspace:   "WORK",
		Description: ptr("Cut the branch"),
		ChannelID:   &ch.ID,
		Status:      ptr("TODAY"),
		DueDate:     ptr("2026-09-15"),
		IsRoutine:   ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusToday, task.Status)
	assert.True(t, task.IsRoutine)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-09-15", task.DueDate.Format("2006-01-02"))
	require.NotNil(t, task.Channel)
	assert.Equal(t, "releases", task.Channel.Name)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing title", CreateTaskRequest{Workspace: "WORK"}},
		{"title too long", CreateTaskRequest{Title: string(make([]byte, 501)), Workspace: "WORK"}},
		{"invalid workspace", CreateTaskRequest{Title: "x", Workspace: "HOME"}},
		{"invalid status", CreateTaskRequest{Title: "x", Workspace: "WORK", Status: ptr("SOON")}},
		{"malformed due date", CreateTaskRequest{Title: "x", Workspace: "WORK", DueDate: ptr("next tuesday")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.Tasks.CreateTask(ctx, tt.req)
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}
}

func TestTaskService_CreateTask_MissingChannel(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.Tasks.CreateTask(context.Background(), CreateTaskRequest{
		Title:     "orphan",
		Workspace: "WORK",
		ChannelID: ptr(int64(999)),
	})
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestTaskService_ListTasks(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{Title: "work one", Workspace: "WORK"})
	require.NoError(t, err)
	_, err = svcs.Tasks.CreateTask(ctx, CreateTaskRequest{Title: "work two", Workspace: "WORK", Status: ptr("TODAY")})
	require.NoError(t, err)
	_, err = svcs.Tasks.CreateTask(ctx, CreateTaskRequest{Title: "home", Workspace: "PERSONAL"})
	require.NoError(t, err)

	all, err := svcs.Tasks.ListTasks(ctx, TaskFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	work, err := svcs.Tasks.ListTasks(ctx, TaskFilters{Workspace: ptr("WORK")})
	require.NoError(t, err)
	assert.Len(t, work, 2)

	today, err := svcs.Tasks.ListTasks(ctx, TaskFilters{Workspace: ptr("WORK"), Status: ptr("TODAY")})
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "work two", today[0].Title)

	_, err = svcs.Tasks.ListTasks(ctx, TaskFilters{Workspace: ptr("INVALID")})
	assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.Tasks.GetTask(context.Background(), 999)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestTaskService_UpdateTask_PartialSemantics(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	task, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{
		Title:       "draft",
		Workspace:   "WORK",
		Description: ptr("keep me"),
		DueDate:     ptr("2026-09-15"),
	})
	require.NoError(t, err)

	// Omitted fields stay unchanged.
	updated, err := svcs.Tasks.UpdateTask(ctx, task.ID, UpdateTaskRequest{
		Status: ptr("IN_PROGRESS"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
	assert.Equal(t, "draft", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)
	assert.NotNil(t, updated.DueDate)

	// An explicit null clears nullable fields.
	updated, err = svcs.Tasks.UpdateTask(ctx, task.ID, UpdateTaskRequest{
		Description: optional.Null[string](),
		DueDate:     optional.Null[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

	// A provided value replaces.
	updated, err = svcs.Tasks.UpdateTask(ctx, task.ID, UpdateTaskRequest{
		Title:   ptr("final"),
		DueDate: optional.Of("2026-10-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, "2026-10-01", updated.DueDate.Format("2006-01-02"))
}

func TestTaskService_UpdateTask_ClearChannel(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	ch, err := svcs.Channels.CreateChannel(ctx, CreateChannelRequest{Name: "inbox", Workspace: "WORK"})
	require.NoError(t, err)

	task, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{
		Title:     "triage",
		Workspace: "WORK",
		ChannelID: &ch.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.Channel)

	updated, err := svcs.Tasks.UpdateTask(ctx, task.ID, UpdateTaskRequest{
		ChannelID: optional.Null[int64](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ChannelID)
	assert.Nil(t, updated.Channel)
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.Tasks.UpdateTask(context.Background(), 999, UpdateTaskRequest{Title: ptr("x")})
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestTaskService_DeleteTask_ReturnsPrior(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	task, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{Title: "doomed", Workspace: "WORK"})
	require.NoError(t, err)

	prior, err := svcs.Tasks.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "doomed", prior.Title)

	_, err = svcs.Tasks.GetTask(ctx, task.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)

	_, err = svcs.Tasks.DeleteTask(ctx, task.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

// End-to-end scenario: task lifecycle with subtask status coupling and
// cascade delete.
func TestTaskLifecycle(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	task, err := svcs.Tasks.CreateTask(ctx, CreateTaskRequest{Title: "Ship release", Workspace: "WORK"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusBacklog, task.Status)

	sub, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "Write changelog"})
	require.NoError(t, err)
	assert.Equal(t, 0, sub.Position)
	assert.Equal(t, domain.SubtaskStatusTodo, sub.Status)

	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("DONE")})
	require.NoError(t, err)
	assert.NotNil(t, sub.CompletedAt)

	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("TODO")})
	require.NoError(t, err)
	assert.Nil(t, sub.CompletedAt)

	tag, err := svcs.Tags.CreateTag(ctx, CreateTagRequest{Name: "release", Color: "#00FF00"})
	require.NoError(t, err)
	require.NoError(t, svcs.Tags.AddTagToTask(ctx, task.ID, tag.ID))

	_, err = svcs.Tasks.DeleteTask(ctx, task.ID)
	require.NoError(t, err)

	_, err = svcs.Subtasks.GetSubtask(ctx, sub.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "subtask should be gone: %v", err)

	got, err := svcs.Tags.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks, "association should be gone")
}
