package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/errors"
)

func createTaskForSubtasks(t *testing.T, svcs *Services) *domain.Task {
	t.Helper()
	task, err := svcs.Tasks.CreateTask(context.Background(), CreateTaskRequest{
		Title:     "parent",
		Workspace: "WORK",
	})
	require.NoError(t, err)
	return task
}

func TestSubtaskService_CreateSubtask_PositionAssignment(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	// First subtask with no position lands at 0.
	first, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	// Explicit positions are taken verbatim, gaps included.
	second, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "second", Position: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	third, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "third", Position: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, third.Position)

	// Auto-assignment appends after the highest sibling, not the count.
	fourth, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "fourth"})
	require.NoError(t, err)
	assert.Equal(t, 6, fourth.Position)
}

func TestSubtaskService_CreateSubtask_Validation(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	_, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{})
	assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)

	_, err = svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "x", Position: ptr(-1)})
	assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
}

func TestSubtaskService_CreateSubtask_MissingParent(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.Subtasks.CreateSubtask(context.Background(), 999, CreateSubtaskRequest{Title: "orphan"})
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestSubtaskService_ListSubtasks(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	_, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "b", Position: ptr(3)})
	require.NoError(t, err)
	_, err = svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "a", Position: ptr(1)})
	require.NoError(t, err)

	subs, err := svcs.Subtasks.ListSubtasks(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "a", subs[0].Title)
	assert.Equal(t, "b", subs[1].Title)
}

func TestSubtaskService_ListSubtasks_MissingParent(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.Subtasks.ListSubtasks(context.Background(), 999)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestSubtaskService_UpdateSubtask_StatusCompletion(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	sub, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "step"})
	require.NoError(t, err)
	assert.Nil(t, sub.CompletedAt)

	// Moving to DONE stamps completedAt.
	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("DONE")})
	require.NoError(t, err)
	assert.Equal(t, domain.SubtaskStatusDone, sub.Status)
	require.NotNil(t, sub.CompletedAt)
	firstDone := *sub.CompletedAt

	// Re-submitting DONE refreshes the stamp.
	time.Sleep(5 * time.Millisecond)
	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("DONE")})
	require.NoError(t, err)
	require.NotNil(t, sub.CompletedAt)
	assert.True(t, sub.CompletedAt.After(firstDone), "completedAt should be refreshed")

	// Leaving DONE clears the stamp.
	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("DOING")})
	require.NoError(t, err)
	assert.Equal(t, domain.SubtaskStatusDoing, sub.Status)
	assert.Nil(t, sub.CompletedAt)

	// An update without status leaves completedAt alone.
	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("DONE")})
	require.NoError(t, err)
	require.NotNil(t, sub.CompletedAt)
	stamp := *sub.CompletedAt

	sub, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Title: ptr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", sub.Title)
	require.NotNil(t, sub.CompletedAt)
	assert.True(t, sub.CompletedAt.Equal(stamp), "completedAt should be untouched")
}

func TestSubtaskService_UpdateSubtask_Validation(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	sub, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "step"})
	require.NoError(t, err)

	_, err = svcs.Subtasks.UpdateSubtask(ctx, sub.ID, UpdateSubtaskRequest{Status: ptr("FINISHED")})
	assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
}

func TestSubtaskService_ReorderSubtask(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	sub, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "movable"})
	require.NoError(t, err)

	moved, err := svcs.Subtasks.ReorderSubtask(ctx, sub.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, moved.Position)
	assert.Equal(t, "movable", moved.Title)

	_, err = svcs.Subtasks.ReorderSubtask(ctx, 999, 1)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestSubtaskService_DeleteSubtask(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	task := createTaskForSubtasks(t, svcs)

	sub, err := svcs.Subtasks.CreateSubtask(ctx, task.ID, CreateSubtaskRequest{Title: "doomed"})
	require.NoError(t, err)

	prior, err := svcs.Subtasks.DeleteSubtask(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "doomed", prior.Title)

	_, err = svcs.Subtasks.DeleteSubtask(ctx, sub.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}
